package main

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	"github.com/user/imagify/pkg/adapters/ggrenderer"
	"github.com/user/imagify/pkg/adapters/logger"
	"github.com/user/imagify/pkg/adapters/nullsink"
	"github.com/user/imagify/pkg/imagify"
	"github.com/user/imagify/pkg/mocks"
	"github.com/user/imagify/pkg/summarizer"
)

func newTestRuntime(t *testing.T, settings *imagify.Settings) (*runtime, *mocks.FileSystem) {
	t.Helper()
	fs := mocks.NewFileSystem()
	log := logger.NewNoop()
	rt := &runtime{
		log:    log,
		fs:     fs,
		source: imagify.Static(settings),
		stats:  &imagify.Stats{},
	}
	renderer := ggrenderer.New(ggrenderer.NewFontResolver(fs, nil))
	rt.dispatcher = newDispatcher(rt.source, renderer, nullsink.New(), log, rt.stats)
	return rt, fs
}

func TestMessageID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-", "stdin"},
		{"messages/long.txt", "long"},
		{"note", "note"},
		{"/tmp/a.b.html", "a.b"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := messageID(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderTarget(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		out      string
		outDir   string
		expected string
	}{
		{"explicit out", "a.txt", "x.png", "", "x.png"},
		{"out dir", "msgs/a.txt", "", "images", "images/a.png"},
		{"stdin to stdout", "-", "", "", "-"},
		{"stdin to dir", "-", "", "images", "images/stdin.png"},
		{"next to input", "msgs/a.txt", "", "", "msgs/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderTarget(tt.input, tt.out, tt.outDir); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRuntime_Process(t *testing.T) {
	rt, _ := newTestRuntime(t, imagify.DefaultSettings())

	long := strings.Repeat("line\n", 24) + "line"
	res, err := rt.process(context.Background(), "long", long)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if res.info.Outcome != summarizer.OutcomeImage {
		t.Fatalf("expected image outcome, got %q", res.info.Outcome)
	}
	if res.info.Lines != 25 {
		t.Errorf("expected 25 lines, got %d", res.info.Lines)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(res.png))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if cfg.Width != res.info.Width || cfg.Height != res.info.Height {
		t.Errorf("summary size %dx%d does not match image %dx%d", res.info.Width, res.info.Height, cfg.Width, cfg.Height)
	}

	res, err = rt.process(context.Background(), "short", "hello")
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if res.info.Outcome != summarizer.OutcomeText || res.png != nil {
		t.Errorf("expected text outcome, got %+v", res.info)
	}
}

func TestRuntime_ProcessForced(t *testing.T) {
	rt, _ := newTestRuntime(t, imagify.DefaultSettings())
	rt.source = forcedSource{rt.source}
	rt.dispatcher = newDispatcher(rt.source, ggrenderer.New(ggrenderer.NewFontResolver(rt.fs, nil)), nullsink.New(), rt.log, rt.stats)

	res, err := rt.process(context.Background(), "short", "hi")
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if res.info.Outcome != summarizer.OutcomeImage {
		t.Errorf("forced render should imagize a short message, got %q", res.info.Outcome)
	}
}

func TestRuntime_Pipe(t *testing.T) {
	settings := imagify.DefaultSettings()
	settings.Thresholds.MaxLineCount = 2
	rt, fs := newTestRuntime(t, settings)

	input := strings.Join([]string{
		"short",
		"---",
		"one",
		"two",
		"three",
		"---",
		"",
		"---",
		"a &amp; b",
	}, "\n")

	builder := summarizer.NewBuilder()
	if err := rt.pipe(context.Background(), strings.NewReader(input), "---", "out", builder); err != nil {
		t.Fatalf("pipe failed: %v", err)
	}

	summary := builder.Build()
	if len(summary.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(summary.Messages))
	}
	if summary.Messages[1].Outcome != summarizer.OutcomeImage {
		t.Errorf("expected message 2 to be imagized, got %q", summary.Messages[1].Outcome)
	}

	if data, ok := fs.GetFile("out/message-0001.txt"); !ok || string(data) != "short" {
		t.Errorf("expected message 1 as text, got %q", data)
	}
	if data, ok := fs.GetFile("out/message-0002.png"); !ok || !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("expected message 2 as PNG")
	}
	if data, ok := fs.GetFile("out/message-0004.txt"); !ok || string(data) != "a &amp; b" {
		t.Errorf("expected markup to be kept escaped, got %q", data)
	}
}
