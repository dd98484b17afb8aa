package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"
	"unicode/utf8"

	"github.com/urfave/cli/v2"

	"github.com/user/imagify/pkg/adapters/filesink"
	"github.com/user/imagify/pkg/adapters/ggrenderer"
	"github.com/user/imagify/pkg/adapters/nullsink"
	"github.com/user/imagify/pkg/adapters/osfilesystem"
	"github.com/user/imagify/pkg/config"
	"github.com/user/imagify/pkg/hook"
	"github.com/user/imagify/pkg/imagify"
	"github.com/user/imagify/pkg/message"
	"github.com/user/imagify/pkg/orchestrator"
	"github.com/user/imagify/pkg/ports"
	"github.com/user/imagify/pkg/stages/layout"
	"github.com/user/imagify/pkg/stages/paint"
	"github.com/user/imagify/pkg/summarizer"
)

// runtime wires the adapters, stages and before-send hook for one command.
type runtime struct {
	log        ports.Logger
	fs         ports.FileSystem
	cfg        config.Config
	cfgPath    string
	source     imagify.Source
	watcher    *config.Watcher
	dispatcher *hook.Dispatcher
	stats      *imagify.Stats
}

type setupOptions struct {
	watch        bool
	force        bool
	stdoutIsData bool
}

// setup loads the configuration and builds the render pipeline.
func setup(c *cli.Context, opts setupOptions) (*runtime, error) {
	fs := osfilesystem.New()
	path := c.String("config")

	cfg := config.Defaults()
	if path != "" {
		var err error
		if cfg, err = config.LoadFromFile(fs, path); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	log := newLogger(c, cfg.LogLevel, opts.stdoutIsData)

	rt := &runtime{
		log:     log,
		fs:      fs,
		cfg:     cfg,
		cfgPath: path,
		stats:   &imagify.Stats{},
	}

	if opts.watch && path != "" {
		w, err := config.NewWatcher(fs, path, log)
		if err != nil {
			return nil, err
		}
		rt.watcher = w
		rt.source = w
	} else {
		settings, err := cfg.Settings()
		if err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		rt.source = imagify.Static(settings)
	}
	if opts.force {
		rt.source = forcedSource{rt.source}
	}

	// Debug sink
	var sink ports.DebugSink = nullsink.New()
	if c.Bool("debug") || cfg.Debug {
		dir := cfg.DebugDir
		if c.IsSet("debug-dir") {
			dir = c.String("debug-dir")
		}
		if err := fs.MkdirAll(dir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(dir, fs)
	}

	// Fonts are resolved once; a reload does not change them.
	fonts := ggrenderer.NewFontResolver(fs, cfg.Fonts)
	if err := fonts.Preload(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	rt.dispatcher = newDispatcher(rt.source, ggrenderer.New(fonts), sink, log, rt.stats)
	return rt, nil
}

// newDispatcher registers the imagify handler, rendering on renderer.
func newDispatcher(source imagify.Source, renderer ports.Renderer, sink ports.DebugSink, log ports.Logger, stats *imagify.Stats) *hook.Dispatcher {
	orch := orchestrator.New(
		renderer,
		layout.NewStage(log),
		paint.NewStage(log),
		sink,
		log,
	)

	d := hook.NewDispatcher(log)
	d.BeforeSend("imagify", imagify.Handler(source, orch, log, stats))
	return d
}

// forcedSource imagizes every message regardless of its size.
type forcedSource struct {
	imagify.Source
}

func (f forcedSource) Current() *imagify.Settings {
	s := *f.Source.Current()
	s.Thresholds = imagify.Thresholds{MaxLineCount: 0, MaxLength: 0}
	return &s
}

// outcome is the result of sending one message through the hook.
type outcome struct {
	info    summarizer.MessageInfo
	session *message.Session
	png     []byte
}

// process runs the before-send hook on one message.
func (rt *runtime) process(ctx context.Context, id, content string) (outcome, error) {
	session, err := message.NewSession(id, content)
	if err != nil {
		return outcome{}, err
	}

	info := summarizer.MessageInfo{
		ID:     id,
		Lines:  strings.Count(content, "\n") + 1,
		Length: utf8.RuneCountInString(message.Text(session.Elements)),
	}
	wanted := imagify.ShouldImagize(content, session.Elements, rt.source.Current().Thresholds)

	if err := rt.dispatcher.Dispatch(ctx, session); err != nil {
		return outcome{}, err
	}

	out := outcome{info: info, session: session}
	switch data, ok := imageOf(session); {
	case ok:
		out.png = data
		out.info.Outcome = summarizer.OutcomeImage
		out.info.ImageSize = int64(len(data))
		if pc, err := png.DecodeConfig(bytes.NewReader(data)); err == nil {
			out.info.Width, out.info.Height = pc.Width, pc.Height
		}
	case wanted:
		out.info.Outcome = summarizer.OutcomeFallback
	default:
		out.info.Outcome = summarizer.OutcomeText
	}
	return out, nil
}

// imageOf returns the PNG of a session that was replaced by a single image.
func imageOf(s *message.Session) ([]byte, bool) {
	if len(s.Elements) != 1 || s.Elements[0].Type != message.TypeImage {
		return nil, false
	}
	data, _, err := s.Elements[0].ImageData()
	if err != nil {
		return nil, false
	}
	return data, true
}

// summarySettings describes the current settings for a summary.
func (rt *runtime) summarySettings() summarizer.Settings {
	s := rt.source.Current()
	return summarizer.Settings{
		ConfigPath:   rt.cfgPath,
		MaxLineCount: s.Thresholds.MaxLineCount,
		MaxLength:    s.Thresholds.MaxLength,
		Font:         layout.FontString(s.Render.Layout),
		Background:   string(s.Render.Background.Ground.Kind()),
		Foreground:   string(s.Render.Foreground.Ground.Kind()),
	}
}

// writeSummary writes the summary when path is set, as YAML for a .yaml or
// .yml path and as Markdown otherwise.
func (rt *runtime) writeSummary(path string, summary *summarizer.Summary) {
	if path == "" {
		return
	}
	formatter := summarizer.FormatterFor(path,
		summarizer.WithTranslator(translate),
		summarizer.WithVersion(version),
	)
	if err := summarizer.NewWriter(formatter, rt.fs).Write(path, summary); err != nil {
		rt.log.Error("Failed to write summary: %s", err)
		return
	}
	rt.log.Info("Summary saved to %s", path)
}

// logTotals logs how many messages ended up in each outcome.
func (rt *runtime) logTotals(summary *summarizer.Summary) {
	totals := summary.Totals()
	rt.log.Info("Processed %d messages: %d images, %d text, %d failed",
		len(summary.Messages),
		totals[summarizer.OutcomeImage],
		totals[summarizer.OutcomeText],
		totals[summarizer.OutcomeFallback])
}
