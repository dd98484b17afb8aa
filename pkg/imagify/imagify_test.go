package imagify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/user/imagify/pkg/adapters/logger"
	"github.com/user/imagify/pkg/message"
	"github.com/user/imagify/pkg/orchestrator"
	"github.com/user/imagify/pkg/pipeline"
)

type renderFunc func(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error)

func (f renderFunc) Render(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error) {
	return f(ctx, req)
}

func elements(t *testing.T, content string) []*message.Element {
	t.Helper()
	els, err := message.Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return els
}

func TestShouldImagize(t *testing.T) {
	th := Thresholds{MaxLineCount: 20, MaxLength: 600}

	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{"short", "hello", false},
		{"20 lines", strings.Repeat("a\n", 19) + "a", false},
		{"21 lines", strings.Repeat("a\n", 20) + "a", true},
		{"600 chars", strings.Repeat("x", 600), false},
		{"601 chars", strings.Repeat("x", 601), true},
		{"601 runes in one line", strings.Repeat("你", 601), true},
		{"entities count once", strings.Repeat("&lt;", 600), false},
		{"markup not counted", "<img src=\"a.png\"/>" + strings.Repeat("y", 590), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldImagize(tt.content, elements(t, tt.content), th)
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestHandler_Imagizes(t *testing.T) {
	content := strings.Repeat("line\n", 24) + "line"
	s, err := message.NewSession("42", content)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	var got orchestrator.Request
	r := renderFunc(func(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error) {
		got = req
		return orchestrator.Result{PNG: []byte("\x89PNG\r\n\x1a\n"), Size: pipeline.Dimension{Width: 240, Height: 640}}, nil
	})

	stats := &Stats{}
	h := Handler(Static(DefaultSettings()), r, logger.NewNoop(), stats)
	if err := h(context.Background(), s); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if got.ID != "42" || got.Content != content {
		t.Errorf("unexpected request %+v", got)
	}
	if got.Config.Layout.FontSize != 20 {
		t.Errorf("expected default render config, got %+v", got.Config.Layout)
	}
	if len(s.Elements) != 1 || s.Elements[0].Type != message.TypeImage {
		t.Fatalf("expected a single image element, got %v", s.Elements)
	}
	data, mime, err := s.Elements[0].ImageData()
	if err != nil {
		t.Fatalf("ImageData failed: %v", err)
	}
	if mime != "image/png" || string(data) != "\x89PNG\r\n\x1a\n" {
		t.Errorf("unexpected image %q %q", mime, data)
	}
	if stats.Imagized.Load() != 1 {
		t.Errorf("expected 1 imagized, got %d", stats.Imagized.Load())
	}
}

func TestHandler_SkipsShortMessages(t *testing.T) {
	s, _ := message.NewSession("1", "short")
	called := false
	r := renderFunc(func(context.Context, orchestrator.Request) (orchestrator.Result, error) {
		called = true
		return orchestrator.Result{}, nil
	})

	stats := &Stats{}
	if err := Handler(Static(DefaultSettings()), r, logger.NewNoop(), stats)(context.Background(), s); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if called {
		t.Error("renderer should not be called for a short message")
	}
	if message.Text(s.Elements) != "short" {
		t.Errorf("elements changed: %q", message.Text(s.Elements))
	}
	if stats.Skipped.Load() != 1 {
		t.Errorf("expected 1 skipped, got %d", stats.Skipped.Load())
	}
}

func TestHandler_UnescapesContent(t *testing.T) {
	content := strings.Repeat("a &amp; b<br/>", 30)
	s, _ := message.NewSession("1", content)
	settings := DefaultSettings()
	settings.Thresholds.MaxLength = 10

	var got string
	r := renderFunc(func(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error) {
		got = req.Content
		return orchestrator.Result{PNG: []byte{1}}, nil
	})
	if err := Handler(Static(settings), r, logger.NewNoop(), nil)(context.Background(), s); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if got != strings.Repeat("a & b\n", 30) {
		t.Errorf("unexpected rendered text %q", got)
	}
}

func TestHandler_FallsBackOnRenderError(t *testing.T) {
	content := strings.Repeat("x", 700)
	s, _ := message.NewSession("1", content)
	r := renderFunc(func(context.Context, orchestrator.Request) (orchestrator.Result, error) {
		return orchestrator.Result{}, &orchestrator.RenderError{Step: orchestrator.StepPaint, Err: errors.New("boom")}
	})

	stats := &Stats{}
	if err := Handler(Static(DefaultSettings()), r, logger.NewNoop(), stats)(context.Background(), s); err != nil {
		t.Fatalf("render failure should not fail the send: %v", err)
	}
	if message.Text(s.Elements) != content {
		t.Error("original text should be sent unchanged")
	}
	if stats.Fallbacks.Load() != 1 {
		t.Errorf("expected 1 fallback, got %d", stats.Fallbacks.Load())
	}
}

func TestHandler_Canceled(t *testing.T) {
	s, _ := message.NewSession("1", strings.Repeat("x", 700))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := renderFunc(func(ctx context.Context, _ orchestrator.Request) (orchestrator.Result, error) {
		return orchestrator.Result{}, ctx.Err()
	})
	err := Handler(Static(DefaultSettings()), r, logger.NewNoop(), nil)(ctx, s)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
