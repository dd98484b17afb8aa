// Package imagify decides when an outgoing message is too long to send as
// text and replaces it with a rendered image.
package imagify

import (
	"context"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/user/imagify/pkg/hook"
	"github.com/user/imagify/pkg/message"
	"github.com/user/imagify/pkg/orchestrator"
	"github.com/user/imagify/pkg/ports"
)

// Thresholds decide when a message is imagized.
type Thresholds struct {
	// MaxLineCount is the largest number of lines sent as text (min: 1).
	MaxLineCount int
	// MaxLength is the largest plain-text length, in characters, sent as text (min: 1).
	MaxLength int
}

// DefaultThresholds returns the default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{MaxLineCount: 20, MaxLength: 600}
}

// Settings is the validated, immutable configuration of the handler.
type Settings struct {
	Thresholds Thresholds
	Render     orchestrator.Config
}

// DefaultSettings returns Settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Thresholds: DefaultThresholds(),
		Render:     orchestrator.DefaultConfig(),
	}
}

// ShouldImagize reports whether a message exceeds either threshold:
// the flattened text of elements is longer than MaxLength characters, or
// the raw content has more than MaxLineCount newline-separated lines.
func ShouldImagize(content string, elements []*message.Element, t Thresholds) bool {
	if utf8.RuneCountInString(message.Text(elements)) > t.MaxLength {
		return true
	}
	lines := strings.Count(content, "\n") + 1
	return lines > t.MaxLineCount
}

// Source provides the current settings. Implementations swap settings
// wholesale; a handler reads them once per message.
type Source interface {
	Current() *Settings
}

// StaticSource always returns the same settings.
type StaticSource struct {
	settings *Settings
}

// Static creates a Source for fixed settings.
func Static(s *Settings) *StaticSource {
	return &StaticSource{settings: s}
}

// Current implements Source.
func (s *StaticSource) Current() *Settings {
	return s.settings
}

// Renderer renders one message to PNG.
type Renderer interface {
	Render(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error)
}

// Stats counts handler outcomes.
type Stats struct {
	Imagized  atomic.Int64
	Skipped   atomic.Int64
	Fallbacks atomic.Int64
}

// Handler returns the before-send handler. Messages over a threshold are
// rendered and their elements replaced by a single PNG image element. When
// rendering fails the message is sent unchanged and the failure is logged.
// stats may be nil.
func Handler(src Source, renderer Renderer, logger ports.Logger, stats *Stats) hook.Handler {
	logger = logger.WithComponent("imagify")
	if stats == nil {
		stats = &Stats{}
	}

	return func(ctx context.Context, s *message.Session) error {
		settings := src.Current()
		if !ShouldImagize(s.Content, s.Elements, settings.Thresholds) {
			stats.Skipped.Add(1)
			return nil
		}

		result, err := renderer.Render(ctx, orchestrator.Request{
			ID:      s.ID,
			Content: plainText(s),
			Config:  settings.Render,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			stats.Fallbacks.Add(1)
			logger.Warn("Failed to imagize message %s, sending text: %s", s.ID, err)
			return nil
		}

		s.Elements = []*message.Element{message.NewImage(result.PNG, "image/png")}
		stats.Imagized.Add(1)
		logger.Info("Imagized message %s: %dx%d, %d bytes", s.ID, result.Size.Width, result.Size.Height, len(result.PNG))
		return nil
	}
}

// plainText is the text drawn on the image: the flattened elements, or the
// unescaped content when the elements carry no text.
func plainText(s *message.Session) string {
	if text := message.Text(s.Elements); text != "" {
		return text
	}
	return message.Unescape(s.Content)
}
