// Package summarizer provides summary generation for batch render results.
package summarizer

import "time"

// Summary contains the data collected while rendering a batch of messages.
type Summary struct {
	// Metadata
	GeneratedAt time.Time `yaml:"generated_at"`

	// Settings in effect
	Settings Settings `yaml:"settings"`

	// Per-message outcomes, in input order
	Messages []MessageInfo `yaml:"messages"`
}

// Settings describes the configuration used for the batch.
type Settings struct {
	ConfigPath   string `yaml:"config_path,omitempty"`
	MaxLineCount int    `yaml:"max_line_count"`
	MaxLength    int    `yaml:"max_length"`
	Font         string `yaml:"font"`
	Background   string `yaml:"background"`
	Foreground   string `yaml:"foreground"`
}

// Outcome is what happened to one message.
type Outcome string

const (
	// OutcomeImage means the message was replaced by an image.
	OutcomeImage Outcome = "image"
	// OutcomeText means the message was under both thresholds.
	OutcomeText Outcome = "text"
	// OutcomeFallback means rendering failed and the text was kept.
	OutcomeFallback Outcome = "fallback"
)

// MessageInfo contains the result for one message.
type MessageInfo struct {
	ID      string  `yaml:"id"`
	Lines   int     `yaml:"lines"`
	Length  int     `yaml:"length"`
	Outcome Outcome `yaml:"outcome"`

	// Image details, set for OutcomeImage
	Width     int   `yaml:"width,omitempty"`
	Height    int   `yaml:"height,omitempty"`
	ImageSize int64 `yaml:"image_size,omitempty"`
}

// Totals counts messages per outcome.
func (s *Summary) Totals() map[Outcome]int {
	totals := map[Outcome]int{}
	for _, m := range s.Messages {
		totals[m.Outcome]++
	}
	return totals
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSettings sets the batch settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// AddMessage appends a message result.
func (b *Builder) AddMessage(info MessageInfo) *Builder {
	b.summary.Messages = append(b.summary.Messages, info)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
