package pipeline

import (
	"github.com/user/imagify/pkg/fill"
	"github.com/user/imagify/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height in pixels.
type Dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Padding is the space between the canvas edge and the text block.
type Padding struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// MaxWidth controls width-based wrapping.
type MaxWidth struct {
	Auto     bool // Size the image to the text; no wrapping beyond explicit newlines
	MaxWidth int  // Wrap width in pixels when Auto is false (min: 300)
}

// LayoutParams holds the font and layout configuration.
type LayoutParams struct {
	FontSize      float64  // Font size in px (default: 20)
	LineHeight    float64  // Line height in px; 0 uses the font's natural metric
	FontFamily    string   // CSS-like family list, passed through to the text shaper
	Padding       Padding  // default: 20 on every side
	ImageMinWidth int      // Minimum text block width (default: 200, min: 100)
	ImageMaxWidth MaxWidth // default: auto
}

// DefaultLayoutParams returns LayoutParams with default values.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{
		FontSize:      20,
		LineHeight:    0,
		FontFamily:    "Microsoft YaHei, sans-serif",
		Padding:       Padding{Left: 20, Right: 20, Top: 20, Bottom: 20},
		ImageMinWidth: 200,
		ImageMaxWidth: MaxWidth{Auto: true, MaxWidth: 400},
	}
}

// WrapWidth returns the wrap width passed to the drawing surface;
// 0 means unconstrained.
func (p LayoutParams) WrapWidth() float64 {
	if p.ImageMaxWidth.Auto {
		return 0
	}
	return float64(p.ImageMaxWidth.MaxWidth)
}

// =============================================================================
// Layout Stage Types
// =============================================================================

// LayoutInput contains the text and the canvas to size for it.
type LayoutInput struct {
	Canvas  ports.Canvas
	Content string
	Params  LayoutParams
}

// LayoutResult contains the measured text and the resulting canvas size.
type LayoutResult struct {
	Font    string
	Metrics ports.TextMetrics
	Canvas  Dimension
}

// =============================================================================
// Paint Stage Types
// =============================================================================

// PaintInput contains everything needed to paint one message.
type PaintInput struct {
	Canvas     ports.Canvas
	Content    string
	Params     LayoutParams
	Background fill.Spec
	Foreground fill.Spec
}

// PaintResult records the fill styles that were painted.
type PaintResult struct {
	Background fill.Style
	Foreground fill.Style
	// TextPasses is 2 when the foreground has a base colour, otherwise 1.
	TextPasses int
}
