package ports

import (
	"image/color"
)

// Renderer creates independent drawing surfaces.
// Every outgoing message gets its own canvas; canvases are never shared
// between concurrent renders.
type Renderer interface {
	// NewCanvas creates a blank canvas. Its size is undefined until Resize is called.
	NewCanvas() Canvas
}

// Canvas is the 2D drawing surface the render pipeline paints on.
// It mirrors the subset of an HTML canvas 2D context that imagify needs.
type Canvas interface {
	// Width returns the current pixel width.
	Width() int

	// Height returns the current pixel height.
	Height() int

	// Resize changes the pixel dimensions and clears the canvas.
	// Like an HTML canvas, resizing resets text state, so SetTextStyle
	// must be called again afterwards.
	Resize(width, height int)

	// SetTextStyle configures alignment, baseline, wrapping and the font string.
	SetTextStyle(style TextStyle) error

	// MeasureText measures text with the current text style.
	// maxWidth <= 0 disables width-based wrapping.
	MeasureText(text string, maxWidth float64) (TextMetrics, error)

	// CreateLinearGradient creates a gradient along the line (x0,y0)-(x1,y1).
	CreateLinearGradient(x0, y0, x1, y1 float64) Gradient

	// CreateRadialGradient creates a two-circle radial gradient.
	CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) Gradient

	// SetFillColor sets a solid fill style.
	SetFillColor(c color.Color)

	// SetFillGradient sets a gradient created by this canvas as fill style.
	SetFillGradient(g Gradient)

	// FillRect fills a rectangle with the current fill style.
	FillRect(x, y, w, h float64)

	// FillText draws text at (x, y) with the current fill style.
	// maxWidth <= 0 disables width-based wrapping.
	FillText(text string, x, y, maxWidth float64) error

	// EncodePNG encodes the current pixels as PNG.
	EncodePNG() ([]byte, error)
}

// Gradient is a colour ramp created by a Canvas.
type Gradient interface {
	// AddColorStop adds a stop; offsets are in [0, 1].
	AddColorStop(offset float64, c color.Color)
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	Align    TextAlign
	Baseline TextBaseline
	Wrap     bool
	// Font is a CSS-like font shorthand, e.g. "20px/30px Microsoft YaHei, sans-serif".
	Font string
}

// TextAlign specifies horizontal text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline specifies which part of the first line sits at the y coordinate.
type TextBaseline int

const (
	BaselineTop TextBaseline = iota
	BaselineAlphabetic
)

// TextMetrics is the result of measuring (and wrapping) a piece of text.
type TextMetrics struct {
	// Width is the widest visual line in pixels.
	Width float64
	// Lines contains one entry per visual line after wrapping.
	Lines []LineMetrics
}

// LineMetrics describes one visual line.
type LineMetrics struct {
	Text  string
	Width float64
	// Baseline is the baseline offset from the text origin in pixels.
	Baseline float64
	// Height is the line box height in pixels.
	Height float64
}
