// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/user/imagify/pkg/ports"
)

// ErrNoTextStyle is returned when text is measured or drawn before
// SetTextStyle, including after a Resize.
var ErrNoTextStyle = errors.New("text style not set")

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	fonts *FontResolver
}

// New creates a new Renderer that resolves font families with fonts.
func New(fonts *FontResolver) *Renderer {
	return &Renderer{fonts: fonts}
}

// NewCanvas creates a 1x1 transparent canvas.
func (r *Renderer) NewCanvas() ports.Canvas {
	return &Canvas{
		dc:    gg.NewContext(1, 1),
		fonts: r.fonts,
		fill:  gg.NewSolidPattern(color.Black),
	}
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	dc    *gg.Context
	fonts *FontResolver

	style      ports.TextStyle
	face       font.Face
	lineHeight float64
	ascent     float64
	descent    float64

	fill gg.Pattern
}

// Width returns the current pixel width.
func (c *Canvas) Width() int {
	return c.dc.Width()
}

// Height returns the current pixel height.
func (c *Canvas) Height() int {
	return c.dc.Height()
}

// Resize replaces the pixels with a transparent width x height image and
// drops the text style.
func (c *Canvas) Resize(width, height int) {
	c.dc = gg.NewContext(max(width, 1), max(height, 1))
	c.face = nil
	c.style = ports.TextStyle{}
	c.fill = gg.NewSolidPattern(color.Black)
}

// SetTextStyle parses the font shorthand and loads the face.
func (c *Canvas) SetTextStyle(style ports.TextStyle) error {
	spec, err := ParseFont(style.Font)
	if err != nil {
		return err
	}
	face, err := c.fonts.Face(spec)
	if err != nil {
		return err
	}

	m := face.Metrics()
	c.ascent = float64(m.Ascent) / 64
	c.descent = float64(m.Descent) / 64
	c.lineHeight = spec.LineHeight
	if c.lineHeight == 0 {
		c.lineHeight = c.ascent + c.descent
		if c.lineHeight == 0 {
			c.lineHeight = float64(m.Height) / 64
		}
	}

	c.style = style
	c.face = face
	c.dc.SetFontFace(face)
	return nil
}

// MeasureText wraps and measures text. Baselines are relative to the y
// passed to FillText and honour the configured text baseline.
func (c *Canvas) MeasureText(text string, maxWidth float64) (ports.TextMetrics, error) {
	if c.face == nil {
		return ports.TextMetrics{}, ErrNoTextStyle
	}
	if !c.style.Wrap {
		maxWidth = 0
	}

	var metrics ports.TextMetrics
	for i, line := range wrapText(text, maxWidth, c.measure) {
		w := c.measure(line)
		if w > metrics.Width {
			metrics.Width = w
		}
		metrics.Lines = append(metrics.Lines, ports.LineMetrics{
			Text:     line,
			Width:    w,
			Baseline: c.baseline(i),
			Height:   c.lineHeight,
		})
	}
	return metrics, nil
}

func (c *Canvas) measure(s string) float64 {
	w, _ := c.dc.MeasureString(s)
	return w
}

// baseline returns the baseline offset of line i. With a top baseline the
// glyphs sit inside a line box of lineHeight, split evenly above and below
// the font's ascent and descent.
func (c *Canvas) baseline(i int) float64 {
	offset := float64(i) * c.lineHeight
	if c.style.Baseline == ports.BaselineTop {
		halfLeading := (c.lineHeight - (c.ascent + c.descent)) / 2
		offset += halfLeading + c.ascent
	}
	return offset
}

// CreateLinearGradient creates a gradient along (x0,y0)-(x1,y1).
func (c *Canvas) CreateLinearGradient(x0, y0, x1, y1 float64) ports.Gradient {
	return gg.NewLinearGradient(x0, y0, x1, y1)
}

// CreateRadialGradient creates a two-circle gradient.
func (c *Canvas) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) ports.Gradient {
	return gg.NewRadialGradient(x0, y0, r0, x1, y1, r1)
}

// SetFillColor sets a solid fill style.
func (c *Canvas) SetFillColor(col color.Color) {
	c.fill = gg.NewSolidPattern(col)
}

// SetFillGradient sets a gradient created by CreateLinearGradient or
// CreateRadialGradient as fill style. Other gradients are ignored.
func (c *Canvas) SetFillGradient(g ports.Gradient) {
	if p, ok := g.(gg.Pattern); ok {
		c.fill = p
	}
}

// FillRect fills a rectangle with the current fill style.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.dc.SetFillStyle(c.fill)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// FillText draws text with the current fill style.
// gg only draws glyphs in a uniform colour, so the glyphs are rendered into
// an alpha mask and the fill style is painted through it.
func (c *Canvas) FillText(text string, x, y, maxWidth float64) error {
	metrics, err := c.MeasureText(text, maxWidth)
	if err != nil {
		return err
	}

	mc := gg.NewContext(c.dc.Width(), c.dc.Height())
	mc.SetFontFace(c.face)
	mc.SetColor(color.Black)
	for _, line := range metrics.Lines {
		lx := x
		switch c.style.Align {
		case ports.AlignCenter:
			lx -= line.Width / 2
		case ports.AlignRight:
			lx -= line.Width
		}
		mc.DrawString(line.Text, lx, y+line.Baseline)
	}

	if err := c.dc.SetMask(mc.AsMask()); err != nil {
		return fmt.Errorf("set text mask: %w", err)
	}
	c.dc.SetFillStyle(c.fill)
	c.dc.DrawRectangle(0, 0, float64(c.dc.Width()), float64(c.dc.Height()))
	c.dc.Fill()
	c.dc.ResetClip()
	return nil
}

// EncodePNG encodes the canvas as PNG.
func (c *Canvas) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Image returns the canvas pixels.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
