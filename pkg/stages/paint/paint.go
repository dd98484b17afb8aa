// Package paint implements the paint stage: it fills the background plate
// and draws the message text on a canvas already sized by the layout stage.
package paint

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/user/imagify/pkg/fill"
	"github.com/user/imagify/pkg/geometry"
	"github.com/user/imagify/pkg/pipeline"
	"github.com/user/imagify/pkg/ports"
)

// ErrNonFiniteGeometry is returned when a resolved gradient coordinate is NaN or infinite.
var ErrNonFiniteGeometry = errors.New("gradient geometry is not finite")

// Stage paints the background then the foreground text.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new paint stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("paint"),
	}
}

// Execute paints the canvas. The canvas must already be sized and carry the
// text style used for layout.
//
// When a ground has a base colour, that colour is painted first: the full
// rect for the background, a complete text pass for the foreground. The
// ground's own style is painted on top.
func (s *Stage) Execute(ctx context.Context, input pipeline.PaintInput) (pipeline.PaintResult, error) {
	canvas := input.Canvas
	w, h := canvas.Width(), canvas.Height()

	bg := input.Background.Resolve(w, h)
	if err := checkFinite(bg); err != nil {
		return pipeline.PaintResult{}, fmt.Errorf("background: %w", err)
	}
	fg := input.Foreground.Resolve(w, h)
	if err := checkFinite(fg); err != nil {
		return pipeline.PaintResult{}, fmt.Errorf("foreground: %w", err)
	}

	// Background
	if input.Background.HasBase() {
		canvas.SetFillColor(input.Background.BaseColor)
		canvas.FillRect(0, 0, float64(w), float64(h))
	}
	applyStyle(canvas, bg)
	canvas.FillRect(0, 0, float64(w), float64(h))
	s.logger.Debug("Painted background: %s", describe(bg))

	if err := ctx.Err(); err != nil {
		return pipeline.PaintResult{}, err
	}

	// Foreground
	x := float64(input.Params.Padding.Left)
	y := float64(input.Params.Padding.Top)
	wrap := input.Params.WrapWidth()
	passes := 0

	if input.Foreground.HasBase() {
		canvas.SetFillColor(input.Foreground.BaseColor)
		if err := canvas.FillText(input.Content, x, y, wrap); err != nil {
			return pipeline.PaintResult{}, fmt.Errorf("base text pass: %w", err)
		}
		passes++
	}
	applyStyle(canvas, fg)
	if err := canvas.FillText(input.Content, x, y, wrap); err != nil {
		return pipeline.PaintResult{}, fmt.Errorf("text pass: %w", err)
	}
	passes++
	s.logger.Debug("Painted foreground: %s in %d passes", describe(fg), passes)

	return pipeline.PaintResult{
		Background: bg,
		Foreground: fg,
		TextPasses: passes,
	}, nil
}

// applyStyle makes style the canvas's current fill style.
// Stops are added in configured order.
func applyStyle(canvas ports.Canvas, style fill.Style) {
	switch style.Kind {
	case fill.KindLinearGradient:
		l := style.Line
		g := canvas.CreateLinearGradient(l.X0, l.Y0, l.X1, l.Y1)
		addStops(g, style.Stops)
		canvas.SetFillGradient(g)
	case fill.KindRadialGradient:
		c := style.Circles
		g := canvas.CreateRadialGradient(c.X0, c.Y0, c.R0, c.X1, c.Y1, c.R1)
		addStops(g, style.Stops)
		canvas.SetFillGradient(g)
	default:
		canvas.SetFillColor(style.Color)
	}
}

func addStops(g ports.Gradient, stops []fill.Stop) {
	for _, stop := range stops {
		g.AddColorStop(stop.Offset, stop.Color)
	}
}

func checkFinite(style fill.Style) error {
	var values []float64
	switch style.Kind {
	case fill.KindLinearGradient:
		l := style.Line
		values = []float64{l.X0, l.Y0, l.X1, l.Y1}
	case fill.KindRadialGradient:
		c := style.Circles
		values = []float64{c.X0, c.Y0, c.R0, c.X1, c.Y1, c.R1}
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFiniteGeometry
		}
	}
	return nil
}

func describe(style fill.Style) string {
	switch style.Kind {
	case fill.KindLinearGradient:
		return fmt.Sprintf("linear %s", lineString(style.Line))
	case fill.KindRadialGradient:
		c := style.Circles
		return fmt.Sprintf("radial (%g,%g,%g)-(%g,%g,%g)", c.X0, c.Y0, c.R0, c.X1, c.Y1, c.R1)
	case fill.KindColor:
		return "color"
	default:
		return "fallback"
	}
}

func lineString(l geometry.Line) string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", l.X0, l.Y0, l.X1, l.Y1)
}
