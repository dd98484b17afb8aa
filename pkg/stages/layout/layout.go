// Package layout implements the text layout stage: it measures the message
// text on the drawing surface and sizes the canvas to fit it.
package layout

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/user/imagify/pkg/pipeline"
	"github.com/user/imagify/pkg/ports"
)

// Stage measures text and resizes the canvas to fit it plus padding.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new layout stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("layout"),
	}
}

// Execute configures the text engine, measures the content, resizes the
// canvas and configures the text engine again, because resizing resets it.
func (s *Stage) Execute(ctx context.Context, input pipeline.LayoutInput) (pipeline.LayoutResult, error) {
	style := TextStyle(input.Params)

	if err := input.Canvas.SetTextStyle(style); err != nil {
		return pipeline.LayoutResult{}, fmt.Errorf("set text style: %w", err)
	}

	metrics, err := input.Canvas.MeasureText(input.Content, input.Params.WrapWidth())
	if err != nil {
		return pipeline.LayoutResult{}, fmt.Errorf("measure text: %w", err)
	}

	size := ComputeCanvasSize(metrics, input.Params)
	input.Canvas.Resize(size.Width, size.Height)

	if err := input.Canvas.SetTextStyle(style); err != nil {
		return pipeline.LayoutResult{}, fmt.Errorf("reset text style: %w", err)
	}

	s.logger.Debug("Layout calculated: %d lines, %dx%d canvas", len(metrics.Lines), size.Width, size.Height)

	return pipeline.LayoutResult{
		Font:    style.Font,
		Metrics: metrics,
		Canvas:  size,
	}, nil
}

// TextStyle returns the text engine configuration used for measuring and drawing.
func TextStyle(p pipeline.LayoutParams) ports.TextStyle {
	return ports.TextStyle{
		Align:    ports.AlignLeft,
		Baseline: ports.BaselineTop,
		Wrap:     true,
		Font:     FontString(p),
	}
}

// FontString composes "<fontSize>px[/<lineHeight>px] <fontFamily>".
// The line height segment is omitted when LineHeight is 0.
func FontString(p pipeline.LayoutParams) string {
	size := formatPx(p.FontSize)
	if p.LineHeight != 0 {
		size += "/" + formatPx(p.LineHeight)
	}
	return size + " " + p.FontFamily
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ComputeCanvasSize derives the canvas dimensions from measured text:
//
//	width  = max(textWidth, imageMinWidth) + left + right
//	height = lastLineBaseline + lineHeight/2 + top + bottom
//
// Fractional pixels are rounded up so the text is never clipped.
func ComputeCanvasSize(metrics ports.TextMetrics, p pipeline.LayoutParams) pipeline.Dimension {
	textWidth := math.Max(metrics.Width, float64(p.ImageMinWidth))

	lastBaseline := 0.0
	if n := len(metrics.Lines); n > 0 {
		lastBaseline = metrics.Lines[n-1].Baseline
	}
	textHeight := lastBaseline + p.LineHeight/2

	return pipeline.Dimension{
		Width:  int(math.Ceil(textWidth)) + p.Padding.Left + p.Padding.Right,
		Height: int(math.Ceil(textHeight)) + p.Padding.Top + p.Padding.Bottom,
	}
}
