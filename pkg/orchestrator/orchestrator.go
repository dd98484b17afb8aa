// Package orchestrator coordinates the stages that render one message to PNG.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/imagify/pkg/fill"
	"github.com/user/imagify/pkg/pipeline"
	"github.com/user/imagify/pkg/ports"
)

// Config contains the render configuration shared by every message.
// It is built once from the loaded settings and never mutated.
type Config struct {
	Layout     pipeline.LayoutParams
	Background fill.Spec
	Foreground fill.Spec
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	bg, _ := fill.Normalize(fill.Raw{}, fill.Background)
	fg, _ := fill.Normalize(fill.Raw{}, fill.Foreground)
	return Config{
		Layout:     pipeline.DefaultLayoutParams(),
		Background: bg,
		Foreground: fg,
	}
}

// Request is one message to render.
type Request struct {
	// ID names debug output; it may be empty.
	ID      string
	Content string
	Config  Config
}

// Result contains the encoded image and what was computed on the way.
type Result struct {
	PNG    []byte
	Size   pipeline.Dimension
	Layout pipeline.LayoutResult
	Paint  pipeline.PaintResult
}

// Step names a render step in a RenderError.
type Step string

const (
	StepLayout Step = "layout"
	StepPaint  Step = "paint"
	StepEncode Step = "encode"
)

// RenderError reports the step at which rendering a message failed.
type RenderError struct {
	Step Step
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Step, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Orchestrator runs layout, paint and encode for one message at a time.
// It is safe for concurrent use: every Render gets its own canvas.
type Orchestrator struct {
	renderer    ports.Renderer
	layoutStage pipeline.Stage[pipeline.LayoutInput, pipeline.LayoutResult]
	paintStage  pipeline.Stage[pipeline.PaintInput, pipeline.PaintResult]
	sink        ports.DebugSink
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	renderer ports.Renderer,
	layoutStage pipeline.Stage[pipeline.LayoutInput, pipeline.LayoutResult],
	paintStage pipeline.Stage[pipeline.PaintInput, pipeline.PaintResult],
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		renderer:    renderer,
		layoutStage: layoutStage,
		paintStage:  paintStage,
		sink:        sink,
		logger:      logger.WithComponent("render"),
	}
}

// Render draws req.Content on a fresh canvas and encodes it as PNG.
// Any failure, including a panic in the drawing surface, is returned as a
// *RenderError and affects only this message.
func (o *Orchestrator) Render(ctx context.Context, req Request) (result Result, err error) {
	step := StepLayout
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Step: step, Err: fmt.Errorf("panic: %v", r)}
			result = Result{}
		}
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, &RenderError{Step: step, Err: err}
	}

	canvas := o.renderer.NewCanvas()

	// 1. Layout: configure text, measure, size the canvas
	layout, err := o.layoutStage.Execute(ctx, pipeline.LayoutInput{
		Canvas:  canvas,
		Content: req.Content,
		Params:  req.Config.Layout,
	})
	if err != nil {
		return Result{}, &RenderError{Step: step, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, &RenderError{Step: step, Err: err}
	}

	// 2. Paint background and text
	step = StepPaint
	painted, err := o.paintStage.Execute(ctx, pipeline.PaintInput{
		Canvas:     canvas,
		Content:    req.Content,
		Params:     req.Config.Layout,
		Background: req.Config.Background,
		Foreground: req.Config.Foreground,
	})
	if err != nil {
		return Result{}, &RenderError{Step: step, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, &RenderError{Step: step, Err: err}
	}

	// 3. Encode
	step = StepEncode
	data, err := canvas.EncodePNG()
	if err != nil {
		return Result{}, &RenderError{Step: step, Err: err}
	}
	o.logger.Debug("Image encoded: %d bytes", len(data))

	result = Result{
		PNG:    data,
		Size:   layout.Canvas,
		Layout: layout,
		Paint:  painted,
	}
	o.saveDebug(req.ID, result)

	return result, nil
}

type debugRecord struct {
	Font       string             `json:"font"`
	Canvas     pipeline.Dimension `json:"canvas"`
	Lines      []debugLine        `json:"lines"`
	Background fill.Style         `json:"background"`
	Foreground fill.Style         `json:"foreground"`
	TextPasses int                `json:"textPasses"`
}

type debugLine struct {
	Text     string  `json:"text"`
	Width    float64 `json:"width"`
	Baseline float64 `json:"baseline"`
}

// saveDebug writes the layout and the image to the debug sink.
// Sink failures are logged and never fail the render.
func (o *Orchestrator) saveDebug(id string, result Result) {
	if !o.sink.Enabled() {
		return
	}
	if id == "" {
		id = "message"
	}

	record := debugRecord{
		Font:       result.Layout.Font,
		Canvas:     result.Size,
		Background: result.Paint.Background,
		Foreground: result.Paint.Foreground,
		TextPasses: result.Paint.TextPasses,
	}
	for _, line := range result.Layout.Metrics.Lines {
		record.Lines = append(record.Lines, debugLine{Text: line.Text, Width: line.Width, Baseline: line.Baseline})
	}

	if data, err := json.MarshalIndent(record, "", "  "); err == nil {
		if err := o.sink.SaveLayoutJSON(id, data); err != nil {
			o.logger.Warn("Failed to save debug output: %s", err)
		}
	}
	if err := o.sink.SaveImage(id, result.PNG); err != nil {
		o.logger.Warn("Failed to save debug output: %s", err)
	}
}
