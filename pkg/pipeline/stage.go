// Package pipeline defines the stage abstraction and the data passed
// between the stages that turn one message into an image.
package pipeline

import (
	"context"
)

// Stage is one step of the per-message render pipeline.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
