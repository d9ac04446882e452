// Package pipeline provides the stage abstraction shared by the verify and
// generate commands.
package pipeline

import (
	"context"
	"time"

	"github.com/user/frameseq/pkg/ports"
)

// Stage represents a processing stage.
// Each stage takes an input and produces an output.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc is a function adapter for Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage interface.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}

// Timed wraps a stage and logs its wall-clock duration at debug level.
func Timed[In, Out any](name string, logger ports.Logger, stage Stage[In, Out]) Stage[In, Out] {
	return StageFunc[In, Out](func(ctx context.Context, input In) (Out, error) {
		start := time.Now()
		out, err := stage.Execute(ctx, input)
		logger.Debug("Stage %s finished in %s", name, time.Since(start).Round(time.Millisecond))
		return out, err
	})
}
