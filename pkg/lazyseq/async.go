package lazyseq

import (
	"context"

	"go.llib.dev/frameless/pkg/iterkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

// AsyncGenerator produces the element at index from the previous element.
// It may block, for example on a remote call, and it should respect ctx while doing so.
//
// A returned error ends the traversal and is reported by the cursor unmodified.
// Returning isLast ends the sequence, and the element returned with it is not yielded.
type AsyncGenerator[T any] func(ctx context.Context, prev T, index uint64) (next T, isLast bool, err error)

// AsyncSequence is a lazily generated sequence whose elements may take time to produce.
type AsyncSequence[T any] struct {
	open func() AsyncCursor[T]
}

// NewAsync creates an AsyncSequence that starts with first,
// and computes every following element with the generator.
//
// NewAsync returns ErrInvalidArgument when first or the generator is absent (nil).
func NewAsync[T any](first T, generator AsyncGenerator[T]) (*AsyncSequence[T], error) {
	if err := checkFirst(first); err != nil {
		return nil, err
	}
	if err := checkGenerator(generator); err != nil {
		return nil, err
	}
	return newAsyncSequence(descriptor[T, struct{}]{
		first: first,
		step: func(ctx context.Context, prev T, state struct{}, index uint64) (T, struct{}, bool, error) {
			next, isLast, err := generator(ctx, prev, index)
			return next, state, isLast, err
		},
	}), nil
}

func newAsyncSequence[T, S any](d descriptor[T, S]) *AsyncSequence[T] {
	return &AsyncSequence[T]{open: func() AsyncCursor[T] {
		return &asyncCursor[T, S]{cursor: d.cursor()}
	}}
}

// Cursor starts a new traversal from the first element.
func (seq *AsyncSequence[T]) Cursor() AsyncCursor[T] {
	return seq.open()
}

// All returns the sequence as an iterkit.SeqE that pulls with ctx.
// When a pull fails, the error is yielded once with a zero element, and the iteration stops.
// Each range statement over it opens its own cursor.
func (seq *AsyncSequence[T]) All(ctx context.Context) iterkit.SeqE[T] {
	return func(yield func(T, error) bool) {
		iterkit.FromPullIter[T](boundCursor[T]{AsyncCursor: seq.Cursor(), ctx: ctx})(yield)
	}
}

// boundCursor turns an AsyncCursor into an iterkit.PullIter that pulls with a fixed context.
type boundCursor[T any] struct {
	AsyncCursor[T]
	ctx context.Context
}

func (c boundCursor[T]) Next() bool {
	return c.AsyncCursor.Next(c.ctx)
}

type asyncCursor[T, S any] struct {
	cursor *cursor[T, S]
	// cancelled is the error of the last pull when it was refused due to cancellation.
	// Unlike generator errors, it does not end the traversal.
	cancelled error
}

func (c *asyncCursor[T, S]) Next(ctx context.Context) bool {
	if c.cursor.isCompleted() {
		c.cancelled = nil
		return false
	}
	if err := ctx.Err(); err != nil {
		c.cancelled = ErrCancelled.Wrap(err)
		logger.Debug(ctx, "lazy sequence pull cancelled",
			logging.Field("index", c.cursor.index),
			logging.ErrField(err))
		return false
	}
	c.cancelled = nil
	return c.cursor.pull(ctx)
}

func (c *asyncCursor[T, S]) Value() T {
	return c.cursor.value
}

func (c *asyncCursor[T, S]) Err() error {
	if c.cancelled != nil {
		return c.cancelled
	}
	return c.cursor.err
}

func (c *asyncCursor[T, S]) Close() error {
	c.cancelled = nil
	return c.cursor.close()
}
