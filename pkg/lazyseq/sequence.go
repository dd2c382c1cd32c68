package lazyseq

import (
	"context"
	"iter"

	"go.llib.dev/frameless/pkg/iterkit"
)

// Generator produces the element at index from the previous element.
//
// Returning isLast ends the sequence.
// The element returned together with isLast is not yielded,
// the previous element remains the last one a consumer receives.
type Generator[T any] func(prev T, index uint64) (next T, isLast bool)

// Sequence is a lazily generated, synchronous sequence.
// It is safe to share a Sequence between goroutines, as each Cursor is an independent traversal.
type Sequence[T any] struct {
	open func() Cursor[T]
}

// New creates a Sequence that starts with first,
// and computes every following element with the generator.
//
// New returns ErrInvalidArgument when first or the generator is absent (nil).
func New[T any](first T, generator Generator[T]) (*Sequence[T], error) {
	if err := checkFirst(first); err != nil {
		return nil, err
	}
	if err := checkGenerator(generator); err != nil {
		return nil, err
	}
	return newSequence(descriptor[T, struct{}]{
		first: first,
		step: func(_ context.Context, prev T, state struct{}, index uint64) (T, struct{}, bool, error) {
			next, isLast := generator(prev, index)
			return next, state, isLast, nil
		},
	}), nil
}

func newSequence[T, S any](d descriptor[T, S]) *Sequence[T] {
	return &Sequence[T]{open: func() Cursor[T] {
		return &syncCursor[T, S]{cursor: d.cursor()}
	}}
}

// Cursor starts a new traversal from the first element.
func (seq *Sequence[T]) Cursor() Cursor[T] {
	return seq.open()
}

// All returns the sequence as an iter.Seq.
// Each range statement over it opens its own Cursor and closes it when the loop ends.
// Ranging over an infinite sequence needs a break.
func (seq *Sequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		c := seq.Cursor()
		next := func() (T, bool) { return TryGetNext(c) }
		iterkit.FromPull(next, func() { _ = c.Close() })(yield)
	}
}

type syncCursor[T, S any] struct {
	cursor *cursor[T, S]
}

func (c *syncCursor[T, S]) Next() bool {
	return c.cursor.pull(context.Background())
}

func (c *syncCursor[T, S]) Value() T {
	return c.cursor.value
}

func (c *syncCursor[T, S]) Err() error {
	return c.cursor.err
}

func (c *syncCursor[T, S]) Close() error {
	return c.cursor.close()
}
