package lazyseq

import (
	"context"
	"errors"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/iterkit"
)

// TryGetNext advances the cursor once.
// It returns the next element and true, or a zero value and false when the sequence is exhausted.
func TryGetNext[T any](c Cursor[T]) (element T, hasElement bool) {
	if !c.Next() {
		return element, false
	}
	return c.Value(), true
}

// TryGetNextAsync advances the cursor once with ctx.
//
// Exhaustion is reported as hasElement false with a nil error.
// Cancellation is not exhaustion: it is reported as an error wrapping ErrCancelled,
// and the cursor can be pulled again with a live context.
func TryGetNextAsync[T any](ctx context.Context, c AsyncCursor[T]) (element T, hasElement bool, err error) {
	if !c.Next(ctx) {
		return element, false, c.Err()
	}
	return c.Value(), true, nil
}

// ForEach calls fn with every element of the sequence until it is exhausted.
// Returning Break from fn stops the iteration without an error.
// Infinite sequences must be stopped by fn.
func ForEach[T any](seq *Sequence[T], fn func(T) error) (rErr error) {
	c := seq.Cursor()
	defer errorkit.Finish(&rErr, c.Close)
	for c.Next() {
		err := fn(c.Value())
		if errors.Is(err, Break) {
			break
		}
		if err != nil {
			return err
		}
	}
	return c.Err()
}

// ForEachAsync is the AsyncSequence counterpart of ForEach.
// Pull errors, including cancellation, are returned as they are.
func ForEachAsync[T any](ctx context.Context, seq *AsyncSequence[T], fn func(T) error) (rErr error) {
	c := seq.Cursor()
	defer errorkit.Finish(&rErr, c.Close)
	for c.Next(ctx) {
		err := fn(c.Value())
		if errors.Is(err, Break) {
			break
		}
		if err != nil {
			return err
		}
	}
	return c.Err()
}

// Take collects at most n leading elements of the sequence.
// The generator is not called for elements beyond n.
func Take[T any](seq *Sequence[T], n int) []T {
	return iterkit.Collect(iterkit.Head(seq.All(), n))
}

// TakeAsync collects at most n leading elements of the sequence.
// On a pull error, the elements collected so far are returned together with the error.
func TakeAsync[T any](ctx context.Context, seq *AsyncSequence[T], n int) ([]T, error) {
	return iterkit.CollectE(iterkit.HeadE(seq.All(ctx), n))
}
