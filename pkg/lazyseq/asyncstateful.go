package lazyseq

import "context"

// AsyncStatefulGenerator is the blocking counterpart of StatefulGenerator.
// The state returned by a call is passed to the next call of the same traversal.
//
// A returned error ends the traversal and is reported by the cursor unmodified.
// Returning isLast ends the sequence, and the element returned with it is not yielded.
type AsyncStatefulGenerator[T, S any] func(ctx context.Context, prev T, state S, index uint64) (next T, nextState S, isLast bool, err error)

// NewAsyncStateful creates an AsyncSequence that starts with first,
// and threads initial through the generator calls of every traversal.
//
// NewAsyncStateful returns ErrInvalidArgument when first, initial or the generator is absent (nil).
func NewAsyncStateful[T, S any](first T, initial S, generator AsyncStatefulGenerator[T, S]) (*AsyncSequence[T], error) {
	if err := checkFirst(first); err != nil {
		return nil, err
	}
	if err := checkInitialState(initial); err != nil {
		return nil, err
	}
	if err := checkGenerator(generator); err != nil {
		return nil, err
	}
	return newAsyncSequence(descriptor[T, S]{
		first:   first,
		initial: initial,
		step:    step[T, S](generator),
	}), nil
}
