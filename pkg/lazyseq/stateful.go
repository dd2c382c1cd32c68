package lazyseq

import "context"

// StatefulGenerator produces the element at index from the previous element and the iteration state.
// The returned nextState is what the generator receives on the following call.
// The state is private to the generator, consumers of the sequence never see it.
//
// Returning isLast ends the sequence, and the element returned with it is not yielded.
type StatefulGenerator[T, S any] func(prev T, state S, index uint64) (next T, nextState S, isLast bool)

// NewStateful creates a Sequence that starts with first,
// and threads initial through the generator calls of every traversal.
// Each Cursor starts again from initial.
//
// NewStateful returns ErrInvalidArgument when first, initial or the generator is absent (nil).
func NewStateful[T, S any](first T, initial S, generator StatefulGenerator[T, S]) (*Sequence[T], error) {
	if err := checkFirst(first); err != nil {
		return nil, err
	}
	if err := checkInitialState(initial); err != nil {
		return nil, err
	}
	if err := checkGenerator(generator); err != nil {
		return nil, err
	}
	return newSequence(descriptor[T, S]{
		first:   first,
		initial: initial,
		step: func(_ context.Context, prev T, state S, index uint64) (T, S, bool, error) {
			next, nextState, isLast := generator(prev, state, index)
			return next, nextState, isLast, nil
		},
	}), nil
}
