package lazyseq

import (
	"context"

	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

// phase is the position of a cursor in the pull protocol.
//
//	notStarted -> active -> completed
//
// stepping is only observable from the outside when a generator call never returned.
type phase int

const (
	notStarted phase = iota
	active
	stepping
	completed
)

// step is the normalised generator that every engine is reduced to.
// Stateless engines use struct{} as state, synchronous engines never return an error.
type step[T, S any] func(ctx context.Context, prev T, state S, index uint64) (next T, nextState S, isLast bool, err error)

// descriptor is the immutable description of a sequence.
// It is shared by all cursors and never mutated after construction.
type descriptor[T, S any] struct {
	first   T
	initial S
	step    step[T, S]
}

func (d descriptor[T, S]) cursor() *cursor[T, S] {
	return &cursor[T, S]{
		step:    d.step,
		current: d.first,
		state:   d.initial,
	}
}

// cursor holds the mutable position of a single traversal.
type cursor[T, S any] struct {
	step step[T, S]

	phase   phase
	current T
	state   S
	// index is the position of current, the generator is asked for index+1.
	index uint64

	value T
	err   error
}

func (c *cursor[T, S]) pull(ctx context.Context) bool {
	switch c.phase {
	case completed:
		return false
	case stepping:
		c.err = ErrCursorBroken
		c.phase = completed
		return false
	case notStarted:
		c.phase = active
		c.value = c.current
		return true
	}

	index := c.index + 1
	c.phase = stepping
	next, state, isLast, err := c.step(ctx, c.current, c.state, index)
	if err != nil {
		c.err = err
		c.phase = completed
		logger.Debug(ctx, "lazy sequence generator failed",
			logging.Field("index", index),
			logging.ErrField(err))
		return false
	}
	if isLast {
		c.phase = completed
		logger.Debug(ctx, "lazy sequence completed", logging.Field("index", c.index))
		return false
	}

	c.current, c.state, c.index = next, state, index
	c.value = next
	c.phase = active
	return true
}

func (c *cursor[T, S]) isCompleted() bool {
	return c.phase == completed
}

func (c *cursor[T, S]) close() error {
	c.phase = completed
	return nil
}
