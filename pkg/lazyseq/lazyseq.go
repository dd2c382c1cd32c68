// Package lazyseq provides lazily generated sequences.
//
// # Summary
//
// A lazy sequence is described by its first element and a generator function.
// Nothing is computed up front: every element after the first is produced by the generator
// at the moment a consumer pulls it, which makes infinite sequences and expensive
// element construction cheap to declare.
//
// The package has four engines along two axes.
// Stateful engines thread an opaque state value through every generator call,
// so recurrences can depend on more than the previous element (running totals, fibonacci).
// Async engines receive the pull's context.Context and may block while producing an element,
// which makes them a good fit for paginated remote resources.
//
// Every call to Cursor starts an independent traversal over the same immutable description,
// so a sequence value can be shared and iterated any number of times.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Lazy_evaluation
// https://en.wikipedia.org/wiki/Iterator_pattern
package lazyseq

import (
	"context"
	"io"
	"reflect"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/must"
	"go.llib.dev/frameless/pkg/reflectkit"
)

const (
	// ErrInvalidArgument is returned by the constructors when a required input is absent.
	ErrInvalidArgument errorkit.Error = "lazyseq: invalid argument"
	// ErrCancelled is reported by async cursors when the pull's context is already done.
	// It wraps the context's error, so errors.Is works with context.Canceled as well.
	ErrCancelled errorkit.Error = "lazyseq: cancelled"
	// ErrCursorBroken is reported when a cursor is pulled again after a generator step was interrupted by a panic.
	ErrCursorBroken errorkit.Error = "lazyseq: cursor broken by an interrupted generator step"
)

// Break can be returned from a ForEach block to stop the iteration without an error.
const Break errorkit.Error = "lazyseq:break"

// Cursor is the pull side of a synchronous lazy sequence.
// Clients use a Cursor to traverse a sequence one element at a time.
// Interface design follows the frameless iterkit.PullIter.
type Cursor[T any] interface {
	// Next generates the next element and reports whether there was one.
	// Once Next returns false, it keeps returning false.
	Next() bool
	// Value returns the element produced by the last successful Next call.
	// The action is repeatable without side effects.
	Value() T
	// Err returns the reason why Next returned false, if it was not a normal completion.
	Err() error
	// Closer abandons the traversal.
	io.Closer
}

// AsyncCursor is the pull side of an asynchronous lazy sequence.
// Each Next call is a suspension point: it blocks until the generator produced the element,
// and it is the only place where the context is checked for cancellation.
type AsyncCursor[T any] interface {
	// Next generates the next element and reports whether there was one.
	// When ctx is already done, Next returns false without calling the generator,
	// and Err reports ErrCancelled.
	Next(ctx context.Context) bool
	// Value returns the element produced by the last successful Next call.
	Value() T
	// Err returns the cause of the last failed Next call.
	Err() error
	io.Closer
}

// Must panics when err is not nil.
// It is meant for package level sequences where the constructor arguments are known to be valid.
func Must[T any](v T, err error) T {
	return must.Must(v, err)
}

func isAbsent[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	return !rv.IsValid() || reflectkit.IsNil(rv)
}

func checkFirst[T any](first T) error {
	if isAbsent(first) {
		return ErrInvalidArgument.F("first element is absent")
	}
	return nil
}

func checkInitialState[S any](initial S) error {
	if isAbsent(initial) {
		return ErrInvalidArgument.F("initial state is absent")
	}
	return nil
}

func checkGenerator[G any](generator G) error {
	if isAbsent(generator) {
		return ErrInvalidArgument.F("generator is absent")
	}
	return nil
}
