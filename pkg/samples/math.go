// Package samples holds ready made lazy sequences.
//
// They double as usage examples of every engine in lazyseq:
// progressions use the stateless engine, Fibonacci threads a state,
// and the pagination helpers show how an async stateful sequence walks a remote resource.
//
// The generators are exported as well, so callers can decorate them before building a sequence.
package samples

import (
	"math/big"

	"github.com/adamluzsi/lazyseq/pkg/lazyseq"
)

// ArithmeticProgression is the infinite sequence start, start+diff, start+2*diff, ...
func ArithmeticProgression(start, diff int) *lazyseq.Sequence[int] {
	return lazyseq.Must(lazyseq.New(start, ArithmeticStep(diff)))
}

func ArithmeticStep(diff int) lazyseq.Generator[int] {
	return func(prev int, _ uint64) (int, bool) {
		return prev + diff, false
	}
}

// GeometricProgression is the infinite sequence start, start*ratio, start*ratio^2, ...
// Elements overflow silently like any other int arithmetic.
func GeometricProgression(start, ratio int) *lazyseq.Sequence[int] {
	return lazyseq.Must(lazyseq.New(start, GeometricStep(ratio)))
}

func GeometricStep(ratio int) lazyseq.Generator[int] {
	return func(prev int, _ uint64) (int, bool) {
		return prev * ratio, false
	}
}

// Fibonacci is the infinite fibonacci sequence starting with 0.
// Elements are shared between traversals, so they must not be modified.
func Fibonacci() *lazyseq.Sequence[*big.Int] {
	first, initial := FibonacciSeed()
	return lazyseq.Must(lazyseq.NewStateful(first, initial, FibonacciStep))
}

// FibonacciSeed returns the first element and the initial state of the fibonacci sequence.
func FibonacciSeed() (first, initial *big.Int) {
	return big.NewInt(0), big.NewInt(1)
}

// FibonacciStep adds the two previous elements.
// The iteration state is the element before prev.
func FibonacciStep(prev, secondPrev *big.Int, _ uint64) (*big.Int, *big.Int, bool) {
	return new(big.Int).Add(prev, secondPrev), prev, false
}
