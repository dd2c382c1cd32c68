package lazyseqcontract

import (
	"testing"

	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

// Subject describes a sequence under test in an engine independent way.
type Subject[T any] struct {
	// First is the element the sequence is seeded with.
	First T
	// Length is the number of elements the sequence yields before exhaustion.
	// A negative Length marks an infinite sequence.
	Length int
	// Open starts a new traversal and returns its pull and close functions.
	Open func() Traversal[T]
}

// Traversal is the minimal pull protocol shared by every cursor kind.
type Traversal[T any] struct {
	Pull  func() (T, bool, error)
	Close func() error
}

// Sequence is the contract of the lazy pull protocol.
// Every engine must satisfy it, regardless of being stateful or asynchronous.
func Sequence[T any](mk contract.Make[Subject[T]]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) Subject[T] {
		return mk(t)
	})

	const sampleSize = 32

	pullN := func(t *testcase.T, tr Traversal[T], n int) []T {
		var vs []T
		for i := 0; i < n; i++ {
			v, ok, err := tr.Pull()
			assert.NoError(t, err)
			if !ok {
				break
			}
			vs = append(vs, v)
		}
		return vs
	}

	expectedCount := func(t *testcase.T) int {
		if n := subject.Get(t).Length; 0 <= n && n < sampleSize {
			return n
		}
		return sampleSize
	}

	s.Then("the first pull yields the first element unchanged", func(t *testcase.T) {
		tr := subject.Get(t).Open()
		defer tr.Close()

		v, ok, err := tr.Pull()
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, subject.Get(t).First, v)
	})

	s.Then("two traversals pulled in lockstep yield the same elements", func(t *testcase.T) {
		a := subject.Get(t).Open()
		defer a.Close()
		b := subject.Get(t).Open()
		defer b.Close()

		for i := 0; i < expectedCount(t); i++ {
			va, oka, erra := a.Pull()
			vb, okb, errb := b.Pull()
			assert.NoError(t, erra)
			assert.NoError(t, errb)
			assert.Equal(t, oka, okb)
			assert.Equal(t, va, vb)
		}
	})

	s.Then("a new traversal starts over from the first element", func(t *testcase.T) {
		first := subject.Get(t).Open()
		vs := pullN(t, first, expectedCount(t))
		assert.NoError(t, first.Close())

		again := subject.Get(t).Open()
		defer again.Close()
		assert.Equal(t, vs, pullN(t, again, expectedCount(t)))
	})

	s.Then("a closed traversal reports exhaustion", func(t *testcase.T) {
		tr := subject.Get(t).Open()
		_, ok, err := tr.Pull()
		assert.NoError(t, err)
		assert.True(t, ok)

		assert.NoError(t, tr.Close())
		_, ok, err = tr.Pull()
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	s.When("the sequence is finite", func(s *testcase.Spec) {
		s.Before(func(t *testcase.T) {
			if subject.Get(t).Length < 0 {
				t.Skip("infinite sequence")
			}
		})

		s.Then("it yields exactly Length elements", func(t *testcase.T) {
			tr := subject.Get(t).Open()
			defer tr.Close()
			vs := pullN(t, tr, subject.Get(t).Length+1)
			assert.Equal(t, subject.Get(t).Length, len(vs))
		})

		s.Then("pulls after exhaustion keep reporting exhaustion", func(t *testcase.T) {
			tr := subject.Get(t).Open()
			defer tr.Close()
			pullN(t, tr, subject.Get(t).Length+1)

			for i := 0; i < 3; i++ {
				_, ok, err := tr.Pull()
				assert.NoError(t, err)
				assert.False(t, ok)
			}
		})
	})

	return s.AsSuite("lazy sequence")
}

// Run is a shorthand for running the Sequence contract in a plain test function.
func Run[T any](t *testing.T, mk contract.Make[Subject[T]]) {
	Sequence[T](mk).Test(t)
}
