package lazyseq_test

import (
	"context"
	"testing"

	"github.com/adamluzsi/lazyseq/pkg/lazyseq"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestSequence_PropertyBased checks the counting rule of finite sequences:
// a generator that reports the last element at index n yields exactly n elements,
// and every traversal of the same sequence yields the same elements.
func TestSequence_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("New yields n elements when the last flag is raised at index n", prop.ForAll(
		func(n uint64, first int) bool {
			seq, err := lazyseq.New(first, func(prev int, index uint64) (int, bool) {
				return prev + 1, index == n
			})
			if err != nil {
				return false
			}
			got := lazyseq.Take(seq, int(n)+10)
			if uint64(len(got)) != n {
				return false
			}
			for i, v := range got {
				if v != first+i {
					return false
				}
			}
			return true
		},
		gen.UInt64Range(1, 500),
		gen.IntRange(-1000, 1000),
	))

	properties.Property("traversals are independent and repeatable", prop.ForAll(
		func(n int, ratio int) bool {
			seq, err := lazyseq.NewStateful(1, 0, func(prev int, calls int, index uint64) (int, int, bool) {
				return prev * ratio, calls + 1, false
			})
			if err != nil {
				return false
			}
			a, b := seq.Cursor(), seq.Cursor()
			defer a.Close()
			defer b.Close()
			for i := 0; i < n; i++ {
				if !a.Next() || !b.Next() || a.Value() != b.Value() {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 200),
		gen.IntRange(-3, 3),
	))

	properties.Property("async sequences yield the same elements as their sync counterpart", prop.ForAll(
		func(n uint64, step int) bool {
			sync, err := lazyseq.New(0, func(prev int, index uint64) (int, bool) {
				return prev + step, index == n
			})
			if err != nil {
				return false
			}
			async, err := lazyseq.NewAsync(0, func(ctx context.Context, prev int, index uint64) (int, bool, error) {
				return prev + step, index == n, nil
			})
			if err != nil {
				return false
			}
			want := lazyseq.Take(sync, int(n)+1)
			got, err := lazyseq.TakeAsync(context.Background(), async, int(n)+1)
			if err != nil || len(got) != len(want) {
				return false
			}
			for i := range want {
				if want[i] != got[i] {
					return false
				}
			}
			return true
		},
		gen.UInt64Range(1, 300),
		gen.IntRange(-50, 50),
	))

	properties.TestingRun(t)
}
