package lazyseq_test

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adamluzsi/lazyseq/pkg/lazyseq"
)

func ExampleNew() {
	seq, err := lazyseq.New(1, func(prev int, index uint64) (int, bool) {
		return prev * 2, index == 5
	})
	if err != nil {
		panic(err)
	}

	for v := range seq.All() {
		fmt.Println(v)
	}
	// Output:
	// 1
	// 2
	// 4
	// 8
	// 16
}

func ExampleNewStateful() {
	// The state holds the element that follows prev.
	fib := lazyseq.Must(lazyseq.NewStateful(0, 1, func(prev, next int, index uint64) (int, int, bool) {
		return next, prev + next, false
	}))

	fmt.Println(lazyseq.Take(fib, 10))
	// Output: [0 1 1 2 3 5 8 13 21 34]
}

func ExampleNewAsync() {
	seq := lazyseq.Must(lazyseq.NewAsync("page-0", func(ctx context.Context, prev string, index uint64) (string, bool, error) {
		return "page-" + strconv.FormatUint(index, 10), index == 3, nil
	}))

	for v, err := range seq.All(context.Background()) {
		if err != nil {
			panic(err)
		}
		fmt.Println(v)
	}
	// Output:
	// page-0
	// page-1
	// page-2
}

func ExampleTryGetNext() {
	seq := lazyseq.Must(lazyseq.New("", func(prev string, index uint64) (string, bool) {
		return strconv.FormatUint(index, 10), 2 <= index
	}))

	c := seq.Cursor()
	defer c.Close()

	for {
		v, ok := lazyseq.TryGetNext(c)
		if !ok {
			break
		}
		fmt.Printf("%q\n", v)
	}
	// Output:
	// ""
	// "1"
}

func ExampleForEach() {
	seq := lazyseq.Must(lazyseq.New(0, func(prev int, index uint64) (int, bool) {
		return prev + 3, false
	}))

	_ = lazyseq.ForEach(seq, func(v int) error {
		if 10 < v {
			return lazyseq.Break
		}
		fmt.Println(v)
		return nil
	})
	// Output:
	// 0
	// 3
	// 6
	// 9
}
