package instrument_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/adamluzsi/lazyseq/pkg/instrument"
	"github.com/adamluzsi/lazyseq/pkg/lazyseq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

type recordedSpan struct {
	Name       string
	Attributes []attribute.KeyValue
}

// recordingTracer keeps the name and start attributes of every span,
// the spans themselves are no-ops.
type recordingTracer struct {
	noop.Tracer
	mutex sync.Mutex
	spans []recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	cfg := trace.NewSpanStartConfig(opts...)
	r.spans = append(r.spans, recordedSpan{Name: name, Attributes: cfg.Attributes()})
	return r.Tracer.Start(ctx, name, opts...)
}

func (r *recordingTracer) Spans() []recordedSpan {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]recordedSpan(nil), r.spans...)
}

const stepsMetadata = `
# HELP lazyseq_generator_steps_total The total number of generator steps, by outcome
# TYPE lazyseq_generator_steps_total counter
`

func TestGenerator(t *testing.T) {
	s := testcase.NewSpec(t)

	reg := testcase.Let(s, func(t *testcase.T) *prometheus.Registry {
		return prometheus.NewRegistry()
	})
	metrics := testcase.Let(s, func(t *testcase.T) *instrument.Metrics {
		return instrument.NewMetrics(reg.Get(t))
	})

	s.Test("every step is counted by its outcome", func(t *testcase.T) {
		gen := instrument.Generator(metrics.Get(t), func(prev int, index uint64) (int, bool) {
			return prev + 1, index == 4
		}, instrument.WithName("counter"))

		seq, err := lazyseq.New(0, gen)
		assert.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3}, lazyseq.Take(seq, 10))

		expected := stepsMetadata + `
lazyseq_generator_steps_total{sequence="counter",status="last"} 1
lazyseq_generator_steps_total{sequence="counter",status="next"} 3
`
		assert.NoError(t, testutil.GatherAndCompare(reg.Get(t), strings.NewReader(expected), "lazyseq_generator_steps_total"))
	})

	s.Test("the duration of every step is observed", func(t *testcase.T) {
		gen := instrument.StatefulGenerator(metrics.Get(t), func(prev int, state int, index uint64) (int, int, bool) {
			return state, prev + state, false
		})

		seq, err := lazyseq.NewStateful(0, 1, gen)
		assert.NoError(t, err)
		assert.Equal(t, []int{0, 1, 1, 2, 3}, lazyseq.Take(seq, 5))

		count, err := testutil.GatherAndCount(reg.Get(t), "lazyseq_generator_step_duration_seconds")
		assert.NoError(t, err)
		assert.Equal(t, 1, count)

		expected := stepsMetadata + `
lazyseq_generator_steps_total{sequence="sequence",status="next"} 4
`
		assert.NoError(t, testutil.GatherAndCompare(reg.Get(t), strings.NewReader(expected), "lazyseq_generator_steps_total"))
	})

	s.Test("absent generator stays absent", func(t *testcase.T) {
		gen := instrument.Generator[int](metrics.Get(t), nil)
		_, err := lazyseq.New(0, gen)
		assert.ErrorIs(t, err, lazyseq.ErrInvalidArgument)
	})
}

func TestAsyncGenerator(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		reg = testcase.Let(s, func(t *testcase.T) *prometheus.Registry {
			return prometheus.NewRegistry()
		})
		metrics = testcase.Let(s, func(t *testcase.T) *instrument.Metrics {
			return instrument.NewMetrics(reg.Get(t))
		})
		tracer = testcase.Let(s, func(t *testcase.T) *recordingTracer {
			return &recordingTracer{}
		})
	)

	s.Test("every step starts a span", func(t *testcase.T) {
		gen := instrument.AsyncGenerator(metrics.Get(t), func(ctx context.Context, prev string, index uint64) (string, bool, error) {
			return prev + "a", index == 3, nil
		}, instrument.WithName("letters"), instrument.WithTracer(tracer.Get(t)))

		seq, err := lazyseq.NewAsync("", gen)
		assert.NoError(t, err)
		got, err := lazyseq.TakeAsync(context.Background(), seq, 10)
		assert.NoError(t, err)
		assert.Equal(t, []string{"", "a", "aa"}, got)

		spans := tracer.Get(t).Spans()
		assert.Equal(t, 3, len(spans))
		for i, span := range spans {
			assert.Equal(t, "lazyseq.step", span.Name)
			assert.Contains(t, span.Attributes, attribute.String("lazyseq.sequence", "letters"))
			assert.Contains(t, span.Attributes, attribute.Int64("lazyseq.index", int64(i+1)))
		}
	})

	s.Test("failed steps are counted as errors", func(t *testcase.T) {
		const expErr errorkit.Error = "boom"
		gen := instrument.AsyncStatefulGenerator(metrics.Get(t), func(ctx context.Context, prev int, state int, index uint64) (int, int, bool, error) {
			if index == 2 {
				return 0, 0, false, expErr
			}
			return prev + state, state, false, nil
		}, instrument.WithName("failing"), instrument.WithTracer(tracer.Get(t)))

		seq, err := lazyseq.NewAsyncStateful(0, 5, gen)
		assert.NoError(t, err)
		got, err := lazyseq.TakeAsync(context.Background(), seq, 10)
		assert.ErrorIs(t, err, expErr)
		assert.Equal(t, []int{0, 5}, got)

		expected := stepsMetadata + `
lazyseq_generator_steps_total{sequence="failing",status="error"} 1
lazyseq_generator_steps_total{sequence="failing",status="next"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(reg.Get(t), strings.NewReader(expected), "lazyseq_generator_steps_total"))
	})

	s.Test("the wrapped generator receives the span context", func(t *testcase.T) {
		var seen []context.Context
		gen := instrument.AsyncGenerator(metrics.Get(t), func(ctx context.Context, prev int, index uint64) (int, bool, error) {
			seen = append(seen, ctx)
			return prev, index == 1, nil
		}, instrument.WithTracer(tracer.Get(t)))

		ctx := context.Background()
		_, err := lazyseq.TakeAsync(ctx, lazyseq.Must(lazyseq.NewAsync(0, gen)), 10)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(seen))
		assert.NotNil(t, seen[0])
	})
}
