// Package instrument decorates lazy sequence generators with Prometheus metrics and OpenTelemetry spans.
//
// The decorators keep the generator signature, so an instrumented generator
// can be passed to the matching lazyseq constructor as is.
package instrument

import (
	"context"
	"time"

	"github.com/adamluzsi/lazyseq/pkg/lazyseq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.llib.dev/frameless/port/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Values of the status label of the steps counter.
const (
	StatusNext  = "next"
	StatusLast  = "last"
	StatusError = "error"
)

// Metrics holds the collectors shared by the instrumented generators.
type Metrics struct {
	steps    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the generator collectors and registers them in reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		steps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lazyseq_generator_steps_total",
				Help: "The total number of generator steps, by outcome",
			},
			[]string{"sequence", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "lazyseq_generator_step_duration_seconds",
				Help: "The duration of generator steps in seconds",
			},
			[]string{"sequence"},
		),
	}
}

func (m *Metrics) observe(name string, start time.Time, isLast bool, err error) {
	status := StatusNext
	switch {
	case err != nil:
		status = StatusError
	case isLast:
		status = StatusLast
	}
	m.steps.WithLabelValues(name, status).Inc()
	m.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

// Config is the configuration of an instrumented generator, built from the Option values.
type Config struct {
	// Name is the value of the sequence label and span attribute.
	Name   string
	Tracer trace.Tracer
}

// Init sets the defaults: the "sequence" name and the global "lazyseq" tracer.
func (c *Config) Init() {
	c.Name = "sequence"
	c.Tracer = otel.Tracer("lazyseq")
}

// Option configures an instrumented generator.
type Option option.Option[Config]

// WithName sets the sequence label of the metrics and spans.
func WithName(name string) Option {
	return option.Func[Config](func(c *Config) { c.Name = name })
}

// WithTracer replaces the tracer of the async generator spans.
func WithTracer(tracer trace.Tracer) Option {
	return option.Func[Config](func(c *Config) { c.Tracer = tracer })
}

// Generator records a step observation for every call of generator.
func Generator[T any](m *Metrics, generator lazyseq.Generator[T], opts ...Option) lazyseq.Generator[T] {
	if generator == nil {
		return nil
	}
	c := option.ToConfig[Config](opts)
	return func(prev T, index uint64) (T, bool) {
		start := time.Now()
		next, isLast := generator(prev, index)
		m.observe(c.Name, start, isLast, nil)
		return next, isLast
	}
}

// StatefulGenerator records a step observation for every call of generator.
func StatefulGenerator[T, S any](m *Metrics, generator lazyseq.StatefulGenerator[T, S], opts ...Option) lazyseq.StatefulGenerator[T, S] {
	if generator == nil {
		return nil
	}
	c := option.ToConfig[Config](opts)
	return func(prev T, state S, index uint64) (T, S, bool) {
		start := time.Now()
		next, nextState, isLast := generator(prev, state, index)
		m.observe(c.Name, start, isLast, nil)
		return next, nextState, isLast
	}
}

// AsyncGenerator records a step observation and a span for every call of generator.
func AsyncGenerator[T any](m *Metrics, generator lazyseq.AsyncGenerator[T], opts ...Option) lazyseq.AsyncGenerator[T] {
	if generator == nil {
		return nil
	}
	c := option.ToConfig[Config](opts)
	return func(ctx context.Context, prev T, index uint64) (next T, isLast bool, err error) {
		ctx, done := c.step(ctx, m, index)
		defer func() { done(isLast, err) }()
		return generator(ctx, prev, index)
	}
}

// AsyncStatefulGenerator records a step observation and a span for every call of generator.
func AsyncStatefulGenerator[T, S any](m *Metrics, generator lazyseq.AsyncStatefulGenerator[T, S], opts ...Option) lazyseq.AsyncStatefulGenerator[T, S] {
	if generator == nil {
		return nil
	}
	c := option.ToConfig[Config](opts)
	return func(ctx context.Context, prev T, state S, index uint64) (next T, nextState S, isLast bool, err error) {
		ctx, done := c.step(ctx, m, index)
		defer func() { done(isLast, err) }()
		return generator(ctx, prev, state, index)
	}
}

func (c Config) step(ctx context.Context, m *Metrics, index uint64) (context.Context, func(isLast bool, err error)) {
	start := time.Now()
	ctx, span := c.Tracer.Start(ctx, "lazyseq.step", trace.WithAttributes(
		attribute.String("lazyseq.sequence", c.Name),
		attribute.Int64("lazyseq.index", int64(index)),
	))
	return ctx, func(isLast bool, err error) {
		defer span.End()
		span.SetAttributes(attribute.Bool("lazyseq.last", isLast))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		m.observe(c.Name, start, isLast, err)
	}
}
