// Package lazyseqcli is the command line front of the sample sequences.
package lazyseqcli

import (
	"fmt"
	"io"

	"github.com/adamluzsi/lazyseq/pkg/instrument"
	"github.com/adamluzsi/lazyseq/pkg/lazyseq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

// App routes the sub commands and owns the shared instrumentation.
type App struct {
	Config Config

	mux      cli.Mux
	registry *prometheus.Registry
	metrics  *instrument.Metrics
}

// New registers the sub commands.
//
// Commands reach the App through a function,
// as cli walks the exported and unexported fields of a command when it binds the flags,
// but it does not step into function values.
func New(c Config) *App {
	app := &App{Config: c}
	if c.Metrics {
		app.registry = prometheus.NewRegistry()
		app.metrics = instrument.NewMetrics(app.registry)
	}
	self := func() *App { return app }
	app.Handle("arith", ArithCommand{App: self})
	app.Handle("geom", GeomCommand{App: self})
	app.Handle("fib", FibCommand{App: self})
	app.Handle("names", NamesCommand{App: self})
	app.Handle("people", PeopleCommand{App: self})
	app.Handle("pages", PagesCommand{App: self})
	app.Handle("verify", VerifyCommand{App: self})
	return app
}

func (app *App) Handle(pattern string, h cli.Handler) {
	app.mux.Handle(pattern, h)
}

func (app *App) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	app.mux.ServeCLI(w, r)
	if app.metrics == nil {
		return
	}
	if err := app.WriteMetrics(errOut(w)); err != nil {
		logger.Warn(r.Context(), "failed to write metrics", logging.ErrField(err))
	}
}

// WriteMetrics writes the collected generator metrics in the Prometheus text format.
// It writes nothing when metrics are disabled.
func (app *App) WriteMetrics(w io.Writer) error {
	if app.registry == nil {
		return nil
	}
	mfs, err := app.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func generator[T any](app *App, name string, g lazyseq.Generator[T]) lazyseq.Generator[T] {
	if app == nil || app.metrics == nil {
		return g
	}
	return instrument.Generator(app.metrics, g, instrument.WithName(name))
}

func statefulGenerator[T, S any](app *App, name string, g lazyseq.StatefulGenerator[T, S]) lazyseq.StatefulGenerator[T, S] {
	if app == nil || app.metrics == nil {
		return g
	}
	return instrument.StatefulGenerator(app.metrics, g, instrument.WithName(name))
}

func asyncStatefulGenerator[T, S any](app *App, name string, g lazyseq.AsyncStatefulGenerator[T, S]) lazyseq.AsyncStatefulGenerator[T, S] {
	if app == nil || app.metrics == nil {
		return g
	}
	return instrument.AsyncStatefulGenerator(app.metrics, g, instrument.WithName(name))
}

func errOut(w cli.ResponseWriter) io.Writer {
	if ew, ok := w.(cli.ErrorWriter); ok {
		if o := ew.Stderr(); o != nil {
			return o
		}
	}
	return w
}

func appOf(fn func() *App) *App {
	if fn == nil {
		return nil
	}
	return fn()
}

func badRequest(w cli.ResponseWriter, format string, args ...any) {
	w.ExitCode(cli.ExitCodeBadRequest)
	fmt.Fprintln(errOut(w), fmt.Sprintf(format, args...))
}

func failure(w cli.ResponseWriter, err error) {
	w.ExitCode(cli.ExitCodeError)
	fmt.Fprintln(errOut(w), err.Error())
}

func printAll[T any](w io.Writer, vs []T) {
	for _, v := range vs {
		fmt.Fprintln(w, v)
	}
}
