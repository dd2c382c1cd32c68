package lazyseqcli

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/adamluzsi/lazyseq/pkg/lazyseq"
	"github.com/adamluzsi/lazyseq/pkg/samples"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/errorkit"
	"golang.org/x/sync/errgroup"
)

const ErrDiverged errorkit.Error = "lazyseq: cursors of the same sequence diverged"

type ArithCommand struct {
	N     int `flag:"n" default:"10" desc:"number of elements to print"`
	Start int `flag:"start" default:"1" desc:"first element"`
	Diff  int `flag:"diff" default:"1" desc:"difference between two elements"`

	App func() *App
}

func (cmd ArithCommand) Summary() string { return "print an arithmetic progression" }

func (cmd ArithCommand) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	if cmd.N < 0 {
		badRequest(w, "n must not be negative: %d", cmd.N)
		return
	}
	seq := lazyseq.Must(lazyseq.New(cmd.Start, generator(appOf(cmd.App), "arith", samples.ArithmeticStep(cmd.Diff))))
	printAll(w, lazyseq.Take(seq, cmd.N))
}

type GeomCommand struct {
	N     int `flag:"n" default:"10" desc:"number of elements to print"`
	Start int `flag:"start" default:"1" desc:"first element"`
	Ratio int `flag:"ratio" default:"2" desc:"ratio between two elements"`

	App func() *App
}

func (cmd GeomCommand) Summary() string { return "print a geometric progression" }

func (cmd GeomCommand) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	if cmd.N < 0 {
		badRequest(w, "n must not be negative: %d", cmd.N)
		return
	}
	seq := lazyseq.Must(lazyseq.New(cmd.Start, generator(appOf(cmd.App), "geom", samples.GeometricStep(cmd.Ratio))))
	printAll(w, lazyseq.Take(seq, cmd.N))
}

type FibCommand struct {
	N int `flag:"n" default:"10" desc:"number of elements to print"`

	App func() *App
}

func (cmd FibCommand) Summary() string { return "print the fibonacci sequence" }

func (cmd FibCommand) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	if cmd.N < 0 {
		badRequest(w, "n must not be negative: %d", cmd.N)
		return
	}
	first, initial := samples.FibonacciSeed()
	seq := lazyseq.Must(lazyseq.NewStateful(first, initial, statefulGenerator[*big.Int, *big.Int](appOf(cmd.App), "fib", samples.FibonacciStep)))
	printAll(w, lazyseq.Take(seq, cmd.N))
}

type NamesCommand struct {
	N      int    `flag:"n" default:"10" desc:"number of names to print"`
	Prefix string `flag:"prefix" default:"name" desc:"prefix of the names"`

	App func() *App
}

func (cmd NamesCommand) Summary() string { return "print unique names" }

func (cmd NamesCommand) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	if cmd.N < 0 {
		badRequest(w, "n must not be negative: %d", cmd.N)
		return
	}
	seq := lazyseq.Must(lazyseq.New("", generator(appOf(cmd.App), "names", samples.UniqueNameStep(cmd.Prefix))))
	// the first element is the empty name
	printAll(w, lazyseq.Take(seq, cmd.N+1)[1:])
}

type PeopleCommand struct {
	N int `flag:"n" default:"10" desc:"number of people to print"`

	App func() *App
}

func (cmd PeopleCommand) Summary() string { return "print generated people" }

func (cmd PeopleCommand) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	if cmd.N < 0 {
		badRequest(w, "n must not be negative: %d", cmd.N)
		return
	}
	seq := lazyseq.Must(lazyseq.New(samples.NewPerson(0), generator[samples.Person](appOf(cmd.App), "people", samples.PersonStep)))
	for _, p := range lazyseq.Take(seq, cmd.N) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Nickname)
	}
}

type PagesCommand struct {
	Total int `flag:"total" default:"25" desc:"number of items in the source"`
	Size  int `flag:"size" default:"10" desc:"page size"`

	App func() *App
}

func (cmd PagesCommand) Summary() string { return "paginate over an in-memory source" }

func (cmd PagesCommand) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	if cmd.Total < 0 {
		badRequest(w, "total must not be negative: %d", cmd.Total)
		return
	}
	src := samples.SlicePageSource{Items: make([]string, 0, cmd.Total)}
	for i := 0; i < cmd.Total; i++ {
		src.Items = append(src.Items, fmt.Sprintf("item-%d", i))
	}
	if app := appOf(cmd.App); app != nil {
		src.Latency = app.Config.PageLatency
	}
	step, err := samples.PageStep(src, cmd.Size)
	if err != nil {
		badRequest(w, "%s", err.Error())
		return
	}
	pages := lazyseq.Must(lazyseq.NewAsyncStateful(samples.SeedPage, samples.PageCursor{},
		asyncStatefulGenerator(appOf(cmd.App), "pages", step)))

	var seeded bool
	for page, err := range pages.All(r.Context()) {
		if err != nil {
			failure(w, err)
			return
		}
		if !seeded {
			seeded = true
			continue
		}
		fmt.Fprintf(w, "%d\t%s\n", page.Offset, strings.Join(page.Items, ","))
	}
}

type VerifyCommand struct {
	N       int `flag:"n" default:"100" desc:"number of elements pulled by every cursor"`
	Cursors int `flag:"cursors" default:"4" desc:"number of concurrent cursors"`

	App func() *App
}

func (cmd VerifyCommand) Summary() string {
	return "pull the fibonacci sequence with concurrent cursors and compare the traversals"
}

func (cmd VerifyCommand) ServeCLI(w cli.ResponseWriter, r *cli.Request) {
	if cmd.N < 0 {
		badRequest(w, "n must not be negative: %d", cmd.N)
		return
	}
	if cmd.Cursors < 1 {
		badRequest(w, "at least one cursor is required: %d", cmd.Cursors)
		return
	}

	first, initial := samples.FibonacciSeed()
	fib := lazyseq.Must(lazyseq.NewStateful(first, initial, statefulGenerator[*big.Int, *big.Int](appOf(cmd.App), "verify", samples.FibonacciStep)))

	traversals := make([][]string, cmd.Cursors)
	g, ctx := errgroup.WithContext(r.Context())
	for i := range traversals {
		g.Go(func() error {
			c := fib.Cursor()
			defer c.Close()
			for len(traversals[i]) < cmd.N && c.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				traversals[i] = append(traversals[i], c.Value().String())
			}
			return c.Err()
		})
	}
	if err := g.Wait(); err != nil {
		failure(w, err)
		return
	}

	for i := 1; i < len(traversals); i++ {
		if !slices.Equal(traversals[0], traversals[i]) {
			failure(w, ErrDiverged.F("cursor #%d", i))
			return
		}
	}
	fmt.Fprintf(w, "%d cursors yielded %d identical elements\n", cmd.Cursors, cmd.N)
}
