package samples

//go:generate mockgen -source=pagination.go -destination=mocks/mock_pagination.go -package=mocks

import (
	"context"
	"iter"
	"slices"
	"time"

	"github.com/adamluzsi/lazyseq/pkg/lazyseq"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

const ErrInvalidPageRequest errorkit.Error = "samples: invalid page request"

// Page is a window of a remote collection.
type Page struct {
	Offset int
	Items  []string
	// HasMore tells if there are items after this page.
	HasMore bool
}

// PageSource is a paginated remote resource.
type PageSource interface {
	// FetchPage returns at most limit items starting at offset.
	FetchPage(ctx context.Context, offset, limit int) (Page, error)
}

// SlicePageSource serves pages from an in-memory list.
// Latency simulates a slow remote, a done context interrupts the wait.
type SlicePageSource struct {
	Items   []string
	Latency time.Duration
}

func (src SlicePageSource) FetchPage(ctx context.Context, offset, limit int) (Page, error) {
	if offset < 0 || limit <= 0 {
		return Page{}, ErrInvalidPageRequest.F("offset=%d limit=%d", offset, limit)
	}
	if 0 < src.Latency {
		timer := time.NewTimer(src.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Page{}, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	start := min(offset, len(src.Items))
	end := min(offset+limit, len(src.Items))
	return Page{
		Offset:  offset,
		Items:   slices.Clone(src.Items[start:end]),
		HasMore: end < len(src.Items),
	}, nil
}

// PageCursor is the iteration state of the Pages sequence.
type PageCursor struct {
	Offset int
	// Exhausted is set after the page that reported no more items.
	Exhausted bool
}

// SeedPage is the first element of every Pages sequence.
// It holds no items, the first fetch happens on the second pull.
var SeedPage = Page{HasMore: true}

// Pages walks src page by page.
//
// The first element is the empty SeedPage, the following elements are fetched on demand.
// The sequence ends after the page that reports no more items.
// A failed fetch ends the traversal with the source's error.
func Pages(src PageSource, size int) (*lazyseq.AsyncSequence[Page], error) {
	step, err := PageStep(src, size)
	if err != nil {
		return nil, err
	}
	return lazyseq.NewAsyncStateful(SeedPage, PageCursor{}, step)
}

// PageStep fetches the page found at the cursor's offset.
func PageStep(src PageSource, size int) (lazyseq.AsyncStatefulGenerator[Page, PageCursor], error) {
	if src == nil {
		return nil, lazyseq.ErrInvalidArgument.F("page source is absent")
	}
	if size <= 0 {
		return nil, lazyseq.ErrInvalidArgument.F("page size must be positive, got %d", size)
	}
	return func(ctx context.Context, _ Page, c PageCursor, _ uint64) (Page, PageCursor, bool, error) {
		if c.Exhausted {
			return Page{}, c, true, nil
		}
		page, err := src.FetchPage(ctx, c.Offset, size)
		if err != nil {
			return Page{}, c, false, err
		}
		logger.Debug(ctx, "page fetched",
			logging.Field("offset", c.Offset),
			logging.Field("items", len(page.Items)))
		return page, PageCursor{
			Offset:    c.Offset + len(page.Items),
			Exhausted: !page.HasMore || len(page.Items) == 0,
		}, false, nil
	}, nil
}

// Items flattens the pages into their items.
// The seed page is skipped, an error is yielded once and ends the iteration.
func Items(ctx context.Context, pages *lazyseq.AsyncSequence[Page]) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		var seeded bool
		for page, err := range pages.All(ctx) {
			if err != nil {
				yield("", err)
				return
			}
			if !seeded {
				seeded = true
				continue
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}
