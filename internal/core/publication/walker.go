package publication

import (
	"context"
	"iter"

	"github.com/penwyp/go-feed-digest/internal/core/model"
	"github.com/penwyp/go-feed-digest/internal/util"
)

// Walker lazily walks a cursor-paginated feed. Each page is requested with
// the id of the previous page's last item. The walk ends after a failed page,
// an empty page, or a page whose last item is the cursor it was fetched with.
//
// A Walker is forward-only and cannot be restarted. It is not safe for use by
// multiple goroutines; independent walkers share nothing.
type Walker struct {
	fetch   model.FetchFunc
	cursor  model.Cursor
	done    bool
	fetches int
}

// NewWalker creates a walker that starts at the newest page.
func NewWalker(fetch model.FetchFunc) *Walker {
	return &Walker{fetch: fetch, cursor: model.NoCursor}
}

// Next fetches the next page. The boolean is false once the walk has ended,
// in which case no fetch was issued.
func (w *Walker) Next(ctx context.Context) (model.Page, bool) {
	if w.done {
		return model.Page{}, false
	}

	used := w.cursor
	util.LogDebugf("Fetching page %d with cursor %s", w.fetches+1, used)

	items, err := w.fetch(ctx, used)
	w.fetches++
	if err != nil {
		w.done = true
		util.LogDebugf("Page %d failed: %v", w.fetches, err)
		return model.FailedPage(err), true
	}

	page := model.Page{Items: items}
	last, ok := page.Last()
	if !ok {
		// Empty page marks the end of the feed.
		w.done = true
		return page, true
	}

	if usedID, set := used.ID(); set && usedID == last.ID {
		// No progress: the provider returned only the cursor item again.
		w.done = true
		return page, true
	}

	w.cursor = model.CursorAt(last.ID)
	return page, true
}

// Close abandons the walk. Later calls to Next return false.
func (w *Walker) Close() {
	w.done = true
}

// Done reports whether the walk has ended.
func (w *Walker) Done() bool {
	return w.done
}

// Fetches returns the number of fetch calls issued so far.
func (w *Walker) Fetches() int {
	return w.fetches
}

// Pages adapts the walker to a range-over-func sequence. Breaking out of the
// loop closes the walker.
func (w *Walker) Pages(ctx context.Context) iter.Seq[model.Page] {
	return func(yield func(model.Page) bool) {
		for {
			page, ok := w.Next(ctx)
			if !ok {
				return
			}
			if !yield(page) {
				w.Close()
				return
			}
		}
	}
}
