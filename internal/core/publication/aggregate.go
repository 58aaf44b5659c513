package publication

import (
	"context"
	"iter"

	"github.com/penwyp/go-feed-digest/internal/core/model"
	"github.com/penwyp/go-feed-digest/internal/util"
)

type options struct {
	orderCheck bool
}

// Option configures Aggregate.
type Option func(*options)

// WithOrderCheck controls whether pages that are not newest-first are turned
// into failures. Enabled by default.
func WithOrderCheck(enabled bool) Option {
	return func(o *options) {
		o.orderCheck = enabled
	}
}

// Aggregate walks the feed behind fetch until the window is exhausted and
// returns the deduplicated, window-filtered items, newest first. The first
// failed page aborts aggregation and its error is returned unchanged.
func Aggregate(ctx context.Context, fetch model.FetchFunc, window model.Window, opts ...Option) (model.Result, error) {
	o := options{orderCheck: true}
	for _, opt := range opts {
		opt(&o)
	}

	walker := NewWalker(fetch)
	pages := walker.Pages(ctx)
	if o.orderCheck {
		pages = checkOrder(pages)
	}

	var items []model.TimelineItem
	pageCount := 0
	for page := range TakeUntil(pages, IsPastWindow(window)) {
		if page.Failed() {
			// Pagination has already stopped at this page.
			return model.Result{}, page.Err
		}
		items = append(items, page.Items...)
		pageCount++
	}

	unique := DedupByID(items)
	warning := AnalyzeBoundary(unique, window)
	inWindow := FilterWindow(unique, window)

	util.LogDebugf("Aggregated %d pages in %d fetches: %d items, %d unique, %d in window %s",
		pageCount, walker.Fetches(), len(items), len(unique), len(inWindow), window)
	if warning != model.WarningNone {
		util.LogWarnf("Publication warning for window %s: %s", window, warning)
	}

	return model.Result{
		Window:  window,
		Items:   inWindow,
		Warning: warning,
		Fetches: walker.Fetches(),
	}, nil
}

// DedupByID removes repeated ids, keeping the first occurrence. Adjacent
// pages share their boundary item because cursor fetches are inclusive.
func DedupByID(items []model.TimelineItem) []model.TimelineItem {
	seen := make(map[string]struct{}, len(items))
	unique := make([]model.TimelineItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

// FilterWindow keeps items created within the window, preserving order.
func FilterWindow(items []model.TimelineItem, window model.Window) []model.TimelineItem {
	filtered := make([]model.TimelineItem, 0, len(items))
	for _, item := range items {
		if window.Contains(item.CreatedAt) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func checkOrder(seq iter.Seq[model.Page]) iter.Seq[model.Page] {
	return func(yield func(model.Page) bool) {
		n := 0
		for page := range seq {
			n++
			if err := validateOrder(n, page); err != nil {
				page = model.FailedPage(err)
			}
			if !yield(page) {
				return
			}
		}
	}
}

// validateOrder accepts equal adjacent timestamps since providers commonly
// report creation times at second granularity.
func validateOrder(n int, page model.Page) error {
	if page.Failed() {
		return nil
	}
	for i := 1; i < len(page.Items); i++ {
		prev, cur := page.Items[i-1], page.Items[i]
		if cur.CreatedAt.After(prev.CreatedAt) {
			return &OrderError{Page: n, Position: i, ID: cur.ID, Previous: prev.ID}
		}
	}
	return nil
}
