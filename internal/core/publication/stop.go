package publication

import (
	"iter"

	"github.com/penwyp/go-feed-digest/internal/core/model"
)

// IsPastWindow reports whether a page is a boundary page for w: a failure,
// an empty page, or a page whose last item is older than the window start.
func IsPastWindow(w model.Window) func(model.Page) bool {
	return func(page model.Page) bool {
		if page.Failed() {
			return true
		}
		last, ok := page.Last()
		if !ok {
			return true
		}
		return w.Before(last.CreatedAt)
	}
}

// TakeUntil yields pages from seq up to and including the first page for
// which stop returns true. No further page is pulled from seq after that.
func TakeUntil(seq iter.Seq[model.Page], stop func(model.Page) bool) iter.Seq[model.Page] {
	return func(yield func(model.Page) bool) {
		for page := range seq {
			if !yield(page) {
				return
			}
			if stop(page) {
				return
			}
		}
	}
}
