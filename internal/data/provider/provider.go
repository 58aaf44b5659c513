// Package provider implements the feed backends that supply timeline pages.
//
// Every provider paginates newest-first with an inclusive max-id cursor: the
// first item of a continuation page is the item the cursor names. Once no
// data remains for a cursor the provider returns an empty page and no error.
package provider

import (
	"context"

	"github.com/penwyp/go-feed-digest/internal/core/model"
)

// Provider is a source of timeline pages.
type Provider interface {
	Fetch(ctx context.Context, cursor model.Cursor) ([]model.TimelineItem, error)
	Name() string
}

// TimeZoneSource is implemented by providers that know the account's
// preferred timezone.
type TimeZoneSource interface {
	FetchTimeZone(ctx context.Context) (string, error)
}

// pageFrom returns the page of at most size items starting at the cursor.
// An unknown cursor yields an empty page.
func pageFrom(items []model.TimelineItem, cursor model.Cursor, size int) []model.TimelineItem {
	start := 0
	if id, ok := cursor.ID(); ok {
		start = -1
		for i := range items {
			if items[i].ID == id {
				start = i
				break
			}
		}
		if start < 0 {
			return []model.TimelineItem{}
		}
	}

	end := start + size
	if size <= 0 || end > len(items) {
		end = len(items)
	}

	page := make([]model.TimelineItem, end-start)
	copy(page, items[start:end])
	return page
}
