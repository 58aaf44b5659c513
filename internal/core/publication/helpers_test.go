package publication

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-feed-digest/internal/core/model"
)

func item(id string, createdAt time.Time) model.TimelineItem {
	return model.TimelineItem{ID: id, CreatedAt: createdAt}
}

func ids(items []model.TimelineItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

// pagedFeed serves newest-first items with inclusive max-id pagination.
type pagedFeed struct {
	items    []model.TimelineItem
	pageSize int
	depth    int
	calls    []model.Cursor
}

func (f *pagedFeed) fetch(_ context.Context, cursor model.Cursor) ([]model.TimelineItem, error) {
	f.calls = append(f.calls, cursor)

	available := f.items
	if f.depth > 0 && len(available) > f.depth {
		available = available[:f.depth]
	}

	start := 0
	if id, ok := cursor.ID(); ok {
		start = -1
		for i, it := range available {
			if it.ID == id {
				start = i
				break
			}
		}
		if start < 0 {
			return nil, nil
		}
	}

	end := start + f.pageSize
	if end > len(available) {
		end = len(available)
	}
	page := make([]model.TimelineItem, end-start)
	copy(page, available[start:end])
	return page, nil
}

// scriptedFetch returns the configured responses in order and fails the
// test run loudly if asked for more.
type scriptedFetch struct {
	responses []model.Page
	calls     []model.Cursor
}

func (s *scriptedFetch) fetch(_ context.Context, cursor model.Cursor) ([]model.TimelineItem, error) {
	s.calls = append(s.calls, cursor)
	if len(s.calls) > len(s.responses) {
		return nil, fmt.Errorf("unexpected fetch #%d with cursor %s", len(s.calls), cursor)
	}
	page := s.responses[len(s.calls)-1]
	return page.Items, page.Err
}

type codeError struct {
	code string
}

func (e *codeError) Error() string {
	return "provider error " + e.code
}
