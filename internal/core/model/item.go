package model

import (
	"context"
	"encoding/json"
	"time"
)

// TimelineItem is a single entry of a reverse-chronological feed.
type TimelineItem struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Page is one fetch response. A non-nil Err marks a failed fetch, in which
// case Items carries nothing meaningful.
type Page struct {
	Items []TimelineItem
	Err   error
}

// FailedPage builds the failure variant of a page.
func FailedPage(err error) Page {
	return Page{Err: err}
}

// Failed reports whether the page is a provider failure.
func (p Page) Failed() bool {
	return p.Err != nil
}

// Last returns the oldest item of a successful, non-empty page.
func (p Page) Last() (TimelineItem, bool) {
	if p.Failed() || len(p.Items) == 0 {
		return TimelineItem{}, false
	}
	return p.Items[len(p.Items)-1], true
}

// Cursor is the optional max-id passed to a fetch. The zero value means
// "no cursor", which requests the newest page.
type Cursor struct {
	id  string
	set bool
}

// NoCursor requests the first page of the feed.
var NoCursor = Cursor{}

// CursorAt returns a cursor pointing at the given item id (inclusive).
func CursorAt(id string) Cursor {
	return Cursor{id: id, set: true}
}

// ID returns the item id and whether the cursor is present.
func (c Cursor) ID() (string, bool) {
	return c.id, c.set
}

func (c Cursor) String() string {
	if !c.set {
		return "<none>"
	}
	return c.id
}

// FetchFunc fetches the page ending at cursor (inclusive), newest first.
// It must return an empty, successful page once the feed is exhausted.
type FetchFunc func(ctx context.Context, cursor Cursor) ([]TimelineItem, error)
