package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-feed-digest/internal/core/model"
	"github.com/penwyp/go-feed-digest/internal/util"
)

// Formatter writes a publication in one output format.
type Formatter interface {
	Format(w io.Writer, pub Publication) error
}

// Publication is the presentation view of an aggregation result.
type Publication struct {
	Timezone string     `json:"timezone"`
	Start    time.Time  `json:"start"`
	End      time.Time  `json:"end"`
	Warning  string     `json:"warning,omitempty"`
	Message  string     `json:"warning_message,omitempty"`
	Fetches  int        `json:"fetches"`
	Items    []ItemView `json:"items"`
}

// ItemView is a timeline item with the displayable fields pulled out of its
// payload.
type ItemView struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text,omitempty"`
}

var (
	textPaths = [][]interface{}{
		{"full_text"},
		{"text"},
		{"content"},
	}
	authorPaths = [][]interface{}{
		{"user", "screen_name"},
		{"author"},
	}
)

// NewPublication builds the view for result, rendering times in loc.
func NewPublication(result model.Result, loc *time.Location) Publication {
	if loc == nil {
		loc = time.UTC
	}

	pub := Publication{
		Timezone: loc.String(),
		Start:    result.Window.Start.In(loc),
		End:      result.Window.End.In(loc),
		Warning:  result.Warning.String(),
		Message:  result.Warning.Message(),
		Fetches:  result.Fetches,
		Items:    make([]ItemView, 0, len(result.Items)),
	}

	for _, item := range result.Items {
		pub.Items = append(pub.Items, ItemView{
			ID:        item.ID,
			CreatedAt: item.CreatedAt.In(loc),
			Author:    payloadString(item.Payload, authorPaths),
			Text:      util.SingleLine(payloadString(item.Payload, textPaths)),
		})
	}
	return pub
}

// payloadString returns the first string found at one of paths.
func payloadString(payload []byte, paths [][]interface{}) string {
	if len(payload) == 0 {
		return ""
	}
	for _, path := range paths {
		node, err := sonic.Get(payload, path...)
		if err != nil {
			continue
		}
		if s, err := node.String(); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// New returns the formatter for name, defaulting to table.
func New(name string) (Formatter, error) {
	switch name {
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	case "table", "":
		return NewTableFormatter(0), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (table, json, csv, summary)", name)
	}
}

const displayTimeLayout = "2006-01-02 15:04"
