// Package fixtures writes JSONL timeline feeds for tests.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
)

// providerDateLayout matches the timeline API's created_at format.
const providerDateLayout = "Mon Jan 02 15:04:05 -0700 2006"

// FeedEntry is one line of a JSONL feed file
type FeedEntry struct {
	ID        string    `json:"id_str"`
	CreatedAt string    `json:"created_at"`
	Text      string    `json:"text,omitempty"`
	User      *FeedUser `json:"user,omitempty"`
}

// FeedUser is the author block of a FeedEntry
type FeedUser struct {
	ScreenName string `json:"screen_name"`
}

// FeedGenerator generates feed files under a base directory
type FeedGenerator struct {
	baseDir string
	// ProviderDates writes created_at in the API's date format instead of
	// RFC3339.
	ProviderDates bool
}

// NewFeedGenerator creates a new feed generator
func NewFeedGenerator(baseDir string) *FeedGenerator {
	return &FeedGenerator{baseDir: baseDir}
}

// Entry builds an entry with a generated text and author.
func (g *FeedGenerator) Entry(id string, createdAt time.Time) FeedEntry {
	stamp := createdAt.UTC().Format(time.RFC3339)
	if g.ProviderDates {
		stamp = createdAt.UTC().Format(providerDateLayout)
	}
	return FeedEntry{
		ID:        id,
		CreatedAt: stamp,
		Text:      "item " + id,
		User:      &FeedUser{ScreenName: "user" + id},
	}
}

// GenerateSteady writes count items, newest first, starting at newest and
// spaced step apart. Ids count down from count so newer items have larger
// ids.
func (g *FeedGenerator) GenerateSteady(name string, newest time.Time, count int, step time.Duration) (string, error) {
	entries := make([]FeedEntry, 0, count)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("%d", count-i)
		entries = append(entries, g.Entry(id, newest.Add(-time.Duration(i)*step)))
	}
	return g.WriteFeed(name, entries)
}

// WriteFeed writes entries to name under the base directory and returns
// the file path.
func (g *FeedGenerator) WriteFeed(name string, entries []FeedEntry) (string, error) {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(g.baseDir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := sonic.ConfigDefault.NewEncoder(file)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			return "", err
		}
	}

	return path, nil
}
