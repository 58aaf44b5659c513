package digest

import (
	"context"
	"fmt"

	"github.com/penwyp/go-feed-digest/internal/core/model"
	"github.com/penwyp/go-feed-digest/internal/data/provider"
	"github.com/penwyp/go-feed-digest/internal/util"
)

// FeedStore is a provider that can be seeded with items.
type FeedStore interface {
	Ensure(ctx context.Context) error
	Import(ctx context.Context, items []model.TimelineItem) error
}

// ImportFeed parses the JSONL feed at path and upserts every item into
// store, creating its schema first. It returns the number of items written.
func ImportFeed(ctx context.Context, store FeedStore, path string) (int, error) {
	items, err := provider.ParseFeedFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read feed: %w", err)
	}

	if err := store.Ensure(ctx); err != nil {
		return 0, err
	}
	if len(items) == 0 {
		util.LogWarnf("Feed %s has no items, nothing imported", path)
		return 0, nil
	}
	if err := store.Import(ctx, items); err != nil {
		return 0, err
	}

	util.LogInfof("Imported %d items from %s", len(items), path)
	return len(items), nil
}
