package provider

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-feed-digest/internal/core/constants"
	"github.com/penwyp/go-feed-digest/internal/core/model"
	"github.com/penwyp/go-feed-digest/internal/util"
)

// fileRecord holds the fields every feed line must carry. The whole line is
// kept as the item payload.
type fileRecord struct {
	ID        string `json:"id"`
	IDStr     string `json:"id_str"`
	CreatedAt string `json:"created_at"`
}

// feedSnapshot is a parsed feed file plus what is needed to tell whether the
// file changed since.
type feedSnapshot struct {
	items       []model.TimelineItem
	info        *util.FileInfo
	fingerprint string
}

// FileProvider serves a JSONL feed file as a paginated timeline. Only the
// Depth most recent items are reachable, mirroring APIs that cap how far back
// a timeline can be paged.
type FileProvider struct {
	path     string
	pageSize int
	depth    int

	mu       sync.Mutex
	snapshot *feedSnapshot
}

// NewFileProvider creates a provider for path. Non-positive pageSize and
// depth fall back to the home timeline limits; a negative depth disables the
// depth limit.
func NewFileProvider(path string, pageSize, depth int) *FileProvider {
	if pageSize <= 0 {
		pageSize = constants.MaxTimelineCount
	}
	if depth == 0 {
		depth = constants.HomeTimelineDepth
	}
	return &FileProvider{path: path, pageSize: pageSize, depth: depth}
}

func (p *FileProvider) Name() string {
	return "file:" + p.path
}

// Path returns the feed file location.
func (p *FileProvider) Path() string {
	return p.path
}

// Fetch returns the page starting at cursor, newest first.
func (p *FileProvider) Fetch(ctx context.Context, cursor model.Cursor) ([]model.TimelineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := p.load()
	if err != nil {
		return nil, err
	}

	if p.depth > 0 && len(items) > p.depth {
		items = items[:p.depth]
	}

	page := pageFrom(items, cursor, p.pageSize)
	util.LogDebugf("File provider %s served %d items for cursor %s", p.path, len(page), cursor)
	return page, nil
}

// Invalidate drops the cached parse so the next fetch re-reads the file.
func (p *FileProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = nil
}

func (p *FileProvider) load() ([]model.TimelineItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, err := util.GetFileInfo(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}

	if p.snapshot != nil && p.snapshot.info.Same(info) {
		fingerprint, err := util.CalculateFileFingerprint(p.path)
		if err == nil && fingerprint == p.snapshot.fingerprint {
			return p.snapshot.items, nil
		}
		util.LogDebugf("Feed file %s fingerprint changed, reloading", p.path)
	}

	items, err := ParseFeedFile(p.path)
	if err != nil {
		return nil, err
	}

	fingerprint, err := util.CalculateFileFingerprint(p.path)
	if err != nil {
		fingerprint = ""
	}
	p.snapshot = &feedSnapshot{items: items, info: info, fingerprint: fingerprint}
	return items, nil
}

// ParseFeedFile reads a JSONL feed. Lines without an id or a parseable
// created_at are skipped. Items are returned newest first; items with equal
// timestamps keep their file order.
func ParseFeedFile(path string) ([]model.TimelineItem, error) {
	util.LogDebug(fmt.Sprintf("Start parsing feed file: %s", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	defer file.Close()

	var items []model.TimelineItem
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		item, err := decodeItem(line)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid feed line %s:%d - %v", path, lineCount, err))
			continue
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan feed file: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	util.LogDebugf("Parsed %d items from %d lines of %s", len(items), lineCount, path)
	return items, nil
}

func decodeItem(line []byte) (model.TimelineItem, error) {
	var rec fileRecord
	if err := sonic.Unmarshal(line, &rec); err != nil {
		return model.TimelineItem{}, err
	}

	id := rec.ID
	if id == "" {
		id = rec.IDStr
	}
	if id == "" {
		return model.TimelineItem{}, fmt.Errorf("missing id")
	}

	createdAt, err := ParseTimestamp(rec.CreatedAt)
	if err != nil {
		return model.TimelineItem{}, err
	}

	payload := make(json.RawMessage, len(line))
	copy(payload, line)

	return model.TimelineItem{ID: id, CreatedAt: createdAt, Payload: payload}, nil
}
