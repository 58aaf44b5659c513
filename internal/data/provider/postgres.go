package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/penwyp/go-feed-digest/internal/core/constants"
	"github.com/penwyp/go-feed-digest/internal/core/model"
	"github.com/penwyp/go-feed-digest/internal/util"
)

const ensureTimelineSchema = `
CREATE TABLE IF NOT EXISTS timeline_items (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL,
    payload JSONB NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS timeline_items_created_at_id_idx
    ON timeline_items (created_at DESC, id DESC);
`

const (
	firstPageQuery = `SELECT id, created_at, payload FROM timeline_items
ORDER BY created_at DESC, id DESC
LIMIT $1`

	// Row comparison makes the cursor row itself the first row of the page.
	cursorPageQuery = `SELECT t.id, t.created_at, t.payload FROM timeline_items t
JOIN timeline_items c ON c.id = $1
WHERE (t.created_at, t.id) <= (c.created_at, c.id)
ORDER BY t.created_at DESC, t.id DESC
LIMIT $2`

	upsertItemQuery = `INSERT INTO timeline_items (id, created_at, payload)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET created_at = EXCLUDED.created_at, payload = EXCLUDED.payload`
)

// PostgresProvider serves timeline pages from a timeline_items table.
type PostgresProvider struct {
	db       *sql.DB
	pageSize int
}

// OpenPostgres connects using a lib/pq connection string.
func OpenPostgres(ctx context.Context, dsn string, pageSize int) (*PostgresProvider, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", describePQError(err))
	}
	return NewPostgresProvider(db, pageSize), nil
}

// NewPostgresProvider wraps an existing connection pool.
func NewPostgresProvider(db *sql.DB, pageSize int) *PostgresProvider {
	if pageSize <= 0 {
		pageSize = constants.MaxTimelineCount
	}
	return &PostgresProvider{db: db, pageSize: pageSize}
}

func (p *PostgresProvider) Name() string {
	return "postgres"
}

// Ensure creates the table and index if missing.
func (p *PostgresProvider) Ensure(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, ensureTimelineSchema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", describePQError(err))
	}
	return nil
}

// Fetch returns the page ending at cursor, newest first. An unknown cursor
// yields an empty page because the join matches no row.
func (p *PostgresProvider) Fetch(ctx context.Context, cursor model.Cursor) ([]model.TimelineItem, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if id, ok := cursor.ID(); ok {
		rows, err = p.db.QueryContext(ctx, cursorPageQuery, id, p.pageSize)
	} else {
		rows, err = p.db.QueryContext(ctx, firstPageQuery, p.pageSize)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query timeline: %w", describePQError(err))
	}
	defer rows.Close()

	items := make([]model.TimelineItem, 0, p.pageSize)
	for rows.Next() {
		var (
			item    model.TimelineItem
			payload []byte
		)
		if err := rows.Scan(&item.ID, &item.CreatedAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan timeline row: %w", err)
		}
		item.CreatedAt = item.CreatedAt.UTC()
		item.Payload = payload
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timeline rows: %w", describePQError(err))
	}

	util.LogDebugf("Postgres provider fetched %d items for cursor %s", len(items), cursor)
	return items, nil
}

// Import upserts items in a single transaction.
func (p *PostgresProvider) Import(ctx context.Context, items []model.TimelineItem) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", describePQError(err))
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertItemQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", describePQError(err))
	}
	defer stmt.Close()

	for _, item := range items {
		payload := []byte(item.Payload)
		if len(payload) == 0 {
			payload = []byte("{}")
		}
		if _, err := stmt.ExecContext(ctx, item.ID, item.CreatedAt.UTC(), payload); err != nil {
			return fmt.Errorf("failed to upsert item %s: %w", item.ID, describePQError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", describePQError(err))
	}
	util.LogInfof("Imported %d timeline items", len(items))
	return nil
}

func (p *PostgresProvider) Close() error {
	return p.db.Close()
}

// describePQError adds the SQLSTATE code of server-side errors.
func describePQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w (sqlstate %s)", err, pqErr.Code)
	}
	return err
}
