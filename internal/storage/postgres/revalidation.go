package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"club_harvester/internal/domain"
)

// RevalidationStore keeps ETag/Last-Modified tokens per URL in http_meta.
type RevalidationStore struct {
	db *sqlx.DB
}

func NewRevalidationStore(db *sqlx.DB) *RevalidationStore {
	return &RevalidationStore{db: db}
}

// Get returns nil without error for a URL never fetched conditionally.
func (s *RevalidationStore) Get(ctx context.Context, url string) (*domain.RevalidationEntry, error) {
	var entry domain.RevalidationEntry
	query := `
		SELECT url, etag, last_modified, updated_at
		FROM http_meta
		WHERE url = $1`

	err := s.db.GetContext(ctx, &entry, query, url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get validators: %w", err)
	}
	return &entry, nil
}

// Put overwrites both tokens, so absent tokens clear stale ones.
func (s *RevalidationStore) Put(ctx context.Context, entry *domain.RevalidationEntry) error {
	query := `
		INSERT INTO http_meta (url, etag, last_modified, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (url) DO UPDATE SET
			etag = EXCLUDED.etag,
			last_modified = EXCLUDED.last_modified,
			updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, entry.URL, entry.ETag, entry.LastModified); err != nil {
		return fmt.Errorf("put validators: %w", err)
	}
	return nil
}
