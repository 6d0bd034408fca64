package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"club_harvester/internal/domain"
)

// RunStore journals harvest runs.
type RunStore struct {
	db *sqlx.DB
}

func NewRunStore(db *sqlx.DB) *RunStore {
	return &RunStore{db: db}
}

func (s *RunStore) Start(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx,
		"INSERT INTO runs (started_at) VALUES (now()) RETURNING id",
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

func (s *RunStore) Finish(ctx context.Context, stats *domain.RunStats) error {
	query := `
		UPDATE runs SET
			finished_at = now(),
			request_count = $2,
			outcome = $3,
			notes = $4
		WHERE id = $1`

	notes := fmt.Sprintf(
		"articles inserted=%d updated=%d unchanged=%d skipped=%d; fixtures inserted=%d updated=%d; reports=%d; errors=%d",
		stats.ArticlesInserted, stats.ArticlesUpdated, stats.ArticlesUnchanged, stats.ArticlesSkipped,
		stats.FixturesInserted, stats.FixturesUpdated, stats.ReportsAttached, stats.Errors,
	)
	if stats.Reason != "" {
		notes += "; reason: " + stats.Reason
	}

	_, err := s.db.ExecContext(ctx, query, stats.RunID, stats.Requests, stats.Outcome, notes)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}
