package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"club_harvester/internal/domain"
)

const fixtureColumns = `match_key, status, date_text, date_iso, round, venue, team_home, team_away,
	logo_home_url, logo_away_url, score, score_periods, is_win, report_url,
	first_seen_at, updated_at`

type FixtureStore struct {
	db *sqlx.DB
}

func NewFixtureStore(db *sqlx.DB) *FixtureStore {
	return &FixtureStore{db: db}
}

// Upsert is keyed by match key. Status and result columns are replaced along
// with everything else, so an upcoming row turns played in place.
func (s *FixtureStore) Upsert(ctx context.Context, fixture *domain.Fixture) (bool, bool, error) {
	query := `
		INSERT INTO fixtures (
			match_key, status, date_text, date_iso, round, venue, team_home, team_away,
			logo_home_url, logo_away_url, score, score_periods, is_win, report_url,
			first_seen_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now()
		)
		ON CONFLICT (match_key) DO UPDATE SET
			status = EXCLUDED.status,
			date_text = EXCLUDED.date_text,
			date_iso = EXCLUDED.date_iso,
			round = EXCLUDED.round,
			venue = EXCLUDED.venue,
			team_home = EXCLUDED.team_home,
			team_away = EXCLUDED.team_away,
			logo_home_url = EXCLUDED.logo_home_url,
			logo_away_url = EXCLUDED.logo_away_url,
			score = EXCLUDED.score,
			score_periods = EXCLUDED.score_periods,
			is_win = EXCLUDED.is_win,
			report_url = EXCLUDED.report_url,
			updated_at = now()
		RETURNING (xmax = 0) AS inserted, first_seen_at, updated_at`

	var inserted bool
	err := s.db.QueryRowxContext(ctx, query,
		fixture.MatchKey,
		fixture.Status,
		fixture.DateText,
		fixture.DateISO,
		fixture.Round,
		fixture.Venue,
		fixture.TeamHome,
		fixture.TeamAway,
		fixture.LogoHomeURL,
		fixture.LogoAwayURL,
		fixture.Score,
		fixture.ScorePeriods,
		fixture.IsWin,
		fixture.ReportURL,
	).Scan(&inserted, &fixture.FirstSeenAt, &fixture.UpdatedAt)
	if err != nil {
		return false, false, fmt.Errorf("upsert fixture %s: %w", fixture.MatchKey, err)
	}

	return inserted, !inserted, nil
}

type FixtureFilter struct {
	Status string
	Limit  int
	Offset int
}

// List returns fixtures newest first.
func (s *FixtureStore) List(ctx context.Context, f FixtureFilter) ([]domain.Fixture, error) {
	query := "SELECT " + fixtureColumns + " FROM fixtures"
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		query += " WHERE status = $1"
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY COALESCE(date_iso, '') DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	fixtures := []domain.Fixture{}
	if err := s.db.SelectContext(ctx, &fixtures, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	return fixtures, nil
}

// Upcoming returns the soonest upcoming fixtures first.
func (s *FixtureStore) Upcoming(ctx context.Context, limit int) ([]domain.Fixture, error) {
	return s.byStatus(ctx, domain.StatusUpcoming, "ASC", limit)
}

// Played returns the most recently played fixtures first.
func (s *FixtureStore) Played(ctx context.Context, limit int) ([]domain.Fixture, error) {
	return s.byStatus(ctx, domain.StatusPlayed, "DESC", limit)
}

func (s *FixtureStore) byStatus(ctx context.Context, status domain.FixtureStatus, order string, limit int) ([]domain.Fixture, error) {
	query := "SELECT " + fixtureColumns + " FROM fixtures WHERE status = $1 ORDER BY COALESCE(date_iso, '') " + order + " LIMIT $2"

	fixtures := []domain.Fixture{}
	if err := s.db.SelectContext(ctx, &fixtures, query, status, limit); err != nil {
		return nil, fmt.Errorf("list %s fixtures: %w", status, err)
	}
	return fixtures, nil
}
