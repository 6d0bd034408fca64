package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"club_harvester/internal/domain"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("not found")

const articleColumns = `url, variant, title, date_text, date_iso, card_image_url, header_image_url,
	match_datetime_text, match_datetime_iso, match_round, match_score, match_is_win,
	match_logo_home_url, match_logo_away_url, content_html, content_text,
	first_seen_at, updated_at`

type ArticleStore struct {
	db *sqlx.DB
}

func NewArticleStore(db *sqlx.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// Upsert inserts the article or fully replaces every mutable column of the
// existing row. Exactly one of inserted/updated is true on success.
func (s *ArticleStore) Upsert(ctx context.Context, article *domain.Article) (bool, bool, error) {
	query := `
		INSERT INTO articles (
			url, variant, title, date_text, date_iso, card_image_url, header_image_url,
			match_datetime_text, match_datetime_iso, match_round, match_score, match_is_win,
			match_logo_home_url, match_logo_away_url, content_html, content_text,
			first_seen_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now(), now()
		)
		ON CONFLICT (url) DO UPDATE SET
			variant = EXCLUDED.variant,
			title = EXCLUDED.title,
			date_text = EXCLUDED.date_text,
			date_iso = EXCLUDED.date_iso,
			card_image_url = EXCLUDED.card_image_url,
			header_image_url = EXCLUDED.header_image_url,
			match_datetime_text = EXCLUDED.match_datetime_text,
			match_datetime_iso = EXCLUDED.match_datetime_iso,
			match_round = EXCLUDED.match_round,
			match_score = EXCLUDED.match_score,
			match_is_win = EXCLUDED.match_is_win,
			match_logo_home_url = EXCLUDED.match_logo_home_url,
			match_logo_away_url = EXCLUDED.match_logo_away_url,
			content_html = EXCLUDED.content_html,
			content_text = EXCLUDED.content_text,
			updated_at = now()
		RETURNING (xmax = 0) AS inserted, first_seen_at, updated_at`

	var inserted bool
	err := s.db.QueryRowxContext(ctx, query,
		article.URL,
		article.Variant,
		article.Title,
		article.DateText,
		article.DateISO,
		article.CardImageURL,
		article.HeaderImageURL,
		article.MatchDatetimeText,
		article.MatchDatetimeISO,
		article.MatchRound,
		article.MatchScore,
		article.MatchIsWin,
		article.MatchLogoHomeURL,
		article.MatchLogoAwayURL,
		article.ContentHTML,
		article.ContentText,
	).Scan(&inserted, &article.FirstSeenAt, &article.UpdatedAt)
	if err != nil {
		return false, false, fmt.Errorf("upsert article %s: %w", article.URL, err)
	}

	return inserted, !inserted, nil
}

// ArticleFilter narrows List. Query matches the title case-insensitively.
type ArticleFilter struct {
	Query   string
	Variant string
	Limit   int
	Offset  int
}

func (s *ArticleStore) List(ctx context.Context, f ArticleFilter) ([]domain.Article, error) {
	var (
		where []string
		args  []any
	)
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if f.Variant != "" {
		args = append(args, f.Variant)
		where = append(where, fmt.Sprintf("variant = $%d", len(args)))
	}

	query := "SELECT " + articleColumns + " FROM articles"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY COALESCE(date_iso, '') DESC, title ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	articles := []domain.Article{}
	if err := s.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (s *ArticleStore) GetByURL(ctx context.Context, url string) (*domain.Article, error) {
	var article domain.Article
	err := s.db.GetContext(ctx, &article, "SELECT "+articleColumns+" FROM articles WHERE url = $1", url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &article, nil
}

// Latest returns the newest articles by publication date, then by refresh time.
func (s *ArticleStore) Latest(ctx context.Context, limit int) ([]domain.Article, error) {
	query := "SELECT " + articleColumns + ` FROM articles
		ORDER BY COALESCE(date_iso, '') DESC, updated_at DESC
		LIMIT $1`

	articles := []domain.Article{}
	if err := s.db.SelectContext(ctx, &articles, query, limit); err != nil {
		return nil, fmt.Errorf("latest articles: %w", err)
	}
	return articles, nil
}
