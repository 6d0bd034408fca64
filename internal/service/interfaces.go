package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"club_harvester/internal/domain"
	"club_harvester/internal/fetch"
)

// Fetcher is the per-run HTTP client. Implementations hold the request budget.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts fetch.Options) (*domain.FetchOutcome, error)
	RequestCount() int
}

type Extractor interface {
	ParseNewsList(body []byte, limit int) ([]domain.ArticleCard, error)
	ParseArticle(body []byte, card domain.ArticleCard) (*domain.Article, error)
	ParseFixturesFeed(body []byte) ([]domain.FixtureFragment, error)
	ParseFixtureList(body []byte) ([]domain.FixtureFragment, error)
	ParseReportLinks(body []byte) ([]domain.ReportLink, error)
}

type ArticleStore interface {
	Upsert(ctx context.Context, article *domain.Article) (inserted bool, updated bool, err error)
}

type FixtureStore interface {
	Upsert(ctx context.Context, fixture *domain.Fixture) (inserted bool, updated bool, err error)
}

type RunStore interface {
	Start(ctx context.Context) (int64, error)
	Finish(ctx context.Context, stats *domain.RunStats) error
}

type Publisher interface {
	PublishArticle(ctx context.Context, article *domain.Article, isNew bool) error
	PublishFixture(ctx context.Context, fixture *domain.Fixture, isNew bool) error
}
