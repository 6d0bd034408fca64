package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club_harvester/internal/config"
	"club_harvester/internal/domain"
	"club_harvester/internal/fetch"
	"club_harvester/internal/source/club"
)

const (
	siteListing = `<html><body><ul class="articles-list">
  <li class="article"><a href="/novinky/novy-trener"><span class="article__title">Nový tréner</span></a>
  <span class="article__date">09.01.2025</span></li>
</ul></body></html>`

	siteArticle = `<html><body><div class="article-news">
  <h1>Nový tréner</h1>
  <div class="article-news__info">PRIDANÉ: 09.01.2025</div>
  <main><div property="schema:text"><p>Klub predstavil nového trénera.</p></div></main>
</div></body></html>`

	siteMatches = `<html><body><div class="matches-list">
  <div class="matches-list__item">
    <time class="matches-list__date" datetime="2025-01-10T18:00:00+01:00">pi 10.01.2025 18:00</time>
    <span class="matches-list__round">12.  kolo</span>
    <div class="matches-list__team-names">
      <span class="matches-list__team-name">HC Y</span>
      <span class="matches-list__team-name">HC X</span>
    </div>
    <a href="/zapasy/abc">Report</a>
  </div>
</div></body></html>`

	siteFeed = `[{
  "date": "2025-01-10T18:00:00+0100",
  "dateFormatted": "pi 10.01.2025 18:00",
  "matchStatus": "played",
  "round": "12. kolo",
  "homeTeam": "HC X",
  "awayTeam": "HC Y",
  "isHome": "1",
  "score": "4:3"
}]`
)

type memArticles struct {
	mu   sync.Mutex
	rows map[string]domain.Article
}

func (m *memArticles) Upsert(_ context.Context, a *domain.Article) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.rows[a.URL]
	m.rows[a.URL] = *a
	return !exists, exists, nil
}

type memFixtures struct {
	mu   sync.Mutex
	rows map[string]domain.Fixture
}

func (m *memFixtures) Upsert(_ context.Context, f *domain.Fixture) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.rows[f.MatchKey]
	m.rows[f.MatchKey] = *f
	return !exists, exists, nil
}

type memRuns struct {
	finished []domain.RunStats
}

func (m *memRuns) Start(context.Context) (int64, error) {
	return int64(len(m.finished) + 1), nil
}

func (m *memRuns) Finish(_ context.Context, stats *domain.RunStats) error {
	m.finished = append(m.finished, *stats)
	return nil
}

type memValidators struct {
	mu      sync.Mutex
	entries map[string]*domain.RevalidationEntry
}

func (m *memValidators) Get(_ context.Context, url string) (*domain.RevalidationEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[url], nil
}

func (m *memValidators) Put(_ context.Context, entry *domain.RevalidationEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.URL] = entry
	return nil
}

func newSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "User-agent: *\nAllow: /\n")
	})
	mux.HandleFunc("/novinky", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, siteListing)
	})
	mux.HandleFunc("/novinky/novy-trener", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = io.WriteString(w, siteArticle)
	})
	mux.HandleFunc("/zapasy", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, siteMatches)
	})
	mux.HandleFunc("/api/matches", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Requested-With") != "XMLHttpRequest" || r.Header.Get("If-None-Match") != "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, siteFeed)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHarvest_EndToEnd(t *testing.T) {
	srv := newSite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	extractor, err := club.NewExtractor(srv.URL)
	require.NoError(t, err)

	articles := &memArticles{rows: map[string]domain.Article{}}
	fixtures := &memFixtures{rows: map[string]domain.Fixture{}}
	runs := &memRuns{}
	validators := &memValidators{entries: map[string]*domain.RevalidationEntry{}}

	newFetcher := func() Fetcher {
		return fetch.New(fetch.Config{UserAgent: "test-agent", MaxRequests: 10}, validators, logger,
			fetch.WithSleep(func(context.Context, time.Duration) error { return nil }))
	}

	svc := NewHarvestService(
		newFetcher,
		extractor,
		articles,
		fixtures,
		runs,
		nil,
		logger,
		config.SiteConfig{
			BaseURL:     srv.URL,
			RobotsPath:  "/robots.txt",
			NewsPath:    "/novinky",
			MatchesPath: "/zapasy",
			FeedPath:    "/api/matches",
		},
		config.SyncConfig{NewsLimit: 5},
		"test-agent",
	)

	first := svc.Run(context.Background())

	require.Equal(t, domain.OutcomeSuccess, first.Outcome, first.Reason)
	assert.Equal(t, 5, first.Requests)
	assert.Equal(t, 1, first.ArticlesInserted)
	assert.Equal(t, 1, first.FixturesInserted)
	assert.Equal(t, 1, first.ReportsAttached)

	require.Len(t, fixtures.rows, 1)
	fixture, found := fixtures.rows["2025-01-10T18:00:00+0100|12. kolo|HC X|HC Y"]
	require.True(t, found)
	assert.Equal(t, domain.StatusPlayed, fixture.Status)
	require.NotNil(t, fixture.Score)
	assert.Equal(t, "4:3", *fixture.Score)
	require.NotNil(t, fixture.ReportURL)
	assert.Equal(t, srv.URL+"/zapasy/abc", *fixture.ReportURL)

	article, found := articles.rows[srv.URL+"/novinky/novy-trener"]
	require.True(t, found)
	assert.Equal(t, domain.VariantNews, article.Variant)
	assert.Equal(t, "Klub predstavil nového trénera.", article.ContentText)

	second := svc.Run(context.Background())

	require.Equal(t, domain.OutcomeSuccess, second.Outcome, second.Reason)
	assert.Equal(t, 5, second.Requests)
	assert.Equal(t, 1, second.ArticlesUnchanged)
	assert.Zero(t, second.ArticlesInserted)
	assert.Equal(t, 1, second.FixturesUpdated)
	assert.Len(t, fixtures.rows, 1)
	assert.Len(t, runs.finished, 2)
}

func TestHarvest_BudgetExhaustedMidRun(t *testing.T) {
	srv := newSite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	extractor, err := club.NewExtractor(srv.URL)
	require.NoError(t, err)

	fixtures := &memFixtures{rows: map[string]domain.Fixture{}}
	validators := &memValidators{entries: map[string]*domain.RevalidationEntry{}}

	svc := NewHarvestService(
		func() Fetcher {
			return fetch.New(fetch.Config{UserAgent: "test-agent", MaxRequests: 3}, validators, logger,
				fetch.WithSleep(func(context.Context, time.Duration) error { return nil }))
		},
		extractor,
		&memArticles{rows: map[string]domain.Article{}},
		fixtures,
		&memRuns{},
		nil,
		logger,
		config.SiteConfig{BaseURL: srv.URL, RobotsPath: "/robots.txt", NewsPath: "/novinky", MatchesPath: "/zapasy", FeedPath: "/api/matches"},
		config.SyncConfig{NewsLimit: 5},
		"test-agent",
	)

	stats := svc.Run(context.Background())

	assert.Equal(t, domain.OutcomeBudgetExceeded, stats.Outcome)
	assert.Equal(t, 3, stats.Requests)
	assert.Equal(t, 1, stats.ArticlesInserted)
	assert.Empty(t, fixtures.rows)
}
