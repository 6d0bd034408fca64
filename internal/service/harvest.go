package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"club_harvester/internal/config"
	"club_harvester/internal/domain"
	"club_harvester/internal/fetch"
	"club_harvester/internal/identity"
	"club_harvester/internal/metrics"
	"club_harvester/internal/politeness"
)

// FetcherFactory returns a fresh client for every run so the request budget
// and counters never leak between runs.
type FetcherFactory func() Fetcher

// outcomeError ends a run with a specific outcome.
type outcomeError struct {
	outcome domain.RunOutcome
	err     error
}

func (e *outcomeError) Error() string { return e.err.Error() }
func (e *outcomeError) Unwrap() error { return e.err }

func failWith(outcome domain.RunOutcome, format string, args ...any) error {
	return &outcomeError{outcome: outcome, err: fmt.Errorf(format, args...)}
}

type HarvestService struct {
	newFetcher FetcherFactory
	extractor  Extractor
	articles   ArticleStore
	fixtures   FixtureStore
	runs       RunStore
	publisher  Publisher
	logger     *slog.Logger
	site       config.SiteConfig
	config     config.SyncConfig
	userAgent  string
}

func NewHarvestService(
	newFetcher FetcherFactory,
	extractor Extractor,
	articles ArticleStore,
	fixtures FixtureStore,
	runs RunStore,
	publisher Publisher,
	logger *slog.Logger,
	site config.SiteConfig,
	cfg config.SyncConfig,
	userAgent string,
) *HarvestService {
	return &HarvestService{
		newFetcher: newFetcher,
		extractor:  extractor,
		articles:   articles,
		fixtures:   fixtures,
		runs:       runs,
		publisher:  publisher,
		logger:     logger.With("component", "harvest"),
		site:       site,
		config:     cfg,
		userAgent:  userAgent,
	}
}

// harvestRun is the state of one run. It is never shared between runs.
type harvestRun struct {
	*HarvestService
	fetcher     Fetcher
	gate        *politeness.Gate
	stats       *domain.RunStats
	matchesBody []byte
}

// Run executes one harvest and always returns its statistics. The outcome
// is recorded in stats.Outcome; rows committed before a failure stay.
func (s *HarvestService) Run(ctx context.Context) *domain.RunStats {
	stats := &domain.RunStats{State: domain.StateInit, StartedAt: time.Now()}
	run := &harvestRun{HarvestService: s, fetcher: s.newFetcher(), stats: stats}

	if id, err := s.runs.Start(ctx); err != nil {
		s.logger.Warn("failed to journal run start", "error", err)
	} else {
		stats.RunID = id
	}

	s.logger.Info("starting harvest",
		"run_id", stats.RunID,
		"news_limit", s.config.NewsLimit,
		"dry_run", s.config.DryRun,
	)

	err := run.execute(ctx)

	stats.Requests = run.fetcher.RequestCount()
	stats.Duration = time.Since(stats.StartedAt)
	stats.Outcome = classify(err)
	if err != nil {
		stats.Reason = err.Error()
		s.logger.Error("harvest failed",
			"state", stats.State,
			"outcome", stats.Outcome,
			"error", err,
		)
		stats.State = domain.StateFailed
	}

	if stats.RunID != 0 {
		if err := s.runs.Finish(context.WithoutCancel(ctx), stats); err != nil {
			s.logger.Warn("failed to journal run finish", "run_id", stats.RunID, "error", err)
		}
	}
	metrics.ObserveRun(string(stats.Outcome))

	s.logger.Info("harvest completed",
		"outcome", stats.Outcome,
		"requests", stats.Requests,
		"articles_inserted", stats.ArticlesInserted,
		"articles_updated", stats.ArticlesUpdated,
		"articles_unchanged", stats.ArticlesUnchanged,
		"articles_skipped", stats.ArticlesSkipped,
		"fixtures_inserted", stats.FixturesInserted,
		"fixtures_updated", stats.FixturesUpdated,
		"reports_attached", stats.ReportsAttached,
		"errors", stats.Errors,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats
}

func classify(err error) domain.RunOutcome {
	if err == nil {
		return domain.OutcomeSuccess
	}
	if errors.Is(err, fetch.ErrBudgetExceeded) {
		return domain.OutcomeBudgetExceeded
	}
	var oe *outcomeError
	if errors.As(err, &oe) {
		return oe.outcome
	}
	return domain.OutcomeUnexpectedError
}

func (r *harvestRun) execute(ctx context.Context) error {
	if err := r.loadPolicy(ctx); err != nil {
		return err
	}
	r.stats.State = domain.StatePolicyLoaded

	cards, err := r.fetchListing(ctx)
	if err != nil {
		return err
	}
	r.stats.State = domain.StateListingFetched

	if err := r.processDetails(ctx, cards); err != nil {
		return err
	}
	r.stats.State = domain.StateDetailsProcessed

	fragments, err := r.fetchFixtures(ctx)
	if err != nil {
		return err
	}
	r.stats.State = domain.StateFeedFetched

	fixtures := r.resolveFixtures(fragments)
	r.stats.State = domain.StateReportsJoined

	if err := r.storeFixtures(ctx, fixtures); err != nil {
		return err
	}
	r.stats.State = domain.StateDone
	return nil
}

// loadPolicy fetches the exclusion document without revalidation: an empty
// 304 body must never be read as "no rules".
func (r *harvestRun) loadPolicy(ctx context.Context) error {
	robotsURL := r.site.RobotsURL()

	out, err := r.fetcher.Fetch(ctx, robotsURL, fetch.Options{})
	if err != nil {
		if errors.Is(err, fetch.ErrBudgetExceeded) {
			return err
		}
		return failWith(domain.OutcomePolicyFetchFailed, "fetch robots.txt: %w", err)
	}
	if out == nil || len(out.Body) == 0 {
		return failWith(domain.OutcomePolicyFetchFailed, "robots.txt is empty")
	}

	gate, err := politeness.Load(out.Body, r.userAgent)
	if err != nil {
		return failWith(domain.OutcomePolicyFetchFailed, "load robots.txt: %w", err)
	}
	r.gate = gate
	r.logger.Info("policy loaded", "url", robotsURL)
	return nil
}

// requirePrimary denies the whole run when a primary page is disallowed.
func (r *harvestRun) requirePrimary(pageURL string) error {
	decision := r.gate.Allowed(pageURL)
	if !decision.Allowed {
		return failWith(domain.OutcomePolicyDenied, "policy denies %s: %s", pageURL, decision.Reason)
	}
	return nil
}

func (r *harvestRun) fetchListing(ctx context.Context) ([]domain.ArticleCard, error) {
	newsURL := r.site.NewsURL()
	if err := r.requirePrimary(newsURL); err != nil {
		return nil, err
	}

	out, err := r.fetcher.Fetch(ctx, newsURL, fetch.Options{})
	if err != nil {
		if errors.Is(err, fetch.ErrBudgetExceeded) {
			return nil, err
		}
		r.stats.Errors++
		r.logger.Warn("failed to fetch news listing, skipping articles", "url", newsURL, "error", err)
		return nil, nil
	}

	cards, err := r.extractor.ParseNewsList(out.Body, r.config.NewsLimit)
	if err != nil {
		r.stats.Errors++
		r.logger.Warn("failed to parse news listing, skipping articles", "url", newsURL, "error", err)
		return nil, nil
	}

	r.logger.Info("news listing fetched", "cards", len(cards))
	return cards, nil
}

func (r *harvestRun) processDetails(ctx context.Context, cards []domain.ArticleCard) error {
	for _, card := range cards {
		if decision := r.gate.Allowed(card.URL); !decision.Allowed {
			r.stats.ArticlesSkipped++
			r.logger.Info("skipping article", "url", card.URL, "reason", decision.Reason)
			continue
		}

		out, err := r.fetcher.Fetch(ctx, card.URL, fetch.Options{Detail: true, Conditional: true})
		if err != nil {
			if errors.Is(err, fetch.ErrBudgetExceeded) {
				return err
			}
			r.stats.Errors++
			r.logger.Warn("failed to fetch article", "url", card.URL, "error", err)
			continue
		}
		if out.NotModified {
			r.stats.ArticlesUnchanged++
			r.logger.Info("article not modified", "url", card.URL)
			continue
		}
		if len(out.Body) == 0 {
			r.stats.ArticlesSkipped++
			r.logger.Warn("article body is empty", "url", card.URL)
			continue
		}

		article, err := r.extractor.ParseArticle(out.Body, card)
		if err != nil {
			r.stats.Errors++
			r.logger.Warn("failed to parse article", "url", card.URL, "error", err)
			continue
		}

		if err := r.saveArticle(ctx, article); err != nil {
			return err
		}
	}
	return nil
}

func (r *harvestRun) saveArticle(ctx context.Context, article *domain.Article) error {
	if r.config.DryRun {
		r.logger.Info("dry run, article not stored", "url", article.URL, "variant", article.Variant)
		return nil
	}

	inserted, _, err := r.articles.Upsert(ctx, article)
	if err != nil {
		return fmt.Errorf("store article: %w", err)
	}
	metrics.ObserveUpsert("article", inserted)
	if inserted {
		r.stats.ArticlesInserted++
	} else {
		r.stats.ArticlesUpdated++
	}
	r.logger.Debug("article stored", "url", article.URL, "inserted", inserted)

	if r.publisher != nil {
		if err := r.publisher.PublishArticle(ctx, article, inserted); err != nil {
			r.stats.Errors++
			r.logger.Warn("failed to publish article", "url", article.URL, "error", err)
		} else {
			r.stats.Published++
		}
	}
	return nil
}

// fetchFixtures warms up the matches page, which also carries the report
// links, then pulls the JSON feed as an XHR from that page. When the feed
// yields nothing the fixture list of the page is used instead.
func (r *harvestRun) fetchFixtures(ctx context.Context) ([]domain.FixtureFragment, error) {
	matchesURL := r.site.MatchesURL()
	if err := r.requirePrimary(matchesURL); err != nil {
		return nil, err
	}

	out, err := r.fetcher.Fetch(ctx, matchesURL, fetch.Options{})
	if err != nil {
		if errors.Is(err, fetch.ErrBudgetExceeded) {
			return nil, err
		}
		r.stats.Errors++
		r.logger.Warn("failed to fetch matches page", "url", matchesURL, "error", err)
	} else {
		r.matchesBody = out.Body
	}

	fragments, err := r.fetchFeed(ctx, matchesURL)
	if err != nil {
		return nil, err
	}

	if len(fragments) == 0 && len(r.matchesBody) > 0 {
		fragments, err = r.extractor.ParseFixtureList(r.matchesBody)
		if err != nil {
			r.stats.Errors++
			r.logger.Warn("failed to parse fixture list", "error", err)
			return nil, nil
		}
		r.logger.Info("using fixture list from matches page", "fixtures", len(fragments))
	}
	return fragments, nil
}

func (r *harvestRun) fetchFeed(ctx context.Context, referer string) ([]domain.FixtureFragment, error) {
	feedURL := r.site.FeedURL()
	if decision := r.gate.Allowed(feedURL); !decision.Allowed {
		r.logger.Info("skipping fixtures feed", "url", feedURL, "reason", decision.Reason)
		return nil, nil
	}

	out, err := r.fetcher.Fetch(ctx, feedURL, fetch.Options{Header: xhrHeader(referer)})
	if err != nil {
		if errors.Is(err, fetch.ErrBudgetExceeded) {
			return nil, err
		}
		r.stats.Errors++
		r.logger.Warn("failed to fetch fixtures feed", "url", feedURL, "error", err)
		return nil, nil
	}
	if len(out.Body) == 0 {
		r.logger.Warn("fixtures feed is empty", "url", feedURL)
		return nil, nil
	}

	fragments, err := r.extractor.ParseFixturesFeed(out.Body)
	if err != nil {
		r.stats.Errors++
		r.logger.Warn("failed to parse fixtures feed", "url", feedURL, "error", err)
		return nil, nil
	}

	r.logger.Info("fixtures feed fetched", "fixtures", len(fragments))
	return fragments, nil
}

func xhrHeader(referer string) http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("X-Requested-With", "XMLHttpRequest")
	h.Set("Referer", referer)
	if u, err := url.Parse(referer); err == nil && u.Host != "" {
		h.Set("Origin", u.Scheme+"://"+u.Host)
	}
	return h
}

func (r *harvestRun) resolveFixtures(fragments []domain.FixtureFragment) []domain.Fixture {
	fixtures := make([]domain.Fixture, 0, len(fragments))
	for _, frag := range fragments {
		f := identity.Resolve(frag)
		if strings.TrimSpace(f.MatchKey) == "" {
			r.logger.Warn("skipping fixture without identity")
			continue
		}
		fixtures = append(fixtures, f)
	}

	var links []domain.ReportLink
	if len(r.matchesBody) > 0 {
		var err error
		links, err = r.extractor.ParseReportLinks(r.matchesBody)
		if err != nil {
			r.stats.Errors++
			r.logger.Warn("failed to parse report links", "error", err)
		}
	}

	r.stats.ReportsAttached = identity.Join(fixtures, links)
	r.logger.Info("reports joined",
		"fixtures", len(fixtures),
		"report_links", len(links),
		"attached", r.stats.ReportsAttached,
	)
	return fixtures
}

func (r *harvestRun) storeFixtures(ctx context.Context, fixtures []domain.Fixture) error {
	for i := range fixtures {
		fixture := &fixtures[i]

		if r.config.DryRun {
			r.logger.Info("dry run, fixture not stored", "match_key", fixture.MatchKey, "status", fixture.Status)
			continue
		}

		inserted, _, err := r.fixtures.Upsert(ctx, fixture)
		if err != nil {
			return fmt.Errorf("store fixture: %w", err)
		}
		metrics.ObserveUpsert("fixture", inserted)
		if inserted {
			r.stats.FixturesInserted++
		} else {
			r.stats.FixturesUpdated++
		}

		if r.publisher != nil {
			if err := r.publisher.PublishFixture(ctx, fixture, inserted); err != nil {
				r.stats.Errors++
				r.logger.Warn("failed to publish fixture", "match_key", fixture.MatchKey, "error", err)
			} else {
				r.stats.Published++
			}
		}
	}
	return nil
}
