package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"club_harvester/internal/domain"
)

type memoryValidators struct {
	mu      sync.Mutex
	entries map[string]*domain.RevalidationEntry
	puts    int
}

func newMemoryValidators() *memoryValidators {
	return &memoryValidators{entries: make(map[string]*domain.RevalidationEntry)}
}

func (m *memoryValidators) Get(_ context.Context, url string) (*domain.RevalidationEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[url], nil
}

func (m *memoryValidators) Put(_ context.Context, entry *domain.RevalidationEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.entries[entry.URL] = entry
	return nil
}

type ClientTestSuite struct {
	suite.Suite
	validators *memoryValidators
	sleeps     []time.Duration
	logger     *slog.Logger
}

func (s *ClientTestSuite) SetupTest() {
	s.validators = newMemoryValidators()
	s.sleeps = nil
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) newClient(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = "test-agent"
	}
	return New(cfg, s.validators, s.logger, WithSleep(func(_ context.Context, d time.Duration) error {
		s.sleeps = append(s.sleeps, d)
		return nil
	}))
}

func ptr(v string) *string { return &v }

func (s *ClientTestSuite) TestBudget_FailsOnRequestAfterLimit() {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := s.newClient(Config{MaxRequests: 3})

	var budgetErrors int
	for i := 1; i <= 5; i++ {
		_, err := client.Fetch(context.Background(), srv.URL, Options{})
		if err != nil {
			s.True(errors.Is(err, ErrBudgetExceeded))
			s.Equal(4, i)
			budgetErrors++
			break
		}
	}

	s.Equal(1, budgetErrors)
	s.Equal(3, hits)
	s.Equal(3, client.RequestCount())

	_, err := client.Fetch(context.Background(), srv.URL, Options{})
	s.ErrorIs(err, ErrBudgetExceeded)
	s.Equal(3, hits)
}

func (s *ClientTestSuite) TestNotModified_ShortCircuitsWithoutWriteBack() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"abc"` && r.Header.Get("If-Modified-Since") == "Wed, 01 Jan 2025 10:00:00 GMT" {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		_, _ = w.Write([]byte("changed"))
	}))
	defer srv.Close()

	s.validators.entries[srv.URL] = &domain.RevalidationEntry{
		URL:          srv.URL,
		ETag:         ptr(`"abc"`),
		LastModified: ptr("Wed, 01 Jan 2025 10:00:00 GMT"),
	}

	client := s.newClient(Config{MaxRequests: 10, MaxRetries: 3})
	outcome, err := client.Fetch(context.Background(), srv.URL, Options{Conditional: true})

	s.Require().NoError(err)
	s.True(outcome.NotModified)
	s.Nil(outcome.Body)
	s.Equal(http.StatusNotModified, outcome.Status)
	s.Equal(0, s.validators.puts)
	s.Equal(1, client.RequestCount())
}

func (s *ClientTestSuite) TestConditional_WritesBackValidators() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("ETag", `"v2"`)
		w.Header().Set("Last-Modified", "Thu, 02 Jan 2025 10:00:00 GMT")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	client := s.newClient(Config{MaxRequests: 10})
	outcome, err := client.Fetch(context.Background(), srv.URL, Options{Conditional: true})

	s.Require().NoError(err)
	s.Equal("<html></html>", string(outcome.Body))
	s.Equal(1, s.validators.puts)
	entry := s.validators.entries[srv.URL]
	s.Require().NotNil(entry)
	s.Equal(`"v2"`, *entry.ETag)
	s.Equal("Thu, 02 Jan 2025 10:00:00 GMT", *entry.LastModified)
}

func (s *ClientTestSuite) TestConditional_ClearsStaleValidators() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	s.validators.entries[srv.URL] = &domain.RevalidationEntry{URL: srv.URL, ETag: ptr(`"old"`)}

	client := s.newClient(Config{MaxRequests: 10})
	_, err := client.Fetch(context.Background(), srv.URL, Options{Conditional: true})

	s.Require().NoError(err)
	entry := s.validators.entries[srv.URL]
	s.Nil(entry.ETag)
	s.Nil(entry.LastModified)
}

func (s *ClientTestSuite) TestForceFresh_SuppressesConditionalHeaders() {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("ETag", `"new"`)
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	s.validators.entries[srv.URL] = &domain.RevalidationEntry{URL: srv.URL, ETag: ptr(`"abc"`)}

	client := s.newClient(Config{MaxRequests: 10})
	outcome, err := client.Fetch(context.Background(), srv.URL, Options{
		Header: http.Header{
			"X-Requested-With": {"XMLHttpRequest"},
			"Referer":          {"https://example.test/matches"},
		},
	})

	s.Require().NoError(err)
	s.Equal("[]", string(outcome.Body))
	s.Empty(got.Get("If-None-Match"))
	s.Equal("no-cache", got.Get("Cache-Control"))
	s.Equal("no-cache", got.Get("Pragma"))
	s.Equal("XMLHttpRequest", got.Get("X-Requested-With"))
	s.Equal("https://example.test/matches", got.Get("Referer"))
	s.Equal("test-agent", got.Get("User-Agent"))
	s.Equal(0, s.validators.puts)
}

func (s *ClientTestSuite) TestRetry_TransientStatusThenSuccess() {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		if hits <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := s.newClient(Config{MaxRequests: 10, MaxRetries: 4, BackoffBase: 2})
	outcome, err := client.Fetch(context.Background(), srv.URL, Options{})

	s.Require().NoError(err)
	s.Equal("ok", string(outcome.Body))
	s.Equal(3, hits)
	s.Equal(3, client.RequestCount())
	// three politeness delays of zero plus backoffs of 2^0 and 2^1 seconds
	s.Equal([]time.Duration{0, time.Second, 0, 2 * time.Second, 0}, s.sleeps)
}

func (s *ClientTestSuite) TestRetry_ExhaustedReturnsStatusError() {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := s.newClient(Config{MaxRequests: 10, MaxRetries: 2, BackoffBase: 1.7})
	_, err := client.Fetch(context.Background(), srv.URL, Options{})

	var statusErr *StatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusTooManyRequests, statusErr.Status)
	s.Equal(3, hits)
}

func (s *ClientTestSuite) TestHardFailure_NotRetried() {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := s.newClient(Config{MaxRequests: 10, MaxRetries: 4})
	_, err := client.Fetch(context.Background(), srv.URL, Options{Conditional: true})

	var statusErr *StatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusNotFound, statusErr.Status)
	s.Equal(1, hits)
	s.Equal(0, s.validators.puts)
}

func (s *ClientTestSuite) TestNetworkError_RetriedThenSurfaced() {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := s.newClient(Config{MaxRequests: 10, MaxRetries: 1, BackoffBase: 1.5})
	_, err := client.Fetch(context.Background(), url, Options{})

	s.Require().Error(err)
	s.NotErrorIs(err, ErrBudgetExceeded)
	s.Equal(2, client.RequestCount())
}

func (s *ClientTestSuite) TestDelay_DetailWindowAddsExtra() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := s.newClient(Config{
		MaxRequests:    10,
		MinDelay:       time.Second,
		MaxDelay:       time.Second,
		DetailExtraMin: 2 * time.Second,
		DetailExtraMax: 2 * time.Second,
	})

	_, err := client.Fetch(context.Background(), srv.URL, Options{})
	s.Require().NoError(err)
	_, err = client.Fetch(context.Background(), srv.URL, Options{Detail: true})
	s.Require().NoError(err)

	s.Equal([]time.Duration{time.Second, 3 * time.Second}, s.sleeps)
}

func TestUniform_StaysInWindow(t *testing.T) {
	for i := 0; i < 100; i++ {
		d := uniform(200*time.Millisecond, time.Second)
		if d < 200*time.Millisecond || d > time.Second {
			t.Fatalf("delay %s outside window", d)
		}
	}
}
