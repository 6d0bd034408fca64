// Package metrics exposes Prometheus collectors for the harvester and the read API.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fetchRequestsTotal *prometheus.CounterVec
	fetchRetriesTotal  *prometheus.CounterVec
	policySkipsTotal   prometheus.Counter
	upsertsTotal       *prometheus.CounterVec
	runsTotal          *prometheus.CounterVec
	apiRequestsTotal   *prometheus.CounterVec

	once sync.Once
)

// Init registers the collectors. It is safe to call multiple times.
func Init() {
	once.Do(func() {
		fetchRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvester_fetch_requests_total",
				Help: "HTTP requests issued by the fetch client, labeled by result.",
			},
			[]string{"result"},
		)

		fetchRetriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvester_fetch_retries_total",
				Help: "Retries scheduled by the fetch client, labeled by cause.",
			},
			[]string{"cause"},
		)

		policySkipsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "harvester_policy_skips_total",
				Help: "URLs skipped because the exclusion policy denies them.",
			},
		)

		upsertsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvester_upserts_total",
				Help: "Rows written, labeled by kind (article/fixture) and action (insert/update).",
			},
			[]string{"kind", "action"},
		)

		runsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvester_runs_total",
				Help: "Harvest runs, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		apiRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "Read API requests, labeled by route and status code.",
			},
			[]string{"route", "code"},
		)
	})
}

// ObserveFetch records one HTTP request. result is a status code or "error".
func ObserveFetch(result string) {
	Init()
	fetchRequestsTotal.WithLabelValues(result).Inc()
}

// ObserveFetchStatus is ObserveFetch for a numeric status code.
func ObserveFetchStatus(code int) {
	ObserveFetch(strconv.Itoa(code))
}

func ObserveRetry(cause string) {
	Init()
	fetchRetriesTotal.WithLabelValues(cause).Inc()
}

func ObservePolicySkip() {
	Init()
	policySkipsTotal.Inc()
}

func ObserveUpsert(kind string, inserted bool) {
	Init()
	action := "update"
	if inserted {
		action = "insert"
	}
	upsertsTotal.WithLabelValues(kind, action).Inc()
}

func ObserveRun(outcome string) {
	Init()
	runsTotal.WithLabelValues(outcome).Inc()
}

func ObserveAPIRequest(route string, code int) {
	Init()
	apiRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}
