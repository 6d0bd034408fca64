package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"club_harvester/internal/config"
	"club_harvester/internal/fetch"
	"club_harvester/internal/metrics"
	"club_harvester/internal/publisher"
	"club_harvester/internal/scheduler"
	"club_harvester/internal/service"
	"club_harvester/internal/source/club"
	"club_harvester/internal/storage/postgres"
)

const exitConfig = 1

type options struct {
	Config      string `long:"config" default:"config.yaml" description:"Path to config file"`
	DryRun      bool   `long:"dry-run" description:"Fetch and parse everything but write nothing to articles or fixtures"`
	NewsLimit   int    `long:"news-limit" description:"Maximum number of news cards to follow (overrides sync.news_limit)"`
	MaxRequests int    `long:"max-requests" description:"Hard request budget per run (overrides http.max_requests_per_run)"`
	Schedule    bool   `long:"schedule" description:"Run on the sync.schedule cron spec instead of once"`
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitConfig
	}
	if opts == nil {
		return 0
	}

	logger := setupLogger("info")

	cfg, err := config.Load(opts.Config)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return exitConfig
	}
	applyOverrides(cfg, opts)

	logger = setupLogger(cfg.LogLevel)
	metrics.Init()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return exitConfig
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		return exitConfig
	}
	logger.Info("connected to database")

	version, err := postgres.Migrate(db)
	if err != nil {
		logger.Error("failed to migrate database", "error", err)
		return exitConfig
	}
	logger.Info("schema ready", "version", version)

	// Publisher stays a nil interface when no broker is configured.
	var events service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			return exitConfig
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	extractor, err := club.NewExtractor(cfg.Site.BaseURL)
	if err != nil {
		logger.Error("invalid site base url", "error", err)
		return exitConfig
	}

	articleStore := postgres.NewArticleStore(db)
	fixtureStore := postgres.NewFixtureStore(db)
	runStore := postgres.NewRunStore(db)
	validators := postgres.NewRevalidationStore(db)

	fetchCfg := fetch.Config{
		UserAgent:      cfg.HTTP.UserAgent,
		AcceptLanguage: cfg.HTTP.AcceptLanguage,
		Timeout:        cfg.HTTP.Timeout,
		MinDelay:       cfg.HTTP.MinDelay,
		MaxDelay:       cfg.HTTP.MaxDelay,
		DetailExtraMin: cfg.HTTP.DetailExtraMin,
		DetailExtraMax: cfg.HTTP.DetailExtraMax,
		MaxRetries:     cfg.HTTP.MaxRetries,
		BackoffBase:    cfg.HTTP.BackoffBase,
		JitterMin:      cfg.HTTP.JitterMin,
		JitterMax:      cfg.HTTP.JitterMax,
		MaxRequests:    cfg.HTTP.MaxRequestsPerRun,
	}
	newFetcher := func() service.Fetcher {
		return fetch.New(fetchCfg, validators, logger)
	}

	harvestService := service.NewHarvestService(
		newFetcher,
		extractor,
		articleStore,
		fixtureStore,
		runStore,
		events,
		logger,
		cfg.Site,
		cfg.Sync,
		cfg.HTTP.UserAgent,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting club harvester",
		"site", cfg.Site.BaseURL,
		"news_limit", cfg.Sync.NewsLimit,
		"max_requests", cfg.HTTP.MaxRequestsPerRun,
		"dry_run", cfg.Sync.DryRun,
		"scheduled", opts.Schedule,
	)

	if !opts.Schedule {
		stats := harvestService.Run(ctx)
		return stats.Outcome.ExitCode()
	}

	location, err := time.LoadLocation(cfg.Sync.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, using local time", "timezone", cfg.Sync.Timezone, "error", err)
		location = time.Local
	}

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sched := scheduler.NewScheduler(harvestService, cfg.Sync.Schedule, location, logger)
	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		return exitConfig
	}
	return 0
}

// parseOptions returns nil options when help was requested.
func parseOptions(args []string) (*options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return &opts, nil
}

func applyOverrides(cfg *config.Config, opts *options) {
	if opts.DryRun {
		cfg.Sync.DryRun = true
	}
	if opts.NewsLimit > 0 {
		cfg.Sync.NewsLimit = opts.NewsLimit
	}
	if opts.MaxRequests > 0 {
		cfg.HTTP.MaxRequestsPerRun = opts.MaxRequests
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
