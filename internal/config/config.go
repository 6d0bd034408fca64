package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database    DatabaseConfig `yaml:"database"`
	RabbitMQ    RabbitMQConfig `yaml:"rabbitmq"`
	Site        SiteConfig     `yaml:"site"`
	HTTP        HTTPConfig     `yaml:"http"`
	Sync        SyncConfig     `yaml:"sync"`
	API         APIConfig      `yaml:"api"`
	MetricsAddr string         `yaml:"metrics_addr"`
	LogLevel    string         `yaml:"log_level"`
}

// RabbitMQConfig is optional; change events are not published when URL is empty.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN prefers an explicit URL (DATABASE_URL) over the assembled key/value form.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	RobotsPath  string `yaml:"robots_path"`
	NewsPath    string `yaml:"news_path"`
	MatchesPath string `yaml:"matches_path"`
	FeedPath    string `yaml:"feed_path"`
}

func (s SiteConfig) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	}
	ref, err := url.Parse(path)
	if err != nil {
		return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	}
	return base.ResolveReference(ref).String()
}

func (s SiteConfig) RobotsURL() string  { return s.resolve(s.RobotsPath) }
func (s SiteConfig) NewsURL() string    { return s.resolve(s.NewsPath) }
func (s SiteConfig) MatchesURL() string { return s.resolve(s.MatchesPath) }
func (s SiteConfig) FeedURL() string    { return s.resolve(s.FeedPath) }

type HTTPConfig struct {
	UserAgent         string        `yaml:"user_agent"`
	AcceptLanguage    string        `yaml:"accept_language"`
	Timeout           time.Duration `yaml:"timeout"`
	MinDelay          time.Duration `yaml:"min_delay"`
	MaxDelay          time.Duration `yaml:"max_delay"`
	DetailExtraMin    time.Duration `yaml:"detail_extra_min"`
	DetailExtraMax    time.Duration `yaml:"detail_extra_max"`
	MaxRetries        int           `yaml:"max_retries"`
	BackoffBase       float64       `yaml:"backoff_base"`
	JitterMin         time.Duration `yaml:"jitter_min"`
	JitterMax         time.Duration `yaml:"jitter_max"`
	MaxRequestsPerRun int           `yaml:"max_requests_per_run"`
}

type SyncConfig struct {
	NewsLimit int    `yaml:"news_limit"`
	Schedule  string `yaml:"schedule"`
	Timezone  string `yaml:"timezone"`
	DryRun    bool   `yaml:"dry_run"`
}

type APIConfig struct {
	Addr         string `yaml:"addr"`
	MaxPageLimit int    `yaml:"max_page_limit"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML after expanding ${VAR} references from the environment.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.URL = dsn
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "require"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "club_harvester"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "records"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "club_records"
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = "https://www.hckosice.sk"
	}
	if c.Site.RobotsPath == "" {
		c.Site.RobotsPath = "/robots.txt"
	}
	if c.Site.NewsPath == "" {
		c.Site.NewsPath = "/novinky"
	}
	if c.Site.MatchesPath == "" {
		c.Site.MatchesPath = "/a-muzstvo/zapasy"
	}
	if c.Site.FeedPath == "" {
		c.Site.FeedPath = "/api/matches?league=extraliga&season=2025-2026"
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = "ClubHarvester/1.0 (+contact: ops@example.com)"
	}
	if c.HTTP.AcceptLanguage == "" {
		c.HTTP.AcceptLanguage = "sk,en;q=0.8"
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = 20 * time.Second
	}
	if c.HTTP.MinDelay == 0 && c.HTTP.MaxDelay == 0 {
		c.HTTP.MinDelay = 2 * time.Second
		c.HTTP.MaxDelay = 6 * time.Second
	}
	if c.HTTP.DetailExtraMin == 0 && c.HTTP.DetailExtraMax == 0 {
		c.HTTP.DetailExtraMin = 3 * time.Second
		c.HTTP.DetailExtraMax = 8 * time.Second
	}
	if c.HTTP.MaxRetries == 0 {
		c.HTTP.MaxRetries = 4
	}
	if c.HTTP.BackoffBase == 0 {
		c.HTTP.BackoffBase = 1.7
	}
	if c.HTTP.JitterMin == 0 && c.HTTP.JitterMax == 0 {
		c.HTTP.JitterMin = 200 * time.Millisecond
		c.HTTP.JitterMax = time.Second
	}
	if c.HTTP.MaxRequestsPerRun == 0 {
		c.HTTP.MaxRequestsPerRun = 120
	}
	if c.Sync.NewsLimit == 0 {
		c.Sync.NewsLimit = 30
	}
	if c.Sync.Schedule == "" {
		c.Sync.Schedule = "@every 1h"
	}
	if c.Sync.Timezone == "" {
		c.Sync.Timezone = "Europe/Bratislava"
	}
	if c.API.Addr == "" {
		c.API.Addr = ":8080"
	}
	if c.API.MaxPageLimit == 0 {
		c.API.MaxPageLimit = 200
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
