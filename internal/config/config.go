// Package config loads application configuration from environment variables
// and the YAML source list.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "marketpulse/pkg/config"
)

// AppConfig holds the runtime configuration shared by the API server and
// the refresh worker.
type AppConfig struct {
	// Port is the HTTP listen port for the API server.
	Port int

	// CompanyNewsTTL is the freshness window for per-symbol news snapshots.
	CompanyNewsTTL time.Duration

	// SentimentTTL is the freshness window for the aggregate verdict.
	SentimentTTL time.Duration

	// FetchTimeout bounds a single source adapter fetch. A hung upstream
	// degrades that adapter's contribution to empty instead of stalling
	// the whole fan-in.
	FetchTimeout time.Duration

	// CronSchedule is the worker's refresh schedule.
	CronSchedule string

	// Sources lists the configured upstream news sources.
	Sources SourcesConfig
}

// SourcesConfig is the YAML source list (feeds plus warmup symbols).
type SourcesConfig struct {
	// Feeds are the syndication feed URLs for the RSS adapter.
	Feeds []string `yaml:"feeds"`

	// WarmupSymbols are ticker symbols whose company news the worker
	// refreshes proactively.
	WarmupSymbols []string `yaml:"warmup_symbols"`
}

// Load reads configuration from the environment and the source list file
// named by SOURCES_FILE (default "sources.yaml"). A missing source file is
// not an error; the RSS adapter simply has nothing to fetch.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:           pkgconfig.GetEnvInt("PORT", 8080),
		CompanyNewsTTL: pkgconfig.GetEnvDuration("COMPANY_NEWS_TTL", 2*time.Hour),
		SentimentTTL:   pkgconfig.GetEnvDuration("SENTIMENT_TTL", 2*time.Hour),
		FetchTimeout:   pkgconfig.GetEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		CronSchedule:   pkgconfig.GetEnvString("REFRESH_CRON", "0 */2 * * *"),
	}

	path := pkgconfig.GetEnvString("SOURCES_FILE", "sources.yaml")
	sources, err := loadSources(path)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	return cfg, nil
}

func loadSources(path string) (SourcesConfig, error) {
	var sources SourcesConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sources, nil
		}
		return sources, fmt.Errorf("read sources file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &sources); err != nil {
		return sources, fmt.Errorf("parse sources file %s: %w", path, err)
	}

	return sources, nil
}
