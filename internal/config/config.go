package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server  ServerConfig
	GitHub  GitHubConfig
	Storage StorageConfig
	Log     LogConfig
	Site    SiteConfig
	OTel    OTelConfig
}

type ServerConfig struct {
	Addr string `env:"GHFOLIO_SERVER_ADDR"`
}

type GitHubConfig struct {
	BaseURL string        `env:"GHFOLIO_GITHUB_BASE_URL"`
	Timeout time.Duration `env:"GHFOLIO_GITHUB_TIMEOUT"`
}

type StorageConfig struct {
	DataDir string `env:"GHFOLIO_STORAGE_DATA_DIR"`
}

type LogConfig struct {
	Level string `env:"GHFOLIO_LOG_LEVEL"`
}

// SiteConfig holds the public origin used for canonical and Open Graph URLs.
// When URL is empty, pages link relatively.
type SiteConfig struct {
	URL string `env:"GHFOLIO_SITE_URL"`
}

// OTelConfig enables trace export when Endpoint is set.
type OTelConfig struct {
	Endpoint string `env:"GHFOLIO_OTEL_ENDPOINT"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		GitHub: GitHubConfig{
			BaseURL: "https://api.github.com",
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file at
// $XDG_CONFIG_HOME/ghfolio/config.json, then applies GHFOLIO_* environment
// variables on top.
func Load() (Config, error) {
	return loadWith(newFileBackend(configFilePath()))
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.GitHub.Timeout <= 0 {
		return Config{}, fmt.Errorf("github.timeout must be positive, got %s", cfg.GitHub.Timeout)
	}

	return cfg, nil
}

// ServerURL returns the base URL clients use to reach the server.
func (c Config) ServerURL() string {
	return "http://" + c.Server.Addr
}
