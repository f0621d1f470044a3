package config

import (
	"fmt"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kDuration
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.addr", typ: kString, env: "GHFOLIO_SERVER_ADDR",
		apply:   func(cfg *Config, v any) { cfg.Server.Addr = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.Addr },
	},
	{
		key: "github.base_url", typ: kString, env: "GHFOLIO_GITHUB_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.GitHub.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.GitHub.BaseURL },
	},
	{
		key: "github.timeout", typ: kDuration, env: "GHFOLIO_GITHUB_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.GitHub.Timeout = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.GitHub.Timeout },
	},
	{
		key: "storage.data_dir", typ: kString, env: "GHFOLIO_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "log.level", typ: kString, env: "GHFOLIO_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "site.url", typ: kString, env: "GHFOLIO_SITE_URL",
		apply:   func(cfg *Config, v any) { cfg.Site.URL = v.(string) },
		extract: func(cfg Config) any { return cfg.Site.URL },
	},
	{
		key: "otel.endpoint", typ: kString, env: "GHFOLIO_OTEL_ENDPOINT",
		apply:   func(cfg *Config, v any) { cfg.OTel.Endpoint = v.(string) },
		extract: func(cfg Config) any { return cfg.OTel.Endpoint },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		v, ok, err := b.GetString(s.key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.key, err)
		}
		if !ok {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, v)
		case kDuration:
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid duration for %s: %w", s.key, err)
			}
			s.apply(cfg, d)
		}
	}
	return nil
}
