package config

import "time"

// Config holds runtime settings for the Qourio CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including the /api/v1 prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - CacheTTL: how long query results stay fresh before a refetch.
//   - SessionDBPath: path of the local sqlite session database.
//   - PageSize: default page size for list views.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	SessionDBPath  string
	PageSize       int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5000/api/v1"
	c.RequestTimeout = 15 * time.Second
	c.CacheTTL = 60 * time.Second
	c.SessionDBPath = "qourio.db"
	c.PageSize = 10
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
