package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory, when present, is loaded first; real environment
// variables win over it (godotenv.Load never overwrites existing vars).
//
// Recognized variables:
//
//	QOURIO_API_URL             base URL of the backend REST API
//	QOURIO_REQUEST_TIMEOUT     request timeout in seconds
//	QOURIO_CACHE_TTL           cache TTL in seconds
//	QOURIO_SESSION_DB          path to the session database
//	QOURIO_PAGE_SIZE           default page size for list views
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("QOURIO_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("QOURIO_SESSION_DB"); v != "" {
		cfg.SessionDBPath = v
	}
	if v, ok := envInt("QOURIO_REQUEST_TIMEOUT"); ok {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v, ok := envInt("QOURIO_CACHE_TTL"); ok {
		cfg.CacheTTL = time.Duration(v) * time.Second
	}
	if v, ok := envInt("QOURIO_PAGE_SIZE"); ok && v > 0 {
		cfg.PageSize = v
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
