// Package config loads runtime configuration for the Qourio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env overlay (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      request timeout (seconds)
//	-l int      cache TTL (seconds)
//	-d string   path to the local session database
//	-p int      default page size for list views
//
// # JSON schema
//
// Durations are given as integer seconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:5000/api/v1",
//	  "request_timeout": 15,
//	  "cache_ttl": 60,
//	  "session_db_path": "qourio.db",
//	  "page_size": 10
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for the CLI
//   - func LoadConfig() *Config       — defaults, then env, JSON, flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
