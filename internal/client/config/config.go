package config

import "time"

// DefaultCollectionID is the placeholder ObjectId used when no target
// collection is configured.
const DefaultCollectionID = "000000000000000000000000"

// Config holds runtime settings shared by the inserter and the uploader.
//
// Fields:
//   - OrganizationDomain: base URL of the Troweb organization (scheme optional).
//   - APIKey: bearer credential; empty is allowed and left for the API to reject.
//   - TargetCollectionID: collection receiving items and blobs.
//   - RecordsFile: optional YAML/JSON dataset for the inserter.
//   - Files: local paths the uploader sends.
//   - UploadConcurrency: max parallel uploads, 0 means unlimited.
//   - RequestTimeout: per-request HTTP timeout, 0 disables it.
//   - LogLevel / LogFormat: slog level name and "text" or "json".
//   - EnvFile: dotenv file consulted after real environment variables.
type Config struct {
	OrganizationDomain string
	APIKey             string
	TargetCollectionID string
	RecordsFile        string
	Files              []string
	UploadConcurrency  int
	RequestTimeout     time.Duration
	LogLevel           string
	LogFormat          string
	EnvFile            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.OrganizationDomain = "example.troweb.app"
	c.APIKey = ""
	c.TargetCollectionID = DefaultCollectionID
	c.RecordsFile = ""
	c.Files = []string{"./files/report.txt", "./files/logo.png"}
	c.UploadConcurrency = 0
	c.RequestTimeout = 60 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.EnvFile = ".env"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and .env), JSON (if present) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
