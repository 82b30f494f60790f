// Package config handles configuration for the Troweb emulator,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

const (
	SignerLocal = "local"
	SignerS3    = "s3"
)

// Config holds runtime settings for the emulator.
//
// Fields:
//   - ListenAddr: bind address for the HTTP endpoint.
//   - APIKey: bearer token every GraphQL request must carry.
//   - PublicURL: externally reachable base URL, used in local upload grants.
//   - Signer: "local" (uploads land in the emulator) or "s3" (presigned POST).
//   - GrantValidity: lifetime of issued upload grants.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	ListenAddr     string
	APIKey         string
	PublicURL      string
	Signer         string
	GrantValidity  time.Duration
	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	LogLevel       string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.APIKey = "local-api-key"
	c.PublicURL = "http://127.0.0.1:8080"
	c.Signer = SignerLocal
	c.GrantValidity = 15 * time.Minute
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "vault"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
