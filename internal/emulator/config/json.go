package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/trowebseed/internal/flagx"
)

// JsonConfig is the on-disk shape of the emulator configuration. Empty
// strings leave the current value in place; grant_validity is a Go
// duration string such as "15m".
type JsonConfig struct {
	ListenAddr     string `json:"listen_addr"`
	APIKey         string `json:"api_key"`
	PublicURL      string `json:"public_url"`
	Signer         string `json:"signer"`
	GrantValidity  string `json:"grant_validity"`
	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	LogLevel       string `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into cfg. If neither flag is set, no file is loaded.
// The function panics if the file cannot be read or parsed.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	c.apply(cfg)
}

func (c *JsonConfig) apply(cfg *Config) {
	set := func(src string, dst *string) {
		if src != "" {
			*dst = src
		}
	}

	set(c.ListenAddr, &cfg.ListenAddr)
	set(c.APIKey, &cfg.APIKey)
	set(c.PublicURL, &cfg.PublicURL)
	set(c.Signer, &cfg.Signer)
	set(c.S3RootUser, &cfg.S3RootUser)
	set(c.S3RootPassword, &cfg.S3RootPassword)
	set(c.S3Bucket, &cfg.S3Bucket)
	set(c.S3Region, &cfg.S3Region)
	set(c.S3BaseEndpoint, &cfg.S3BaseEndpoint)
	set(c.LogLevel, &cfg.LogLevel)

	if c.GrantValidity != "" {
		d, err := time.ParseDuration(c.GrantValidity)
		if err != nil {
			panic(err)
		}
		cfg.GrantValidity = d
	}
}
