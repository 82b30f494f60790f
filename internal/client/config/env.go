package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// lookupFunc resolves a variable name; ok is false when it is unset.
type lookupFunc func(key string) (string, bool)

// dotenvLookup prefers the real environment and falls back to values read
// from the dotenv file. The file is read, never loaded into the process
// environment. A missing file is not an error.
func dotenvLookup(path string) lookupFunc {
	file := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			panic(err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
}

// parseEnv overlays Config with environment variables (see package doc).
// Panics on malformed numeric or duration values.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("TROWEB_ENV_FILE"); ok {
		cfg.EnvFile = v
	}
	applyEnv(cfg, dotenvLookup(cfg.EnvFile))
}

func applyEnv(cfg *Config, lookup lookupFunc) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("ORGANIZATION_DOMAIN", &cfg.OrganizationDomain)
	// An explicitly empty key is kept: the request still goes out.
	if v, ok := lookup("TROWEB_API_KEY"); ok {
		cfg.APIKey = v
	}
	str("TARGET_COLLECTION_ID", &cfg.TargetCollectionID)
	str("TROWEB_RECORDS_FILE", &cfg.RecordsFile)
	str("TROWEB_LOG_LEVEL", &cfg.LogLevel)
	str("TROWEB_LOG_FORMAT", &cfg.LogFormat)

	if v, ok := lookup("TROWEB_UPLOAD_CONCURRENCY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.UploadConcurrency = n
	}

	if v, ok := lookup("TROWEB_REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
