package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/trowebseed/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so missing keys leave earlier
// layers untouched.
type JsonConfig struct {
	OrganizationDomain *string  `json:"organization_domain"`
	APIKey             *string  `json:"api_key"`
	TargetCollectionID *string  `json:"target_collection_id"`
	RecordsFile        *string  `json:"records_file"`
	Files              []string `json:"files"`
	UploadConcurrency  *int     `json:"upload_concurrency"`
	RequestTimeout     *string  `json:"request_timeout"`
	LogLevel           *string  `json:"log_level"`
	LogFormat          *string  `json:"log_format"`
}

// parseJson overlays Config with values loaded from the JSON file given via
// -c or -config. Without either flag it does nothing.
// Panics on read, unmarshal or duration errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setStr := func(src *string, dst *string) {
		if src != nil {
			*dst = *src
		}
	}

	setStr(jc.OrganizationDomain, &cfg.OrganizationDomain)
	setStr(jc.APIKey, &cfg.APIKey)
	setStr(jc.TargetCollectionID, &cfg.TargetCollectionID)
	setStr(jc.RecordsFile, &cfg.RecordsFile)
	setStr(jc.LogLevel, &cfg.LogLevel)
	setStr(jc.LogFormat, &cfg.LogFormat)

	if len(jc.Files) > 0 {
		cfg.Files = jc.Files
	}
	if jc.UploadConcurrency != nil {
		cfg.UploadConcurrency = *jc.UploadConcurrency
	}
	if jc.RequestTimeout != nil {
		d, err := time.ParseDuration(*jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
