// Package config loads runtime configuration for the Troweb loaders.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, falling back to a dotenv file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Environment
//
//	ORGANIZATION_DOMAIN         base URL of the organization
//	TROWEB_API_KEY              bearer credential
//	TARGET_COLLECTION_ID        destination collection
//	TROWEB_RECORDS_FILE         inserter dataset (YAML or JSON)
//	TROWEB_UPLOAD_CONCURRENCY   max parallel uploads (0 = unlimited)
//	TROWEB_REQUEST_TIMEOUT      per-request timeout, e.g. "30s"
//	TROWEB_LOG_LEVEL            debug|info|warn|error
//	TROWEB_LOG_FORMAT           text|json
//	TROWEB_ENV_FILE             dotenv file path (default ".env")
//
// Supported flags
//
//	-d string   organization domain
//	-k string   API key
//	-t string   target collection id
//	-r string   records file
//	-f string   file to upload (repeatable)
//	-n int      upload concurrency
//	-w int      request timeout (seconds)
//	-l string   log level
//	-j string   log format
//
// # JSON schema
//
//	{
//	  "organization_domain": "https://example.troweb.app",
//	  "api_key": "…",
//	  "target_collection_id": "000000000000000000000000",
//	  "records_file": "languages.yaml",
//	  "files": ["./files/report.txt", "./files/logo.png"],
//	  "upload_concurrency": 4,
//	  "request_timeout": "30s",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
//
// Missing keys leave the earlier value untouched. The API key is never
// validated here; an empty key surfaces as an authorization error from the
// remote service.
package config
