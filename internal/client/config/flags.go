package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/trowebseed/internal/flagx"
)

// parseFlags populates Config fields from command-line flags (see package
// doc for the list). os.Args is filtered through flagx.FilterArgs first so
// -c/-config and unknown flags do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-t", "-r", "-f", "-n", "-w", "-l", "-j"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.OrganizationDomain, "d", cfg.OrganizationDomain, "organization domain")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key")
	fs.StringVar(&cfg.TargetCollectionID, "t", cfg.TargetCollectionID, "target collection id")
	fs.StringVar(&cfg.RecordsFile, "r", cfg.RecordsFile, "records file (yaml or json)")
	fs.Var(&flagx.StringList{Values: &cfg.Files}, "f", "file to upload (repeatable)")
	fs.IntVar(&cfg.UploadConcurrency, "n", cfg.UploadConcurrency, "max parallel uploads (0 = unlimited)")
	requestTimeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "j", cfg.LogFormat, "log format (text or json)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only an explicit -w replaces the timeout; env and JSON accept
	// sub-second durations that a whole-seconds default would truncate.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "w" {
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
