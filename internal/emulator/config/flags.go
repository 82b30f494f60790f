package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/trowebseed/internal/flagx"
)

// parseFlags populates emulator Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-k string   API key expected in the Authorization header
//	-o string   public base URL for local upload grants
//	-s string   signer: "local" or "s3"
//	-v int      grant validity, minutes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l string   log level
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-o", "-s", "-v", "-u", "-p", "-b", "-g", "-e", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "API key")
	fs.StringVar(&config.PublicURL, "o", config.PublicURL, "public base URL")
	fs.StringVar(&config.Signer, "s", config.Signer, "upload signer (local or s3)")

	grantValidity := fs.Int("v", int(config.GrantValidity.Minutes()), "grant validity (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only an explicit -v replaces the validity, so JSON values such as
	// "30s" survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "v" {
			config.GrantValidity = time.Duration(*grantValidity) * time.Minute
		}
	})
}
