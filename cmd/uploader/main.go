// Command uploader requests signed upload URLs for local files and posts
// each file to its URL. It exits non-zero if any file failed.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/trowebseed/internal/client/cli"
	"github.com/dmitrijs2005/trowebseed/internal/client/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Upload(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
