// Command inserter creates the configured programming-language records in a
// Troweb collection with a single GraphQL mutation.
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

	if err := app.Insert(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
