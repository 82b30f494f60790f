// Package emulator is a local stand-in for the Troweb GraphQL API. It
// understands the item-creation mutation and the upload-grant query, keeps
// everything in memory and issues upload grants either for itself or as
// S3 presigned POST policies.
package emulator

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/trowebseed/internal/emulator/config"
	"github.com/dmitrijs2005/trowebseed/internal/logging"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	store  *Store
	router *gin.Engine
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, "json")

	store := NewStore()

	var (
		signer Signer
		local  *LocalSigner
	)

	switch c.Signer {
	case config.SignerLocal:
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("signer secret: %w", err)
		}
		local = NewLocalSigner(c.PublicURL, secret, c.GrantValidity)
		signer = local
	case config.SignerS3:
		s3Signer, err := NewS3Signer(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("s3 signer init error: %w", err)
		}
		signer = s3Signer
	default:
		return nil, fmt.Errorf("unknown signer %q", c.Signer)
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(NewHandler(store, signer, logger), c.APIKey, local, logger)

	return &App{config: c, logger: logger, store: store, router: router}, nil
}

// Store exposes the in-memory state, mostly for tests.
func (app *App) Store() *Store {
	return app.store
}

func (app *App) Handler() http.Handler {
	return app.router
}

// Run serves HTTP until ctx is cancelled, then shuts the server down.
func (app *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.config.ListenAddr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	app.logger.Info(ctx, "Starting emulator...", "addr", app.config.ListenAddr, "signer", app.config.Signer)

	var (
		wg       sync.WaitGroup
		serveErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
	case <-done:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	wg.Wait()

	app.logger.Info(ctx, "Emulator stopped")
	return serveErr
}
