package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/trowebseed/internal/client/client"
	"github.com/dmitrijs2005/trowebseed/internal/client/config"
	"github.com/dmitrijs2005/trowebseed/internal/client/services"
	"github.com/dmitrijs2005/trowebseed/internal/dataset"
	"github.com/dmitrijs2005/trowebseed/internal/logging"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	itemService   services.ItemService
	uploadService services.UploadService
	out           io.Writer
}

// NewApp builds the app from cfg. Logs go to stderr, summaries to stdout.
// Every log line carries a run_id unique to this process run.
func NewApp(cfg *config.Config) *App {
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat).With("run_id", uuid.NewString())

	apiClient := client.NewGraphQLClient(cfg, logger)
	storageClient := &http.Client{Timeout: cfg.RequestTimeout}

	return &App{
		config:        cfg,
		logger:        logger,
		itemService:   services.NewItemService(apiClient, logger),
		uploadService: services.NewUploadService(apiClient, storageClient, cfg.UploadConcurrency, logger),
		out:           os.Stdout,
	}
}

// Insert creates the configured records in the target collection.
func (a *App) Insert(ctx context.Context) error {
	records, err := dataset.Resolve(a.config.RecordsFile)
	if err != nil {
		a.logger.Error(ctx, "cannot load records", "error", err)
		return err
	}

	a.logger.Info(ctx, "programming languages to create", "records", records)

	created, err := a.itemService.Insert(ctx, records, a.config.TargetCollectionID)
	if err != nil {
		a.logger.Error(ctx, "insert failed", "error", err)
		return err
	}

	return a.writeJSON(created)
}

// uploadSummary is the per-file line of the upload report.
type uploadSummary struct {
	FileName   string `json:"fileName"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode,omitempty"`
	Body       string `json:"body,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Upload sends the configured files through the two-phase signed upload
// and reports every file's outcome, failed or not.
func (a *App) Upload(ctx context.Context) error {
	results, err := a.uploadService.Run(ctx, a.config.Files, a.config.TargetCollectionID)
	if results == nil && err != nil {
		a.logger.Error(ctx, "upload aborted", "error", err)
		return err
	}

	summary := make([]uploadSummary, 0, len(results))
	for _, r := range results {
		s := uploadSummary{FileName: r.FileName, Success: r.Success(), StatusCode: r.StatusCode, Body: r.Body}
		if r.Err != nil {
			s.Error = r.Err.Error()
		}
		summary = append(summary, s)
	}

	a.logger.Info(ctx, "upload results", "results", summary)

	if werr := a.writeJSON(summary); werr != nil {
		return werr
	}
	if err != nil {
		a.logger.Error(ctx, "some uploads failed", "error", err)
	}
	return err
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
