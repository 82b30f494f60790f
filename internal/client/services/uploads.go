package services

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/trowebseed/internal/client/client"
	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/dmitrijs2005/trowebseed/internal/common"
	"github.com/dmitrijs2005/trowebseed/internal/filex"
	"github.com/dmitrijs2005/trowebseed/internal/logging"
	"github.com/dmitrijs2005/trowebseed/internal/netx"
)

type UploadService interface {
	RequestGrants(ctx context.Context, paths []string, collectionID string) ([]models.SignedUploadGrant, map[string]string, error)
	UploadFiles(ctx context.Context, grants []models.SignedUploadGrant, pathsByFileName map[string]string) []models.UploadResult
	Run(ctx context.Context, paths []string, collectionID string) ([]models.UploadResult, error)
}

type uploadService struct {
	client      client.Client
	httpClient  *http.Client
	concurrency int
	logger      logging.Logger
}

// NewUploadService wires the two upload phases. httpClient is used for the
// storage POSTs (nil means http.DefaultClient); concurrency caps parallel
// uploads, 0 means one goroutine per grant.
func NewUploadService(client client.Client, httpClient *http.Client, concurrency int, logger logging.Logger) UploadService {
	return &uploadService{client: client, httpClient: httpClient, concurrency: concurrency, logger: logger}
}

// RequestGrants describes the local files and asks for one grant each.
// It returns the grants and the fileName → path mapping for UploadFiles.
func (s *uploadService) RequestGrants(ctx context.Context, paths []string, collectionID string) ([]models.SignedUploadGrant, map[string]string, error) {
	files, byName, err := filex.DescribeAll(paths)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range files {
		s.logger.Debug(ctx, "file described", "file", f.FileName, "size", f.FileSize, "mime_type", f.MimeType, "state", models.StateDescribed)
	}

	s.logger.Info(ctx, "requesting signed urls", "count", len(files), "collection_id", collectionID, "state", models.StateGrantRequested)

	grants, err := s.client.GetUploadGrants(ctx, files, collectionID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info(ctx, "signed urls received", "count", len(grants), "state", models.StateGrantReceived)
	for _, g := range grants {
		s.logger.Debug(ctx, "grant", "file", g.FileName, "grant_id", g.ID, "blob_type", g.BlobType, "url", g.URL)
	}
	return grants, byName, nil
}

// UploadFiles posts every grant's file concurrently and waits for all of
// them. Each result carries its own outcome; one failure never stops the
// others. Results follow the order of grants.
func (s *uploadService) UploadFiles(ctx context.Context, grants []models.SignedUploadGrant, pathsByFileName map[string]string) []models.UploadResult {
	results := make([]models.UploadResult, len(grants))

	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for i, grant := range grants {
		i, grant := i, grant
		g.Go(func() error {
			results[i] = s.uploadOne(ctx, grant, pathsByFileName)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *uploadService) uploadOne(ctx context.Context, grant models.SignedUploadGrant, paths map[string]string) models.UploadResult {
	res := models.UploadResult{FileName: grant.FileName, State: models.StateGrantReceived}
	log := s.logger.With("file", grant.FileName, "grant_id", grant.ID)

	fail := func(err error) models.UploadResult {
		res.State = models.StateFailed
		res.Err = err
		log.Warn(ctx, "upload failed", "status", res.StatusCode, "error", err)
		return res
	}

	path, ok := paths[grant.FileName]
	if !ok {
		return fail(fmt.Errorf("%w: no local path for %q", common.ErrLocalIO, grant.FileName))
	}

	f, err := os.Open(path)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", common.ErrLocalIO, err))
	}
	defer f.Close()

	res.State = models.StateUploading
	log.Debug(ctx, "uploading", "url", grant.URL, "state", res.State)

	resp, err := netx.PostMultipart(ctx, s.httpClient, grant.URL, grant.FormFields, grant.FileName, f)
	if resp != nil {
		res.StatusCode = resp.StatusCode
		res.Body = resp.Body
	}
	if err != nil {
		return fail(err)
	}

	res.State = models.StateUploaded
	log.Info(ctx, "file uploaded", "status", res.StatusCode, "state", res.State)
	return res
}

// Run performs both phases. Phase 1 failures abort; phase 2 failures are
// reported per file and summarised as common.ErrUploadFailed.
func (s *uploadService) Run(ctx context.Context, paths []string, collectionID string) ([]models.UploadResult, error) {
	grants, byName, err := s.RequestGrants(ctx, paths, collectionID)
	if err != nil {
		return nil, err
	}

	results := s.UploadFiles(ctx, grants, byName)

	failed := 0
	for _, r := range results {
		if !r.Success() {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d files", common.ErrUploadFailed, failed, len(results))
	}
	return results, nil
}
