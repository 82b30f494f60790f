package services

import (
	"context"

	"github.com/dmitrijs2005/trowebseed/internal/client/client"
	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/dmitrijs2005/trowebseed/internal/logging"
)

type ItemService interface {
	Insert(ctx context.Context, records []models.Record, collectionID string) ([]models.CreatedRecord, error)
}

type itemService struct {
	client client.Client
	logger logging.Logger
}

func NewItemService(client client.Client, logger logging.Logger) ItemService {
	return &itemService{client: client, logger: logger}
}

// Insert creates every record with one mutation. It is not idempotent:
// running it twice creates duplicates. Errors are returned unchanged.
func (s *itemService) Insert(ctx context.Context, records []models.Record, collectionID string) ([]models.CreatedRecord, error) {
	s.logger.Info(ctx, "creating programming languages", "count", len(records), "collection_id", collectionID)

	created, err := s.client.CreateRecords(ctx, records, collectionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "programming languages created", "count", len(created))
	return created, nil
}
