package client

import (
	"context"

	"github.com/dmitrijs2005/trowebseed/internal/client/models"
)

type Client interface {
	CreateRecords(ctx context.Context, records []models.Record, collectionID string) ([]models.CreatedRecord, error)
	GetUploadGrants(ctx context.Context, files []models.FileDescriptor, collectionID string) ([]models.SignedUploadGrant, error)
}
