package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/machinebox/graphql"

	"github.com/dmitrijs2005/trowebseed/internal/client/config"
	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/dmitrijs2005/trowebseed/internal/common"
	"github.com/dmitrijs2005/trowebseed/internal/logging"
)

type GraphQLClient struct {
	endpointURL string
	gql         *graphql.Client
	logger      logging.Logger
}

// EndpointURL builds the GraphQL endpoint for an organization domain,
// defaulting to https when no scheme is given.
func EndpointURL(domain string) string {
	d := strings.TrimRight(strings.TrimSpace(domain), "/")
	if !strings.HasPrefix(d, "http://") && !strings.HasPrefix(d, "https://") {
		d = "https://" + d
	}
	return d + common.GraphQLPath
}

func NewGraphQLClient(cfg *config.Config, logger logging.Logger) *GraphQLClient {
	endpoint := EndpointURL(cfg.OrganizationDomain)

	hc := &http.Client{
		Timeout:   cfg.RequestTimeout,
		Transport: &authTransport{apiKey: cfg.APIKey, base: http.DefaultTransport},
	}

	gql := graphql.NewClient(endpoint, graphql.WithHTTPClient(hc))
	gql.Log = func(s string) {
		logger.Debug(context.Background(), s, "endpoint", endpoint)
	}

	return &GraphQLClient{endpointURL: endpoint, gql: gql, logger: logger}
}

// Endpoint returns the URL requests are sent to.
func (c *GraphQLClient) Endpoint() string {
	return c.endpointURL
}

// CreateRecords sends the whole batch in a single mutation. An empty batch
// is still sent. The result follows the order the API echoes.
func (c *GraphQLClient) CreateRecords(ctx context.Context, records []models.Record, collectionID string) ([]models.CreatedRecord, error) {
	if records == nil {
		records = []models.Record{}
	}

	req := graphql.NewRequest(createRecordsMutation)
	req.Var("programmingLanguages", records)
	req.Var("collectionId", collectionID)

	var resp createRecordsResponse
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, c.mapError(err)
	}

	if resp.CreateProgrammingLanguages == nil {
		return nil, fmt.Errorf("%w: response has no createProgrammingLanguages", common.ErrRequestFailed)
	}

	created := *resp.CreateProgrammingLanguages
	if len(created) != len(records) {
		return nil, fmt.Errorf("%w: sent %d records, %d created", common.ErrRequestFailed, len(records), len(created))
	}
	for i, r := range created {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: created record %d has no _id", common.ErrRequestFailed, i)
		}
	}

	return created, nil
}

// GetUploadGrants requests one signed upload grant per file in a single
// query. Either every file gets exactly one grant or an error is returned.
func (c *GraphQLClient) GetUploadGrants(ctx context.Context, files []models.FileDescriptor, collectionID string) ([]models.SignedUploadGrant, error) {
	if len(files) == 0 {
		return nil, common.ErrNoFiles
	}
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if _, ok := seen[f.FileName]; ok {
			return nil, fmt.Errorf("%w: %q", common.ErrDuplicateFileName, f.FileName)
		}
		seen[f.FileName] = struct{}{}
	}

	req := graphql.NewRequest(getUploadGrantsQuery)
	req.Var("blobsInfo", files)
	req.Var("collectionId", collectionID)

	var resp uploadGrantsResponse
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, c.mapError(err)
	}

	if resp.GetBlobUploadSignedURL == nil {
		return nil, fmt.Errorf("%w: response has no getBlobUploadSignedUrl", common.ErrRequestFailed)
	}

	return buildGrants(files, *resp.GetBlobUploadSignedURL)
}

// buildGrants checks the bijection between requested files and returned
// grants and decodes each grant's form fields.
func buildGrants(files []models.FileDescriptor, dtos []grantDTO) ([]models.SignedUploadGrant, error) {
	if len(dtos) != len(files) {
		return nil, fmt.Errorf("%w: requested %d grants, got %d", common.ErrRequestFailed, len(files), len(dtos))
	}

	granted := make(map[string]bool, len(files))
	for _, f := range files {
		granted[f.FileName] = false
	}

	grants := make([]models.SignedUploadGrant, 0, len(dtos))
	for _, d := range dtos {
		done, ok := granted[d.FileName]
		if !ok {
			return nil, fmt.Errorf("%w: grant for unrequested file %q", common.ErrRequestFailed, d.FileName)
		}
		if done {
			return nil, fmt.Errorf("%w: more than one grant for %q", common.ErrRequestFailed, d.FileName)
		}
		granted[d.FileName] = true

		if d.URL == "" {
			return nil, fmt.Errorf("%w: grant for %q has no url", common.ErrRequestFailed, d.FileName)
		}

		fields, err := DecodeFormFields(d.FormFields)
		if err != nil {
			return nil, fmt.Errorf("%w: formFields of %q: %w", common.ErrRequestFailed, d.FileName, err)
		}

		grants = append(grants, models.SignedUploadGrant{
			ID:         d.ID,
			FileName:   d.FileName,
			BlobType:   d.BlobType,
			URL:        d.URL,
			FormFields: fields,
		})
	}

	return grants, nil
}

// DecodeFormFields accepts either a JSON object or a string holding one.
// Non-string values are kept in their JSON form.
func DecodeFormFields(raw json.RawMessage) (map[string]string, error) {
	fields := map[string]string{}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return fields, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return fields, nil
		}
		raw = json.RawMessage(s)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	for k, v := range m {
		switch x := v.(type) {
		case string:
			fields[k] = x
		case nil:
			fields[k] = ""
		default:
			b, err := json.Marshal(x)
			if err != nil {
				return nil, err
			}
			fields[k] = string(b)
		}
	}

	return fields, nil
}

func (c *GraphQLClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrConfiguration) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrRequestFailed, err)
}
