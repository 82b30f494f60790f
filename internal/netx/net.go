// Package netx performs the raw HTTP side of signed uploads.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/dmitrijs2005/trowebseed/internal/common"
)

// FileField is the multipart field carrying the payload.
const FileField = "file"

const maxResponseBody = 1 << 20

// Response is what the storage backend answered to a POST.
type Response struct {
	StatusCode int
	Body       string
}

// NewMultipartBody encodes fields (sorted by name) followed by the file
// part. Storage backends evaluating a POST policy expect the file last.
func NewMultipartBody(fields map[string]string, fileName string, content io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile(FileField, fileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("%w: %w", common.ErrLocalIO, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// PostMultipart POSTs the file with its form fields to url. Any non-2xx
// status is returned as ErrUploadFailed together with the response.
func PostMultipart(ctx context.Context, hc *http.Client, url string, fields map[string]string, fileName string, content io.Reader) (*Response, error) {
	body, contentType, err := NewMultipartBody(fields, fileName, content)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	out := &Response{StatusCode: resp.StatusCode, Body: string(b)}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, fmt.Errorf("%w: %s; body: %s", common.ErrUploadFailed, resp.Status, out.Body)
	}
	return out, nil
}
