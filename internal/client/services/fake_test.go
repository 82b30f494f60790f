package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/trowebseed/internal/client/client"
	"github.com/dmitrijs2005/trowebseed/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	client.Client

	mu sync.Mutex

	CreateCalls   [][]models.Record
	CreateErr     error
	nextID        int
	GrantCalls    [][]models.FileDescriptor
	GrantsRet     []models.SignedUploadGrant
	GrantsErr     error
	CollectionIDs []string
}

func (f *fakeClient) CreateRecords(ctx context.Context, records []models.Record, collectionID string) ([]models.CreatedRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls = append(f.CreateCalls, records)
	f.CollectionIDs = append(f.CollectionIDs, collectionID)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	out := make([]models.CreatedRecord, 0, len(records))
	for _, r := range records {
		f.nextID++
		out = append(out, models.CreatedRecord{
			ID:          fmt.Sprintf("%024x", f.nextID),
			Title:       r.Title,
			Website:     r.Website,
			Designers:   r.Designers,
			Description: r.Description,
		})
	}
	return out, nil
}

func (f *fakeClient) GetUploadGrants(ctx context.Context, files []models.FileDescriptor, collectionID string) ([]models.SignedUploadGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.GrantCalls = append(f.GrantCalls, files)
	f.CollectionIDs = append(f.CollectionIDs, collectionID)
	return f.GrantsRet, f.GrantsErr
}

// storedUpload is what the fake storage backend received for one POST.
type storedUpload struct {
	Path     string
	Fields   map[string]string
	FileName string
	Content  []byte
}

type fakeStorage struct {
	mu      sync.Mutex
	uploads []storedUpload
	// status per request path; 204 when absent
	status map[string]int
}

func (s *fakeStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	up := storedUpload{Path: r.URL.Path, Fields: map[string]string{}}
	for k, v := range r.MultipartForm.Value {
		up.Fields[k] = v[0]
	}
	f, h, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer f.Close()
	up.FileName = h.Filename
	up.Content, _ = io.ReadAll(f)

	s.mu.Lock()
	s.uploads = append(s.uploads, up)
	code, ok := s.status[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		code = http.StatusNoContent
	}
	w.WriteHeader(code)
}

func (s *fakeStorage) byPath() map[string]storedUpload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]storedUpload, len(s.uploads))
	for _, u := range s.uploads {
		out[u.Path] = u
	}
	return out
}

func newStorage(t *testing.T, status map[string]int) (*fakeStorage, *httptest.Server) {
	t.Helper()
	fs := &fakeStorage{status: status}
	ts := httptest.NewServer(fs)
	t.Cleanup(ts.Close)
	return fs, ts
}
