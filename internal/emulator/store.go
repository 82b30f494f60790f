package emulator

import (
	"encoding/hex"
	"sync"

	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/google/uuid"
)

// Blob is a file received through a local upload grant.
type Blob struct {
	Key         string
	FileName    string
	ContentType string
	Data        []byte
}

// Store keeps created items and uploaded blobs in memory. Items are never
// deduplicated: inserting the same record twice yields two entries.
type Store struct {
	mu    sync.RWMutex
	items map[string][]models.CreatedRecord
	blobs map[string]Blob
}

func NewStore() *Store {
	return &Store{
		items: make(map[string][]models.CreatedRecord),
		blobs: make(map[string]Blob),
	}
}

// InsertItems assigns a fresh id to every record and appends them to the
// collection. The returned slice is in input order.
func (s *Store) InsertItems(collectionID string, records []models.Record) []models.CreatedRecord {
	created := make([]models.CreatedRecord, 0, len(records))
	for _, r := range records {
		created = append(created, models.CreatedRecord{
			ID:          NewObjectID(),
			Title:       r.Title,
			Website:     r.Website,
			Designers:   r.Designers,
			Description: r.Description,
		})
	}

	s.mu.Lock()
	s.items[collectionID] = append(s.items[collectionID], created...)
	s.mu.Unlock()

	return created
}

// Items returns a copy of the collection contents.
func (s *Store) Items(collectionID string) []models.CreatedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CreatedRecord, len(s.items[collectionID]))
	copy(out, s.items[collectionID])
	return out
}

func (s *Store) PutBlob(b Blob) {
	s.mu.Lock()
	s.blobs[b.Key] = b
	s.mu.Unlock()
}

func (s *Store) Blob(key string) (Blob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	return b, ok
}

// Blobs returns every stored blob keyed by storage key.
func (s *Store) Blobs() map[string]Blob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Blob, len(s.blobs))
	for k, v := range s.blobs {
		out[k] = v
	}
	return out
}

// NewObjectID returns a random 24-character hex id shaped like the ids
// Troweb assigns.
func NewObjectID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:12])
}
