package emulator

import (
	"testing"

	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collection = "0123456789abcdef01234567"

func TestStore_InsertTwiceDuplicates(t *testing.T) {
	s := NewStore()
	records := []models.Record{{Title: "GoLang"}, {Title: "Python"}}

	first := s.InsertItems(collection, records)
	second := s.InsertItems(collection, records)

	require.Len(t, first, 2)
	require.Len(t, second, 2)

	ids := map[string]struct{}{}
	for _, r := range append(first, second...) {
		assert.Regexp(t, objectIDPattern, r.ID)
		ids[r.ID] = struct{}{}
	}
	assert.Len(t, ids, 4)
	assert.Len(t, s.Items(collection), 4)
	assert.Empty(t, s.Items("ffffffffffffffffffffffff"))
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.InsertItems(collection, []models.Record{{Title: "GoLang"}})

	items := s.Items(collection)
	items[0].Title = "changed"

	assert.Equal(t, "GoLang", s.Items(collection)[0].Title)
}

func TestStore_Blobs(t *testing.T) {
	s := NewStore()
	s.PutBlob(Blob{Key: "k1", FileName: "report.txt", Data: []byte("hi")})

	b, ok := s.Blob("k1")
	require.True(t, ok)
	assert.Equal(t, "report.txt", b.FileName)

	_, ok = s.Blob("missing")
	assert.False(t, ok)

	assert.Len(t, s.Blobs(), 1)
}

func TestNewObjectID(t *testing.T) {
	a, b := NewObjectID(), NewObjectID()
	assert.Len(t, a, 24)
	assert.NotEqual(t, a, b)
}
