package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h3x49r4m/peta-search/internal/core/domain"
)

func sampleArtifact() *domain.SearchArtifact {
	return &domain.SearchArtifact{
		Documents: []domain.SearchDocument{{
			ID:          "a",
			Title:       "Sample",
			URL:         "/a",
			ContentType: domain.ContentTypeArticle,
			Tags:        []string{"go"},
			Date:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			WordCount:   2,
			ReadingTime: 1,
		}},
		Terms:        map[string][]int{"sample": {0}},
		Tags:         map[string][]int{"go": {0}},
		ContentTypes: map[string][]int{"article": {0}},
		Metadata: domain.IndexMetadata{
			Version:        domain.ArtifactVersion,
			BuildTimestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			TotalDocuments: 1,
			TotalTerms:     1,
		},
	}
}

// TestSaveLoad_RoundTrip tests that an artifact survives the store
// unchanged and still validates.
func TestSaveLoad_RoundTrip(t *testing.T) {
	store := NewArtifactStore(filepath.Join(t.TempDir(), "index.json"))
	defer store.Close()

	original := sampleArtifact()
	require.NoError(t, store.Save(context.Background(), original))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, original, loaded)
	assert.NoError(t, loaded.Validate())
}

// TestSave_SchemaKeys tests the serialised top-level wire contract.
func TestSave_SchemaKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	store := NewArtifactStore(path)

	require.NoError(t, store.Save(context.Background(), sampleArtifact()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"documents", "terms", "tags", "content_types", "metadata"} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 5)

	var meta map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["metadata"], &meta))
	for _, key := range []string{"version", "build_timestamp", "total_documents", "total_terms", "avg_document_length"} {
		assert.Contains(t, meta, key)
	}
}

// TestSave_ReplacesPrevious tests whole-artifact replacement.
func TestSave_ReplacesPrevious(t *testing.T) {
	store := NewArtifactStore(filepath.Join(t.TempDir(), "index.json"))

	require.NoError(t, store.Save(context.Background(), sampleArtifact()))

	next := sampleArtifact()
	next.Documents[0].ID = "b"
	require.NoError(t, store.Save(context.Background(), next))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", loaded.Documents[0].ID)
}

// TestLoad_Malformed tests that a corrupt file reports an invalid
// artifact.
func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	_, err := NewArtifactStore(path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactInvalid)
}

// TestLoad_Missing tests the missing-file error path.
func TestLoad_Missing(t *testing.T) {
	_, err := NewArtifactStore(filepath.Join(t.TempDir(), "none.json")).
		Load(context.Background())
	assert.Error(t, err)
}
