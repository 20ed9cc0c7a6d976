package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/spanfilter/internal/value"
)

// createTestStore creates a new store in a temporary directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustDoc decodes a JSON document or fails the test.
func mustDoc(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := value.DecodeJSON([]byte(src), value.DecodeOptions{})
	if err != nil {
		t.Fatalf("DecodeJSON(%s) failed: %v", src, err)
	}
	return v
}

// putDocs stores JSON documents keyed by id.
func putDocs(t *testing.T, s *Store, docs map[string]string) {
	t.Helper()
	for id, src := range docs {
		if err := s.Put(context.Background(), id, mustDoc(t, src)); err != nil {
			t.Fatalf("Put(%q) failed: %v", id, err)
		}
	}
}
