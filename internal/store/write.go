package store

import (
	"context"
	"fmt"

	"github.com/roach88/spanfilter/internal/value"
)

// Put stores doc under id, replacing any existing document with that id.
// The document is serialized to canonical JSON.
func (s *Store) Put(ctx context.Context, id string, doc value.Value) error {
	if id == "" {
		return fmt.Errorf("put document: empty id")
	}

	data, err := value.MarshalCanonical(doc)
	if err != nil {
		return fmt.Errorf("put document %q: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, doc, content_hash)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			doc = excluded.doc,
			content_hash = excluded.content_hash
	`, id, string(data), contentHash(data))
	if err != nil {
		return fmt.Errorf("put document %q: %w", id, err)
	}

	return nil
}

// Insert stores doc under a fresh id and returns it.
func (s *Store) Insert(ctx context.Context, doc value.Value) (string, error) {
	id := NewID()
	if err := s.Put(ctx, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes the document with id. Deleting a missing id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete document %q: %w", id, err)
	}
	return nil
}
