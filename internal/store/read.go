package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/querysql"
	"github.com/roach88/spanfilter/internal/value"
)

// ErrNotFound is returned by Get when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// Document is a stored document and its id.
type Document struct {
	ID          string
	Doc         value.Value
	ContentHash string
}

// Get returns the document with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (value.Value, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM documents WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", id, err)
	}

	doc, err := value.DecodeJSON([]byte(data), value.DecodeOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", id, err)
	}
	return doc, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// Find returns the ids of documents satisfying expr, ordered by id.
// A nil expression matches every document.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) Find(ctx context.Context, expr filter.Expression) ([]string, error) {
	where, params, err := querysql.NewSQLCompiler().Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM documents WHERE "+where+" ORDER BY id ASC COLLATE BINARY",
		params...)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("find: scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find: iterate: %w", err)
	}
	return ids, nil
}

// FindDocuments is Find returning the decoded documents.
func (s *Store) FindDocuments(ctx context.Context, expr filter.Expression) ([]Document, error) {
	where, params, err := querysql.NewSQLCompiler().Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, doc, content_hash FROM documents WHERE "+where+" ORDER BY id ASC COLLATE BINARY",
		params...)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find documents: iterate: %w", err)
	}
	return docs, nil
}

// All returns every stored document ordered by id.
func (s *Store) All(ctx context.Context) ([]Document, error) {
	return s.FindDocuments(ctx, nil)
}

func scanDocument(rows *sql.Rows) (Document, error) {
	var (
		d    Document
		data string
	)
	if err := rows.Scan(&d.ID, &data, &d.ContentHash); err != nil {
		return Document{}, fmt.Errorf("scan document: %w", err)
	}
	doc, err := value.DecodeJSON([]byte(data), value.DecodeOptions{})
	if err != nil {
		return Document{}, fmt.Errorf("decode document %q: %w", d.ID, err)
	}
	d.Doc = doc
	return d, nil
}

// Duplicates groups the ids of documents with identical canonical content.
// Only groups with more than one id are returned, each sorted by id and the
// groups ordered by their first id.
func (s *Store) Duplicates(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content_hash, id FROM documents
		WHERE content_hash IN (
			SELECT content_hash FROM documents
			GROUP BY content_hash HAVING COUNT(*) > 1
		)
		ORDER BY content_hash, id ASC COLLATE BINARY`)
	if err != nil {
		return nil, fmt.Errorf("duplicates: %w", err)
	}
	defer rows.Close()

	var (
		groups [][]string
		last   string
	)
	for rows.Next() {
		var hash, id string
		if err := rows.Scan(&hash, &id); err != nil {
			return nil, fmt.Errorf("duplicates: scan: %w", err)
		}
		if len(groups) == 0 || hash != last {
			groups = append(groups, nil)
			last = hash
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("duplicates: iterate: %w", err)
	}

	slices.SortFunc(groups, func(a, b []string) int { return strings.Compare(a[0], b[0]) })
	return groups, nil
}
