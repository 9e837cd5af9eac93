package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/solatis/docsieve/internal/document"
	"github.com/solatis/docsieve/internal/types"
)

/*
 * Persistent document store.
 *
 * Documents are stored as opaque JSON bodies keyed by UUIDv7 doc_id and
 * grouped into named collections. The store deliberately knows nothing about
 * filters: find-style selection is a client-side linear scan over loaded
 * documents, performed by the collection package. No secondary indexes over
 * document fields exist.
 */

// ErrDocumentNotFound indicates a doc_id with no stored document.
var ErrDocumentNotFound = errors.New("document not found")

// Store persists schema-less documents in a documents table.
type Store struct {
	db      *sqlx.DB
	queries *Queries
}

// NewStore creates a store backed by an open database connection.
func NewStore(database *sqlx.DB) (*Store, error) {
	queries, err := LoadQueries(database)
	if err != nil {
		return nil, err
	}
	return &Store{db: database, queries: queries}, nil
}

// docRow mirrors one row of the documents table.
type docRow struct {
	DocID      string `db:"doc_id"`
	Collection string `db:"collection"`
	Body       []byte `db:"body"`
	// []byte scans cleanly from both sqlite TEXT and postgres TIMESTAMP.
	CreatedAt []byte `db:"created_at"`
}

// Insert persists doc under the named collection and returns its ID.
// A document without an id field is assigned a fresh UUIDv7; the assigned ID
// is written back into the stored body so loads round-trip.
func (s *Store) Insert(collection string, doc document.Document) (types.DocID, error) {
	if len(doc) == 0 {
		return "", types.ErrEmptyDocument
	}

	id := doc.ID()
	if id == "" {
		id = types.NewDocID()
		doc[types.IDField] = string(id)
	}

	body, err := doc.JSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode document %s: %w", id, err)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	// Bind the body as a string so postgres coerces it into jsonb; a []byte
	// argument would be sent as bytea.
	if _, err := s.queries.Exec("insert-document", string(id), collection, string(body), createdAt); err != nil {
		return "", fmt.Errorf("failed to insert document %s: %w", id, err)
	}

	return id, nil
}

// Get loads a single document by ID.
func (s *Store) Get(id types.DocID) (document.Document, error) {
	var row docRow
	if err := s.queries.Get("get-document", &row, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
		}
		return nil, fmt.Errorf("failed to load document %s: %w", id, err)
	}
	return document.FromJSON(row.Body)
}

// List loads every document in the named collection, ordered by doc_id.
// UUIDv7 ordering makes this insertion order.
func (s *Store) List(collection string) ([]document.Document, error) {
	var rows []docRow
	if err := s.queries.Select("list-documents", &rows, collection); err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}

	docs := make([]document.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := document.FromJSON(row.Body)
		if err != nil {
			return nil, fmt.Errorf("corrupt document %s: %w", row.DocID, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Count returns the number of documents in the named collection.
func (s *Store) Count(collection string) (int, error) {
	var count int
	if err := s.queries.Get("count-documents", &count, collection); err != nil {
		return 0, fmt.Errorf("failed to count collection %s: %w", collection, err)
	}
	return count, nil
}

// Delete removes a document by ID.
func (s *Store) Delete(id types.DocID) error {
	result, err := s.queries.Exec("delete-document", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return nil
}
