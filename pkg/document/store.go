package document

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
)

// Store is the interface for document persistence backends.
//
// Get returns an error with code DOCUMENT_NOT_FOUND for unknown IDs, and so
// does Delete, so callers can map missing documents to their own semantics
// (the HTTP API turns the code into a 404). Put validates before writing and
// overwrites any existing document with the same ID. List returns every
// document sorted by name; backends holding many documents return full
// copies, so callers that only need names should not call it in a loop.
type Store interface {
	Get(ctx context.Context, id string) (*Document, error)
	Put(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Document, error)
	Close() error
}

// MemoryStore is an in-process document store for development and tests.
// All documents are deep-copied on the way in and out, so callers can keep
// editing what they pass and receive.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

// Get retrieves a document by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeDocumentNotFound, "document %s not found", id)
	}
	return d.Clone(), nil
}

// Put stores a validated copy of d.
func (s *MemoryStore) Put(ctx context.Context, d *Document) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.docs[d.ID] = d.Clone()
	s.mu.Unlock()
	return nil
}

// Delete removes a document by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return apperrors.New(apperrors.ErrCodeDocumentNotFound, "document %s not found", id)
	}
	delete(s.docs, id)
	return nil
}

// List returns all documents sorted by name, then ID for stability.
func (s *MemoryStore) List(ctx context.Context) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d.Clone())
	}
	sortDocuments(out)
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// sortDocuments orders by name with ID as the tiebreaker, so listings are
// stable across backends.
func sortDocuments(docs []*Document) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Name != docs[j].Name {
			return docs[i].Name < docs[j].Name
		}
		return docs[i].ID < docs[j].ID
	})
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
