package document

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
)

// FileStore is a file-based document store for CLI use.
// Each document is stored as one JSON file named <id>.json in a config
// directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based document store.
// If baseDir is empty, defaults to ~/.config/sunwheel/documents/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "sunwheel", "documents")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "create document dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the directory documents are stored in.
func (s *FileStore) Dir() string {
	return s.baseDir
}

// Path returns the file path a document ID maps to. Document IDs are
// validated to contain no path separators before they reach disk.
func (s *FileStore) Path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Get retrieves a document by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Document, error) {
	if err := apperrors.ValidateDocumentID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.New(apperrors.ErrCodeDocumentNotFound, "document %s not found", id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "read document file")
	}

	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "parse document %s", id)
	}
	return &d, nil
}

// Put stores a validated document, overwriting any previous revision on disk.
func (s *FileStore) Put(ctx context.Context, d *Document) error {
	if err := d.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "marshal document %s", d.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.Path(d.ID), data, 0600); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "write document file")
	}
	return nil
}

// Delete removes a document by ID.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := apperrors.ValidateDocumentID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path(id))
	if os.IsNotExist(err) {
		return apperrors.New(apperrors.ErrCodeDocumentNotFound, "document %s not found", id)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "remove document file")
	}
	return nil
}

// List returns all documents sorted by name. Files that fail to parse are
// skipped rather than failing the whole listing, so one corrupt document
// does not hide the rest.
func (s *FileStore) List(ctx context.Context) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "read document dir")
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var d Document
		if err := json.Unmarshal(data, &d); err != nil {
			continue
		}
		docs = append(docs, &d)
	}
	sortDocuments(docs)
	return docs, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
