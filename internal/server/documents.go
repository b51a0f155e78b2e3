package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sunwheel-labs/sunwheel/pkg/document"
	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// =============================================================================
// Document CRUD
// =============================================================================

// documentSummary is the list-view projection of a document.
type documentSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Revision  int       `json:"revision"`
	NodeCount int       `json:"nodeCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func summarize(d *document.Document) documentSummary {
	return documentSummary{
		ID:        d.ID,
		Name:      d.Name,
		Revision:  d.Revision,
		NodeCount: d.NodeCount(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	summaries := make([]documentSummary, len(docs))
	for i, d := range docs {
		summaries[i] = summarize(d)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"documents": summaries})
}

// createDocumentRequest names a new document and optionally seeds its
// forest.
type createDocumentRequest struct {
	Name  string       `json:"name"`
	Roots []*tree.Node `json:"roots,omitempty"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := document.New(req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(req.Roots) > 0 {
		if err := doc.SetRoots(req.Roots); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "docID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// updateDocumentRequest carries the fields a document update may change.
// A nil name leaves the name alone; a non-nil roots list replaces the
// forest, with an empty list clearing it.
type updateDocumentRequest struct {
	Name  *string      `json:"name"`
	Roots []*tree.Node `json:"roots"`
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req updateDocumentRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := s.mutateDocument(r.Context(), chi.URLParam(r, "docID"), func(d *document.Document) error {
		if req.Name != nil {
			if err := d.Rename(*req.Name); err != nil {
				return err
			}
		}
		if req.Roots != nil {
			if err := d.SetRoots(req.Roots); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.store.Delete(r.Context(), docID); err != nil {
		s.writeError(w, err)
		return
	}

	s.editMu.Lock()
	delete(s.histories, docID)
	s.editMu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Node edits
// =============================================================================

// insertNodeRequest adds a node under a parent. An empty parentId inserts a
// new root.
type insertNodeRequest struct {
	ParentID string     `json:"parentId"`
	Node     *tree.Node `json:"node"`
}

func (s *Server) handleInsertNode(w http.ResponseWriter, r *http.Request) {
	var req insertNodeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := s.mutateDocument(r.Context(), chi.URLParam(r, "docID"), func(d *document.Document) error {
		return d.InsertNode(req.ParentID, req.Node)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	var patch document.NodeUpdate
	if err := s.decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, err)
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	doc, err := s.mutateDocument(r.Context(), chi.URLParam(r, "docID"), func(d *document.Document) error {
		return d.UpdateNode(nodeID, patch)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleRemoveNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	doc, err := s.mutateDocument(r.Context(), chi.URLParam(r, "docID"), func(d *document.Document) error {
		return d.RemoveNode(nodeID)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// moveNodeRequest reparents or reorders a node. Index counts within the new
// sibling list; out-of-range indexes append.
type moveNodeRequest struct {
	ParentID string `json:"parentId"`
	Index    int    `json:"index"`
}

func (s *Server) handleMoveNode(w http.ResponseWriter, r *http.Request) {
	var req moveNodeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	doc, err := s.mutateDocument(r.Context(), chi.URLParam(r, "docID"), func(d *document.Document) error {
		return d.MoveNode(nodeID, req.ParentID, req.Index)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// =============================================================================
// Undo / redo
// =============================================================================

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	doc, err := s.undoDocument(r.Context(), chi.URLParam(r, "docID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	doc, err := s.redoDocument(r.Context(), chi.URLParam(r, "docID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// =============================================================================
// Per-document layout
// =============================================================================

func (s *Server) handleDocumentLayout(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	doc, err := s.store.Get(r.Context(), docID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{
		WeightModel: r.URL.Query().Get("weightModel"),
		Refresh:     r.URL.Query().Get("refresh") == "true",
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		if errorCode(err) == apperrors.ErrCodeInternal {
			err = apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid layout options")
		}
		s.writeError(w, err)
		return
	}

	result, err := s.documentRunner(docID).Execute(r.Context(), doc.Roots, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := toLayoutResponse(result)
	resp.Revision = doc.Revision
	s.writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Mutation plumbing
// =============================================================================

// mutateDocument loads a document, applies fn, and stores the result. The
// pre-edit snapshot lands on the undo stack only once the edit and the
// write both succeed, so failed edits never show up in the history. The
// edit lock serializes concurrent editors.
func (s *Server) mutateDocument(ctx context.Context, docID string, fn func(*document.Document) error) (*document.Document, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	prev := doc.Clone()

	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, doc); err != nil {
		return nil, err
	}

	s.history(docID).Record(prev)
	return doc, nil
}

func (s *Server) undoDocument(ctx context.Context, docID string) (*document.Document, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	restored, err := s.history(docID).Undo(doc)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, restored); err != nil {
		return nil, err
	}
	return restored, nil
}

func (s *Server) redoDocument(ctx context.Context, docID string) (*document.Document, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()

	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	restored, err := s.history(docID).Redo(doc)
	if err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, restored); err != nil {
		return nil, err
	}
	return restored, nil
}
