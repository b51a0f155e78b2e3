package server

import (
	"net/http"

	"github.com/sunwheel-labs/sunwheel/pkg/buildinfo"
	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/observability"
	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Layout
// =============================================================================

// layoutRequest is the layout endpoint body. The forest goes under "roots";
// "tree" is accepted as an alias for editors that post their whole model.
type layoutRequest struct {
	Roots       []*tree.Node   `json:"roots"`
	Tree        []*tree.Node   `json:"tree"`
	Config      *layout.Config `json:"config"`
	WeightModel string         `json:"weightModel"`
	Refresh     bool           `json:"refresh"`
}

func (req *layoutRequest) forest() []*tree.Node {
	if len(req.Roots) > 0 {
		return req.Roots
	}
	return req.Tree
}

func (req *layoutRequest) options() pipeline.Options {
	opts := pipeline.Options{
		WeightModel: req.WeightModel,
		Refresh:     req.Refresh,
	}
	if req.Config != nil {
		opts.Config = *req.Config
	}
	return opts
}

// layoutResponse flattens the pipeline result for the wire. Revision is set
// only for per-document layouts.
type layoutResponse struct {
	Roots       []*layout.PlacedNode `json:"roots"`
	Diagnostics []layout.Diagnostic  `json:"diagnostics,omitempty"`
	Stats       layout.Stats         `json:"stats"`
	TreeHash    string               `json:"treeHash"`
	Violations  []layout.Violation   `json:"violations,omitempty"`
	Cached      bool                 `json:"cached"`
	Revision    int                  `json:"revision,omitempty"`
}

func toLayoutResponse(result *pipeline.Result) layoutResponse {
	return layoutResponse{
		Roots:       result.Layout.Roots,
		Diagnostics: result.Layout.Diagnostics,
		Stats:       result.Layout.Stats,
		TreeHash:    result.TreeHash,
		Violations:  result.Violations,
		Cached:      result.CacheInfo.LayoutHit,
	}
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	opts := req.options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		if errorCode(err) == apperrors.ErrCodeInternal {
			err = apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid layout options")
		}
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), req.forest(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toLayoutResponse(result))
}

// =============================================================================
// Hit testing
// =============================================================================

// hitTestRequest locates a screen point in a rendered chart. Clients either
// send the placed forest straight back under "roots", or the source tree
// and config so the server recomputes the geometry first.
type hitTestRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Roots       []*layout.PlacedNode `json:"roots,omitempty"`
	Tree        []*tree.Node         `json:"tree,omitempty"`
	Config      *layout.Config       `json:"config,omitempty"`
	WeightModel string               `json:"weightModel,omitempty"`
}

// hitTestResponse reports the sector under the point. Node is null on a
// miss, and carries the sector without its subtree on a hit.
type hitTestResponse struct {
	Hit  bool               `json:"hit"`
	Node *layout.PlacedNode `json:"node"`
}

func (s *Server) handleHitTest(w http.ResponseWriter, r *http.Request) {
	var req hitTestRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "width and height must be positive"))
		return
	}

	placed := req.Roots
	if placed == nil {
		opts := pipeline.Options{WeightModel: req.WeightModel}
		if req.Config != nil {
			opts.Config = *req.Config
		}
		res, err := s.runner.Layout(r.Context(), req.Tree, opts)
		if err != nil {
			s.writeError(w, err)
			return
		}
		placed = res.Roots
	}

	node := layout.HitTest(req.X, req.Y, placed, req.Width, req.Height)
	observability.Pipeline().OnHitTest(r.Context(), node != nil)

	resp := hitTestResponse{Hit: node != nil}
	if node != nil {
		hit := *node
		hit.Children = nil
		resp.Node = &hit
	}
	s.writeJSON(w, http.StatusOK, resp)
}
