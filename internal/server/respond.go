package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/sunwheel-labs/sunwheel/pkg/errors"
	"github.com/sunwheel-labs/sunwheel/pkg/layout"
	"github.com/sunwheel-labs/sunwheel/pkg/tree"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v with the given status. Encoding failures are logged
// only; by then the status line is already on the wire.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps an error onto its HTTP status and error envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errorCode(err)
	s.writeJSON(w, httpStatus(code), errorBody{
		Error: errorDetail{
			Code:    string(code),
			Message: apperrors.UserMessage(err),
		},
	})
}

// decodeJSON reads a request body into v, with the body size capped at
// maxBodyBytes.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// errorCode normalizes any engine error to a wire code. Coded errors pass
// through; bare sentinels from pkg/tree and pkg/layout get the closest
// equivalent.
func errorCode(err error) apperrors.Code {
	if code := apperrors.GetCode(err); code != "" {
		return code
	}
	switch {
	case errors.Is(err, tree.ErrNodeNotFound):
		return apperrors.ErrCodeNodeNotFound
	case errors.Is(err, tree.ErrCyclicStructure):
		return apperrors.ErrCodeCyclicStructure
	case errors.Is(err, tree.ErrInvalidNodeID),
		errors.Is(err, tree.ErrDuplicateNodeID),
		errors.Is(err, tree.ErrNegativeValue):
		return apperrors.ErrCodeInvalidTree
	case errors.Is(err, layout.ErrInvalidConfig):
		return apperrors.ErrCodeInvalidConfig
	case errors.Is(err, layout.ErrGapExceedsRange):
		return apperrors.ErrCodeGapExceedsRange
	default:
		return apperrors.ErrCodeInternal
	}
}

// httpStatus maps wire codes onto HTTP statuses.
func httpStatus(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeDocumentNotFound,
		apperrors.ErrCodeNodeNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeNothingToUndo, apperrors.ErrCodeNothingToRedo:
		return http.StatusConflict
	case apperrors.ErrCodeStore, apperrors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
