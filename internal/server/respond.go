package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/query"
	"github.com/raphi011/pdash/internal/settings"
	"github.com/raphi011/pdash/internal/tags"
)

// maxBodyBytes bounds request bodies; the largest is a settings document.
const maxBodyBytes = 1 << 20

// errBadRequest marks malformed or incomplete request bodies.
var errBadRequest = errors.New("bad request")

type errorBody struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Projects []string `json:"projectsUsingTag,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes the failure body.
// Unexpected errors are logged and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Message: err.Error()}

	var inUse *tags.TagInUseError
	if errors.As(err, &inUse) {
		body.Projects = inUse.Projects
	}

	switch {
	case errors.Is(err, tags.ErrDocumentUnreadable):
		log.FromContext(r.Context()).Printf("Error: %s %s: %v\n", r.Method, r.URL.Path, err)
		body.Message = err.Error() + ", the change was not saved"
	case status == http.StatusInternalServerError:
		log.FromContext(r.Context()).Printf("Error: %s %s: %v\n", r.Method, r.URL.Path, err)
		body.Message = "internal error"
		if r.Method == http.MethodPost {
			body.Message = "internal error, the change was not saved"
		}
	}

	writeJSON(w, status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tags.ErrNotFound),
		errors.Is(err, query.ErrProjectNotFound),
		errors.Is(err, query.ErrReadmeNotFound):
		return http.StatusNotFound
	case errors.Is(err, tags.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, tags.ErrTagRequired),
		errors.Is(err, tags.ErrColorRequired),
		errors.Is(err, tags.ErrProjectRequired),
		errors.Is(err, settings.ErrScanPathRequired),
		errors.Is(err, settings.ErrEditorCommandRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into dst.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}
