package api

import (
	"net/http"
	"strconv"
	"strings"
)

// ArtifactHandler serves generated files.
type ArtifactHandler struct {
	deps Dependencies
}

// NewArtifactHandler creates a new artifact handler.
func NewArtifactHandler(deps Dependencies) *ArtifactHandler {
	return &ArtifactHandler{deps: deps}
}

// HandleGetArtifact handles GET /artifacts/{id} requests.
func (h *ArtifactHandler) HandleGetArtifact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	a, err := h.deps.Artifact(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.Header().Set("Content-Disposition", `attachment; filename="`+a.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}
