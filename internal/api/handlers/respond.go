package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	appMiddleware "github.com/otaviofarias/papersynth/internal/api/middlewares"
	"github.com/otaviofarias/papersynth/internal/core"
	"github.com/otaviofarias/papersynth/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps domain errors onto status codes: extraction failures
// are the client's document (422), generation failures are the upstream
// endpoint (502), everything else is a bad request.
func respondError(w http.ResponseWriter, err error) {
	var extErr *core.ExtractionError
	var genErr *core.GenerationError

	switch {
	case errors.As(err, &extErr):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: extErr.Error(), Kind: "extraction"})
	case errors.As(err, &genErr):
		respondJSON(w, http.StatusBadGateway, errorResponse{Error: genErr.Error(), Kind: "generation"})
	case errors.Is(err, session.ErrBusy):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Kind: "request"})
	default:
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "request"})
	}
}

// sessionFromRequest resolves the live session for an authenticated
// request. A valid token whose session has expired yields 401.
func sessionFromRequest(w http.ResponseWriter, r *http.Request, store *session.Store) (*session.Session, bool) {
	id, ok := appMiddleware.SessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, "session_id not found in context", http.StatusUnauthorized)
		return nil, false
	}
	sess, found := store.Get(id)
	if !found {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "session expired or not found", Kind: "request"})
		return nil, false
	}
	return sess, true
}
