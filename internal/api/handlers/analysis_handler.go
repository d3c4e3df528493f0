package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/otaviofarias/papersynth/internal/models"
	"github.com/otaviofarias/papersynth/internal/services"
	"github.com/otaviofarias/papersynth/internal/session"
)

type AnalysisHandler struct {
	store    *session.Store
	analysis *services.AnalysisService
	log      *zap.Logger
}

func NewAnalysisHandler(store *session.Store, analysis *services.AnalysisService, log *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{store: store, analysis: analysis, log: log}
}

// Generate runs the two-stage pipeline on the session's extracted text.
func (h *AnalysisHandler) Generate(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r, h.store)
	if !ok {
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body", Kind: "request"})
		return
	}

	if err := sess.BeginPass(); err != nil {
		respondError(w, err)
		return
	}
	defer sess.EndPass()

	docText, err := sess.StartGeneration()
	if err != nil {
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Kind: "request"})
		return
	}

	res, err := h.analysis.Analyze(r.Context(), docText, req)
	if err != nil {
		sess.Fail(err)
		respondError(w, err)
		return
	}

	sess.CompleteGeneration(res)

	h.log.Info("analysis stored",
		zap.String("session_id", sess.ID),
		zap.String("model", res.Model))

	respondJSON(w, http.StatusOK, res)
}

// Result returns the last analysis of the current session.
func (h *AnalysisHandler) Result(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r, h.store)
	if !ok {
		return
	}

	res := sess.Result()
	if res == nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "no analysis generated yet", Kind: "request"})
		return
	}

	respondJSON(w, http.StatusOK, res)
}

// Download serves the discussion draft as a Markdown attachment.
func (h *AnalysisHandler) Download(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r, h.store)
	if !ok {
		return
	}

	res := sess.Result()
	if res == nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "no analysis generated yet", Kind: "request"})
		return
	}

	w.Header().Set("Content-Type", "text/markdown")
	w.Header().Set("Content-Disposition", "attachment; filename=discussion_draft.md")
	_, _ = w.Write([]byte(res.Discussion))
}
