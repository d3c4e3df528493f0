package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/otaviofarias/papersynth/internal/models"
	"github.com/otaviofarias/papersynth/internal/services"
	"github.com/otaviofarias/papersynth/internal/session"
)

type DocumentHandler struct {
	store          *session.Store
	ingest         *services.IngestService
	maxUploadBytes int64
	log            *zap.Logger
}

func NewDocumentHandler(store *session.Store, ingest *services.IngestService, maxUploadMB int, log *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		store:          store,
		ingest:         ingest,
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
		log:            log,
	}
}

type uploadResponse struct {
	Document      *models.Document `json:"document"`
	ExtractedText string           `json:"extracted_text"`
}

// Upload accepts a multipart document, extracts its text and stores it in
// the session. Any previous extraction or analysis is invalidated first,
// so a failed upload never leaves a stale summary behind.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r, h.store)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		maxMB := h.maxUploadBytes / (1024 * 1024)
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("file too large (max %dMB) or invalid form", maxMB),
			Kind:  "request",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "file is required", Kind: "request"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("read upload", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := sess.BeginPass(); err != nil {
		respondError(w, err)
		return
	}
	defer sess.EndPass()

	// Drops the previous document, text and result before extraction runs.
	sess.StartExtraction()

	filename := filepath.Base(header.Filename)
	doc, text, err := h.ingest.Extract(r.Context(), filename, data)
	if err != nil {
		sess.Fail(err)
		respondError(w, err)
		return
	}

	sess.CompleteExtraction(doc, text)

	h.log.Info("document uploaded",
		zap.String("session_id", sess.ID),
		zap.String("doc_id", doc.ID),
		zap.String("file", filename))

	respondJSON(w, http.StatusCreated, uploadResponse{Document: doc, ExtractedText: text})
}

// Current returns the extracted text of the session's document.
func (h *DocumentHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r, h.store)
	if !ok {
		return
	}

	doc := sess.Document()
	if doc == nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "no document uploaded", Kind: "request"})
		return
	}

	respondJSON(w, http.StatusOK, uploadResponse{Document: doc, ExtractedText: sess.ExtractedText()})
}
