package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/otaviofarias/papersynth/internal/core"
)

type ModelHandler struct {
	manager      core.ModelManager
	defaultModel string
	log          *zap.Logger
}

func NewModelHandler(manager core.ModelManager, defaultModel string, log *zap.Logger) *ModelHandler {
	return &ModelHandler{manager: manager, defaultModel: defaultModel, log: log}
}

type listModelsResponse struct {
	Models   []string `json:"models"`
	Default  string   `json:"default"`
	Fallback bool     `json:"fallback"`
	Warning  string   `json:"warning,omitempty"`
}

// List returns the installed models. When the inference endpoint is down,
// or has nothing installed, the configured default is returned as a
// fallback instead of an error, so the client stays usable.
func (h *ModelHandler) List(w http.ResponseWriter, r *http.Request) {
	models, err := h.manager.ListModels(r.Context())
	if err != nil {
		h.log.Warn("list models failed, using fallback", zap.Error(err))
		respondJSON(w, http.StatusOK, listModelsResponse{
			Models:   []string{h.defaultModel},
			Default:  h.defaultModel,
			Fallback: true,
			Warning:  "inference endpoint unreachable: " + err.Error(),
		})
		return
	}

	if len(models) == 0 {
		h.log.Warn("no models installed, using fallback")
		respondJSON(w, http.StatusOK, listModelsResponse{
			Models:   []string{h.defaultModel},
			Default:  h.defaultModel,
			Fallback: true,
			Warning:  "no models installed on the inference endpoint",
		})
		return
	}

	respondJSON(w, http.StatusOK, listModelsResponse{
		Models:  models,
		Default: h.defaultModel,
	})
}

type pullModelRequest struct {
	Name string `json:"name"`
}

// Pull downloads a new model onto the inference server.
func (h *ModelHandler) Pull(w http.ResponseWriter, r *http.Request) {
	var req pullModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body", Kind: "request"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "model name is required", Kind: "request"})
		return
	}

	if err := h.manager.Pull(r.Context(), req.Name); err != nil {
		respondError(w, err)
		return
	}

	h.log.Info("model pulled", zap.String("model", req.Name))
	respondJSON(w, http.StatusOK, map[string]string{"status": "success", "model": req.Name})
}
