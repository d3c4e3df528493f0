package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	appMiddleware "github.com/otaviofarias/papersynth/internal/api/middlewares"
	"github.com/otaviofarias/papersynth/internal/session"
)

type SessionHandler struct {
	store  *session.Store
	secret string
	log    *zap.Logger
}

func NewSessionHandler(store *session.Store, secret string, log *zap.Logger) *SessionHandler {
	return &SessionHandler{store: store, secret: secret, log: log}
}

type createSessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create starts a new session and hands back its bearer token.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Create()

	token, err := appMiddleware.NewSessionToken(h.secret, sess.ID, sess.ExpiresAt)
	if err != nil {
		h.log.Error("sign session token", zap.Error(err))
		h.store.Delete(sess.ID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.log.Info("session created", zap.String("session_id", sess.ID))

	respondJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: sess.ID,
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
	})
}

// Destroy ends the current session and drops all of its state.
func (h *SessionHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r, h.store)
	if !ok {
		return
	}

	h.store.Delete(sess.ID)
	h.log.Info("session destroyed", zap.String("session_id", sess.ID))
	w.WriteHeader(http.StatusNoContent)
}

// State returns the full session snapshot: status, document, extracted
// text, last result and last error.
func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r, h.store)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, sess.Snapshot())
}
