package session

import (
	"errors"
	"sync"
	"time"

	"github.com/otaviofarias/papersynth/internal/models"
)

// Status tracks where the session is in the pipeline. Error is terminal
// per attempt; a new upload resets the chain.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusExtracting Status = "extracting"
	StatusExtracted  Status = "extracted"
	StatusGenerating Status = "generating"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// ErrBusy is returned when a pipeline pass is already in flight for the
// session. HTTP serves requests concurrently, so the one-pass-per-session
// rule has to be enforced here.
var ErrBusy = errors.New("another request is already being processed for this session")

// Session is the explicit per-user context object: created on session
// start, cleared on new upload, destroyed on session end or TTL expiry.
// It owns the derivation chain Document → ExtractedText → AnalysisResult.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time

	mu            sync.Mutex
	inFlight      bool
	status        Status
	document      *models.Document
	extractedText string
	result        *models.AnalysisResult
	lastError     string
}

// BeginPass claims the session for one pipeline pass.
func (s *Session) BeginPass() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrBusy
	}
	s.inFlight = true
	return nil
}

// EndPass releases the claim taken by BeginPass.
func (s *Session) EndPass() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// StartExtraction clears everything derived from the previous document and
// moves to Extracting. The old result is dropped here, before extraction
// runs, so a stale summary can never outlive a new upload.
func (s *Session) StartExtraction() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = nil
	s.extractedText = ""
	s.result = nil
	s.lastError = ""
	s.status = StatusExtracting
}

// CompleteExtraction records the new document and its text.
func (s *Session) CompleteExtraction(doc *models.Document, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = doc
	s.extractedText = text
	s.status = StatusExtracted
}

// StartGeneration moves to Generating and returns the text the prompts
// will be built from.
func (s *Session) StartGeneration() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.extractedText == "" {
		return "", errors.New("no extracted document in session")
	}
	s.result = nil
	s.lastError = ""
	s.status = StatusGenerating
	return s.extractedText, nil
}

// CompleteGeneration stores the result and moves to Done.
func (s *Session) CompleteGeneration(res *models.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = res
	s.status = StatusDone
}

// Fail records the attempt's error. The extracted text is left untouched
// so a generation failure does not lose the document.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
	s.status = StatusError
}

// ExtractedText returns the current document text, empty if none.
func (s *Session) ExtractedText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extractedText
}

// Result returns the last analysis result, nil if none.
func (s *Session) Result() *models.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Document returns the current document metadata, nil if none.
func (s *Session) Document() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// Snapshot copies the session into a serializable state object.
func (s *Session) Snapshot() *models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.status
	if status == "" {
		status = StatusIdle
	}

	return &models.SessionState{
		SessionID:     s.ID,
		Status:        string(status),
		Document:      s.document,
		ExtractedText: s.extractedText,
		Result:        s.result,
		LastError:     s.lastError,
		CreatedAt:     s.CreatedAt,
		ExpiresAt:     s.ExpiresAt,
	}
}
