package models

import (
	"time"
)

// Document describes an uploaded file. The raw bytes are discarded once
// extraction finishes; only this metadata survives in the session.
type Document struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// AnalysisRequest is the body of POST /api/analysis. All fields are
// optional; unset generation parameters fall back to configured defaults.
type AnalysisRequest struct {
	Topic         string   `json:"topic"`
	Project       string   `json:"project"`
	Model         string   `json:"model"`
	Temperature   *float64 `json:"temperature"`
	MaxTokens     int      `json:"max_tokens"`
	ContextWindow int      `json:"context_window"`
}

// AnalysisResult holds the two generated texts: the analytical summary and
// the discussion draft rewritten from it. Overwritten on each new run.
type AnalysisResult struct {
	Summary     string    `json:"summary"`
	Discussion  string    `json:"discussion"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	GeneratedAt time.Time `json:"generated_at"`
	DurationMs  int64     `json:"duration_ms"`
}

// SessionState is the full session snapshot returned by GET /api/session.
type SessionState struct {
	SessionID     string          `json:"session_id"`
	Status        string          `json:"status"`
	Document      *Document       `json:"document,omitempty"`
	ExtractedText string          `json:"extracted_text,omitempty"`
	Result        *AnalysisResult `json:"result,omitempty"`
	LastError     string          `json:"last_error,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
}
