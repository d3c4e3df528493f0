package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otaviofarias/papersynth/internal/core"
)

func TestGenerate(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   got.Model,
			Message: ollamaMessage{Role: "assistant", Content: "generated text"},
			Done:    true,
		})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma3:12b")
	out, err := c.Generate(context.Background(), "the prompt",
		core.WithModel("llama3"),
		core.WithTemperature(0.4),
		core.WithMaxTokens(2048),
		core.WithContextWindow(32768),
	)
	require.NoError(t, err)
	assert.Equal(t, "generated text", out)

	assert.Equal(t, "llama3", got.Model, "option should override default model")
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "the prompt", got.Messages[0].Content)
	require.NotNil(t, got.Options)
	require.NotNil(t, got.Options.Temperature)
	assert.Equal(t, 0.4, *got.Options.Temperature)
	assert.Equal(t, 2048, got.Options.NumPredict)
	assert.Equal(t, 32768, got.Options.NumCtx)
}

func TestGenerateTemperatureOnWire(t *testing.T) {
	var rawBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		rawBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Content: "ok"}})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma3:12b")

	// An explicit zero must reach the wire, not vanish behind omitempty.
	_, err := c.Generate(context.Background(), "p", core.WithTemperature(0))
	require.NoError(t, err)
	assert.Contains(t, string(rawBody), `"temperature":0`)

	// Without the option the key stays absent so the model default applies.
	_, err = c.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.NotContains(t, string(rawBody), `"temperature"`)
}

func TestGenerateUsesDefaultModel(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Content: "ok"}})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma3:12b")
	_, err := c.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "gemma3:12b", got.Model)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "missing:1b")
	_, err := c.Generate(context.Background(), "p")

	var genErr *core.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Error(), "404")
	assert.Contains(t, genErr.Error(), "model not found")
}

func TestGenerateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewOllamaClient(srv.URL, "gemma3:12b")
	_, err := c.Generate(context.Background(), "p")

	var genErr *core.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "inference endpoint unreachable", genErr.Reason)
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"gemma3:12b"},{"name":"llama3:latest"}]}`))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma3:12b")
	names, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gemma3:12b", "llama3:latest"}, names)
}

func TestListModelsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewOllamaClient(srv.URL, "gemma3:12b")
	_, err := c.ListModels(context.Background())
	require.Error(t, err)

	// Listing is a plain failure, not a generation failure.
	var genErr *core.GenerationError
	assert.False(t, errors.As(err, &genErr))
}

func TestPull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pull", r.URL.Path)
		var req ollamaPullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Name)
		assert.False(t, req.Stream)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma3:12b")
	require.NoError(t, c.Pull(context.Background(), "llama3"))
}

func TestPullClientHasNoTimeout(t *testing.T) {
	c := NewOllamaClient("http://localhost:11434", "gemma3:12b")

	// Chat calls are bounded, but a pull must be allowed to run for as
	// long as the model download takes.
	assert.Equal(t, 120*time.Second, c.Client.Timeout)
	assert.Zero(t, c.PullClient.Timeout)
}

func TestPullHonorsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release // hold the pull open past the caller's deadline
	}))
	defer srv.Close()
	defer close(release)

	c := NewOllamaClient(srv.URL, "gemma3:12b")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Pull(ctx, "llama3")
	var genErr *core.GenerationError
	require.ErrorAs(t, err, &genErr)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPullFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","error":"pull model manifest: file does not exist"}`))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma3:12b")
	err := c.Pull(context.Background(), "nosuchmodel")

	var genErr *core.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Error(), "file does not exist")
}
