package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/otaviofarias/papersynth/internal/core"
)

// OllamaClient talks to a locally-hosted Ollama server over its native
// HTTP API. One synchronous call per request, bounded by the client
// timeout; no retries.
type OllamaClient struct {
	BaseURL   string
	ModelName string
	Client    *http.Client

	// With stream off a pull stays open until the whole model has been
	// downloaded, which for real models takes far longer than 120s. The
	// pull client therefore has no timeout; the caller's context bounds it.
	PullClient *http.Client
}

var _ core.LLMProvider = (*OllamaClient)(nil)
var _ core.ModelManager = (*OllamaClient)(nil)

func NewOllamaClient(baseURL, modelName string) *OllamaClient {
	return &OllamaClient{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
		PullClient: &http.Client{},
	}
}

// --- Request/Response structs (internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Temperature is a pointer so an explicit 0 still reaches the wire;
// omitempty would drop it and Ollama would fall back to the model default.
type ollamaOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
	NumCtx      int      `json:"num_ctx,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type ollamaPullRequest struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

type ollamaPullResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// --- Interface implementation ---

func (o *OllamaClient) Chat(ctx context.Context, history []core.Message, opts ...core.Option) (string, error) {
	options := &core.Options{}
	for _, opt := range opts {
		opt(options)
	}

	msgs := make([]ollamaMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		msgs[i] = ollamaMessage{Role: role, Content: msg.Content}
	}

	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := ollamaChatRequest{
		Model:    model,
		Messages: msgs,
		Stream:   false,
		Options: &ollamaOptions{
			Temperature: options.Temperature,
			NumPredict:  options.MaxTokens,
			NumCtx:      options.ContextWindow,
		},
	}

	payload, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", &core.GenerationError{Reason: "inference endpoint unreachable", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &core.GenerationError{Reason: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &core.GenerationError{
			Reason: fmt.Sprintf("status %d from model %q: %s", resp.StatusCode, model, bytes.TrimSpace(body)),
		}
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &core.GenerationError{Reason: "malformed response", Err: err}
	}

	return chatResp.Message.Content, nil
}

// Generate reuses Chat since current models are chat-optimized.
func (o *OllamaClient) Generate(ctx context.Context, prompt string, opts ...core.Option) (string, error) {
	return o.Chat(ctx, []core.Message{{Role: "user", Content: prompt}}, opts...)
}

// ListModels returns the names of the models installed on the server.
func (o *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama tags: status %d", resp.StatusCode)
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Pull downloads a model onto the server. Streaming is disabled, so the
// call blocks until the pull finishes or ctx is cancelled.
func (o *OllamaClient) Pull(ctx context.Context, name string) error {
	payload, err := json.Marshal(ollamaPullRequest{Name: name, Stream: false})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/api/pull", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.PullClient.Do(req)
	if err != nil {
		return &core.GenerationError{Reason: "inference endpoint unreachable", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &core.GenerationError{Reason: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &core.GenerationError{Reason: fmt.Sprintf("pull %q: status %d: %s", name, resp.StatusCode, bytes.TrimSpace(body))}
	}

	var pullResp ollamaPullResponse
	if err := json.Unmarshal(body, &pullResp); err != nil {
		return &core.GenerationError{Reason: "malformed response", Err: err}
	}
	if pullResp.Error != "" {
		return &core.GenerationError{Reason: fmt.Sprintf("pull %q: %s", name, pullResp.Error)}
	}
	return nil
}
