package core

import "context"

// Message is a chat message in a provider-agnostic format.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option carries optional generation parameters.
type Option func(*Options)

type Options struct {
	Model         string   // override the provider's default model
	Temperature   *float64 // nil leaves the model's own default in place
	MaxTokens     int
	ContextWindow int
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = &temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithContextWindow(n int) Option {
	return func(o *Options) {
		o.ContextWindow = n
	}
}

// LLMProvider defines the contract for the text-generation backend.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response.
	Chat(ctx context.Context, history []Message, opts ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method).
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// ModelManager exposes the model-administration side of the serving
// endpoint: listing installed models and pulling new ones.
type ModelManager interface {
	ListModels(ctx context.Context) ([]string, error)
	Pull(ctx context.Context, name string) error
}
