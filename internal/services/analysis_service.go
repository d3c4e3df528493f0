package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/otaviofarias/papersynth/internal/core"
	"github.com/otaviofarias/papersynth/internal/core/prompt"
	"github.com/otaviofarias/papersynth/internal/models"
)

// Defaults are the generation parameters used when a request leaves them
// unset. They mirror the tool's shipped configuration.
type Defaults struct {
	Model         string
	Temperature   float64
	MaxTokens     int
	ContextWindow int
}

// AnalysisService runs the two-stage generation pipeline: an analytical
// summary of the document, then a discussion draft rewritten from that
// summary. Both stages go through the same provider; a failure in either
// aborts the pass with the provider's error surfaced verbatim.
type AnalysisService struct {
	llm      core.LLMProvider
	builder  *prompt.Builder
	defaults Defaults
	log      *zap.Logger
}

func NewAnalysisService(llm core.LLMProvider, builder *prompt.Builder, defaults Defaults, log *zap.Logger) *AnalysisService {
	return &AnalysisService{llm: llm, builder: builder, defaults: defaults, log: log}
}

// Analyze generates the summary and discussion for the given document text.
// Prompt validation happens before any call to the inference endpoint.
func (s *AnalysisService) Analyze(ctx context.Context, docText string, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	model := req.Model
	if model == "" {
		model = s.defaults.Model
	}
	temperature := s.defaults.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.defaults.MaxTokens
	}
	ctxWindow := req.ContextWindow
	if ctxWindow <= 0 {
		ctxWindow = s.defaults.ContextWindow
	}

	summaryPrompt, err := s.builder.Summarize(prompt.SummarizeInput{
		Topic:   req.Topic,
		Project: req.Project,
		DocText: docText,
	})
	if err != nil {
		return nil, err
	}

	opts := []core.Option{
		core.WithModel(model),
		core.WithTemperature(temperature),
		core.WithMaxTokens(maxTokens),
		core.WithContextWindow(ctxWindow),
	}

	started := time.Now()

	summary, err := s.llm.Generate(ctx, summaryPrompt, opts...)
	if err != nil {
		s.log.Warn("summary generation failed", zap.String("model", model), zap.Error(err))
		return nil, err
	}

	discussionPrompt, err := s.builder.Discussion(summary)
	if err != nil {
		return nil, err
	}

	discussion, err := s.llm.Generate(ctx, discussionPrompt, opts...)
	if err != nil {
		s.log.Warn("discussion generation failed", zap.String("model", model), zap.Error(err))
		return nil, err
	}

	res := &models.AnalysisResult{
		Summary:     summary,
		Discussion:  discussion,
		Model:       model,
		Temperature: temperature,
		GeneratedAt: time.Now(),
		DurationMs:  time.Since(started).Milliseconds(),
	}

	s.log.Info("analysis complete",
		zap.String("model", model),
		zap.Int64("duration_ms", res.DurationMs))

	return res, nil
}
