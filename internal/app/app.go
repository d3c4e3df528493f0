package app

import (
	"go.uber.org/zap"

	"github.com/otaviofarias/papersynth/internal/config"
	"github.com/otaviofarias/papersynth/internal/core/extract"
	"github.com/otaviofarias/papersynth/internal/core/llm"
	"github.com/otaviofarias/papersynth/internal/core/prompt"
	"github.com/otaviofarias/papersynth/internal/pkg/logger"
	"github.com/otaviofarias/papersynth/internal/services"
	"github.com/otaviofarias/papersynth/internal/session"
)

type App struct {
	Log    *zap.Logger
	Store  *session.Store
	Server *Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New(cfg.LogFile, cfg.AppEnv == "production")

	ollama := llm.NewOllamaClient(cfg.OllamaURL, cfg.GenModel)
	log.Info("generation adapter ready",
		zap.String("endpoint", cfg.OllamaURL),
		zap.String("model", cfg.GenModel))

	useReadability := false
	extractor := extract.NewDocconvExtractor(useReadability)

	store := session.NewStore(cfg.SessionTTL)

	ingest := services.NewIngestService(extractor, log)
	analysis := services.NewAnalysisService(ollama, prompt.NewBuilder(), services.Defaults{
		Model:         cfg.GenModel,
		Temperature:   cfg.Temperature,
		MaxTokens:     cfg.MaxTokens,
		ContextWindow: cfg.ContextWindow,
	}, log)

	server := NewServer(cfg, log, store, ingest, analysis, ollama)

	return &App{Log: log, Store: store, Server: server}, nil
}

func (a *App) Close() {
	if a.Log != nil {
		_ = a.Log.Sync()
	}
}
