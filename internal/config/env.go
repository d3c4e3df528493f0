package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	OllamaURL     string
	GenModel      string
	Temperature   float64
	MaxTokens     int
	ContextWindow int
	MaxUploadMB   int
	SessionTTL    time.Duration
	SessionSecret string
	LogFile       string
	AppEnv        string
}

// LoadConfig loads the environment variables and returns config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		OllamaURL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
		GenModel:      getEnv("GEN_MODEL", "gemma3:12b"),
		Temperature:   getEnvFloat("TEMPERATURE", 0.4),
		MaxTokens:     getEnvInt("MAX_TOKENS", 2048),
		ContextWindow: getEnvInt("CONTEXT_WINDOW", 32768),
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 20),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		SessionSecret: getEnv("SESSION_SECRET", ""),
		LogFile:       getEnv("LOG_FILE", "logs/papersynth.log"),
		AppEnv:        getEnv("APP_ENV", "development"),
	}

	if cfg.SessionSecret == "" {
		log.Println("WARN: SESSION_SECRET not set, using an insecure development secret")
		cfg.SessionSecret = "papersynth-dev-secret"
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("WARN: %s=%q not a float, using default %g", key, v, def)
		return def
	}
	return f
}
