// Package config loads process-wide settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all the application configuration. Loop defaults live here
// and are injected at construction; nothing reads the environment ad hoc.
type Config struct {
	GeminiAPIKey string
	// VeoAPIKey falls back to GeminiAPIKey; both use the same endpoint family.
	VeoAPIKey     string
	VideoModel    string
	CritiqueModel string

	UploadDir string
	TempDir   string
	DBPath    string

	DefaultRegenLimit int
	ScoreThreshold    float64
	FrameSampleCount  int
	PollInterval      time.Duration
}

// Load reads .env and validates required variables.
func Load() (*Config, error) {
	// Ignore a missing .env file, e.g. in production.
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		VeoAPIKey:         os.Getenv("VEO_API_KEY"),
		VideoModel:        envOr("VIDEO_MODEL", "veo-3.1-generate-preview"),
		CritiqueModel:     envOr("CRITIQUE_MODEL", "gemini-2.5-flash"),
		UploadDir:         envOr("UPLOAD_DIR", "storage/uploads"),
		TempDir:           envOr("TEMP_DIR", "storage/tmp"),
		DBPath:            envOr("DB_PATH", "storage/adprompt.db"),
		DefaultRegenLimit: 5,
		ScoreThreshold:    0.8,
		FrameSampleCount:  6,
		PollInterval:      10 * time.Second,
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.VeoAPIKey == "" {
		cfg.VeoAPIKey = cfg.GeminiAPIKey
	}

	if raw := os.Getenv("DEFAULT_REGEN_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("DEFAULT_REGEN_LIMIT must be a positive integer, got %q", raw)
		}
		cfg.DefaultRegenLimit = limit
	}

	if raw := os.Getenv("SCORE_THRESHOLD"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil || threshold <= 0 || threshold > 1 {
			return nil, fmt.Errorf("SCORE_THRESHOLD must be in (0,1], got %q", raw)
		}
		cfg.ScoreThreshold = threshold
	}

	if raw := os.Getenv("FRAME_SAMPLE_COUNT"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("FRAME_SAMPLE_COUNT must be a positive integer, got %q", raw)
		}
		cfg.FrameSampleCount = count
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
