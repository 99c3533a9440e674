// File path: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable of the service. Values come from DefaultConfig
// overlaid with environment variables.
type Config struct {
	Addr string

	SourceTemplate string
	SourceTimeout  time.Duration
	MutawatirPath  string

	MatchThreshold float64
	MaxResults     int

	RateLimitMax    int
	RateLimitWindow time.Duration

	ModelTimeout time.Duration
	ModelRPS     float64
	ModelBurst   int

	FallbackMaxTokens   int
	FallbackTemperature *float64

	CommentaryMaxTokens   int
	CommentaryTemperature float64
	BiographyMaxTokens    int
}

// DefaultConfig returns the baseline configuration used when no overrides
// are supplied.
func DefaultConfig() Config {
	return Config{
		Addr:                  ":3000",
		SourceTemplate:        filepath.Join("data", "collections", "%s.json"),
		SourceTimeout:         30 * time.Second,
		MatchThreshold:        0.3,
		MaxResults:            10,
		RateLimitMax:          15,
		RateLimitWindow:       24 * time.Hour,
		ModelTimeout:          30 * time.Second,
		ModelBurst:            1,
		FallbackMaxTokens:     600,
		CommentaryMaxTokens:   900,
		CommentaryTemperature: 0,
		BiographyMaxTokens:    600,
	}
}

// Load builds a Config from defaults and environment variables.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	if value := strings.TrimSpace(os.Getenv("HADITH_SOURCE_TEMPLATE")); value != "" {
		cfg.SourceTemplate = value
	}
	if value := strings.TrimSpace(os.Getenv("HADITH_MUTAWATIR_PATH")); value != "" {
		cfg.MutawatirPath = value
	}

	var err error
	if cfg.SourceTimeout, err = durationEnv("HADITH_SOURCE_TIMEOUT", cfg.SourceTimeout); err != nil {
		return Config{}, err
	}
	if cfg.MatchThreshold, err = floatEnv("HADITH_MATCH_THRESHOLD", cfg.MatchThreshold); err != nil {
		return Config{}, err
	}
	if cfg.MaxResults, err = intEnv("HADITH_MAX_RESULTS", cfg.MaxResults); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitMax, err = intEnv("HADITH_RATE_LIMIT_MAX", cfg.RateLimitMax); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitWindow, err = durationEnv("HADITH_RATE_LIMIT_WINDOW", cfg.RateLimitWindow); err != nil {
		return Config{}, err
	}
	if cfg.ModelTimeout, err = durationEnv("HADITH_MODEL_TIMEOUT", cfg.ModelTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ModelRPS, err = floatEnv("HADITH_MODEL_RPS", cfg.ModelRPS); err != nil {
		return Config{}, err
	}
	if cfg.ModelBurst, err = intEnv("HADITH_MODEL_BURST", cfg.ModelBurst); err != nil {
		return Config{}, err
	}
	if cfg.FallbackMaxTokens, err = intEnv("HADITH_FALLBACK_MAX_TOKENS", cfg.FallbackMaxTokens); err != nil {
		return Config{}, err
	}
	if cfg.CommentaryMaxTokens, err = intEnv("HADITH_COMMENTARY_MAX_TOKENS", cfg.CommentaryMaxTokens); err != nil {
		return Config{}, err
	}
	if cfg.BiographyMaxTokens, err = intEnv("HADITH_BIO_MAX_TOKENS", cfg.BiographyMaxTokens); err != nil {
		return Config{}, err
	}
	if cfg.CommentaryTemperature, err = floatEnv("HADITH_COMMENTARY_TEMPERATURE", cfg.CommentaryTemperature); err != nil {
		return Config{}, err
	}
	if value := strings.TrimSpace(os.Getenv("HADITH_FALLBACK_TEMPERATURE")); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse HADITH_FALLBACK_TEMPERATURE: %w", err)
		}
		cfg.FallbackTemperature = &parsed
	}

	cfg = applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = defaults.Addr
	}
	if strings.TrimSpace(cfg.SourceTemplate) == "" {
		cfg.SourceTemplate = defaults.SourceTemplate
	}
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = defaults.SourceTimeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaults.MaxResults
	}
	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = defaults.ModelTimeout
	}
	if cfg.ModelBurst <= 0 {
		cfg.ModelBurst = defaults.ModelBurst
	}
	if cfg.FallbackMaxTokens <= 0 {
		cfg.FallbackMaxTokens = defaults.FallbackMaxTokens
	}
	if cfg.CommentaryMaxTokens <= 0 {
		cfg.CommentaryMaxTokens = defaults.CommentaryMaxTokens
	}
	if cfg.BiographyMaxTokens <= 0 {
		cfg.BiographyMaxTokens = defaults.BiographyMaxTokens
	}
	return cfg
}

// Validate reports the first setting that cannot be served.
func (c Config) Validate() error {
	if !strings.Contains(c.SourceTemplate, "%s") {
		return fmt.Errorf("source template %q must contain %%s", c.SourceTemplate)
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("match threshold must be in (0,1], got %v", c.MatchThreshold)
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("rate limit max must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	if c.ModelRPS < 0 {
		return fmt.Errorf("model rps must be non-negative")
	}
	if c.CommentaryTemperature < 0 || c.CommentaryTemperature > 2 {
		return fmt.Errorf("commentary temperature must be in [0,2]")
	}
	if c.FallbackTemperature != nil && (*c.FallbackTemperature < 0 || *c.FallbackTemperature > 2) {
		return fmt.Errorf("fallback temperature must be in [0,2]")
	}
	return nil
}

func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	dur, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return dur, nil
}

func intEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return parsed, nil
}

func floatEnv(name string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return parsed, nil
}
