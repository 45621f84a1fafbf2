package embedding

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/secrets"
)

// GeminiAPIKeyEnv is consulted when no key or key file is configured.
const GeminiAPIKeyEnv = "GEMINI_API_KEY"

type Config struct {
	Provider       string       `mapstructure:"provider" validate:"omitempty,oneof=gemini hash none"`
	MaxConcurrency int          `mapstructure:"max-concurrency" validate:"gte=0"`
	MaxLogLength   int          `mapstructure:"max-log-length" validate:"gte=0"`
	Gemini         GeminiConfig `mapstructure:"gemini"`
	Hash           HashConfig   `mapstructure:"hash"`
}

type GeminiConfig struct {
	Model      string `mapstructure:"model"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	BatchSize  int    `mapstructure:"batch-size" validate:"gte=0,lte=100"`
}

type HashConfig struct {
	Dimensions int `mapstructure:"dimensions" validate:"gte=0"`
}

// Open builds the provider described by cfg. It never fails: a provider that cannot
// be initialized is replaced by Unavailable and the reason is logged.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	provider, err := open(ctx, cfg, logger)
	if err != nil {
		logger.Warn("embedding provider unavailable, semantic matching disabled", zap.Error(err))
		return &Unavailable{Reason: err.Error()}
	}

	logger.Info("embedding provider ready",
		zap.String("provider", provider.Name()),
		zap.String("model", provider.Model()),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
	)

	return Limit(provider, cfg.MaxConcurrency)
}

func open(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" {
		name = ProviderGemini
	}

	switch name {
	case ProviderGemini:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
			Env:   GeminiAPIKeyEnv,
		})
		if err != nil {
			return nil, err
		}
		return NewGemini(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.BatchSize, cfg.MaxLogLength, logger)
	case ProviderHash:
		return NewHash(cfg.Hash.Dimensions), nil
	case ProviderNone:
		return nil, fmt.Errorf("provider is set to %q", ProviderNone)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
