package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/dskvich/poml-examples/pkg/domain"
)

const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

type Config struct {
	OpenAI   OpenAI
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// OpenAI configures the vision completion client.
type OpenAI struct {
	APIKey      string        `env:"OPENAI_API_KEY"`
	Model       string        `env:"OPENAI_VISION_MODEL" envDefault:"gpt-4-vision-preview"`
	MaxTokens   int           `env:"OPENAI_MAX_TOKENS" envDefault:"300"`
	Endpoint    string        `env:"OPENAI_API_ENDPOINT"`
	HTTPTimeout time.Duration `env:"OPENAI_HTTP_TIMEOUT" envDefault:"0s"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	if cfg.OpenAI.Endpoint == "" {
		cfg.OpenAI.Endpoint = DefaultEndpoint
	}
	return cfg, nil
}

// Validate checks the settings the vision command cannot run without.
func (o OpenAI) Validate() error {
	if o.APIKey == "" {
		return domain.ErrMissingCredential
	}
	if o.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", o.MaxTokens)
	}
	if o.Endpoint == "" {
		return fmt.Errorf("API endpoint is empty")
	}
	return nil
}
