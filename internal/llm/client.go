package llm

import (
	"context"
	"time"
)

// Client defines the interface for LLM providers.
type Client interface {
	// Complete sends one system+user exchange and returns the raw reply text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds configuration for an LLM client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature *float64 // nil selects DefaultTemperature
	MaxTokens   int
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return 60 * time.Second
	}
	return c.Timeout
}

// DefaultTemperature is the sampling temperature used when none is configured.
const DefaultTemperature = 0.3

func (c Config) temperatureOrDefault() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

func (c Config) maxTokensOrDefault() int {
	if c.MaxTokens == 0 {
		return 300
	}
	return c.MaxTokens
}
