package llm

import (
	"fmt"
	"strings"
)

// Default models per provider.
const (
	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultAnthropicModel = "claude-3-5-haiku-20241022"
)

// NewClient creates a raw LLM client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "":
		c, err := newOpenAIClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "anthropic":
		c, err := newAnthropicClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// ModelFor returns the model a client built from cfg will use.
func ModelFor(cfg Config) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	if strings.EqualFold(cfg.Provider, "anthropic") {
		return DefaultAnthropicModel
	}
	return DefaultOpenAIModel
}
