package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/papertrail/internal/arxiv"
	"github.com/Veraticus/papertrail/internal/common"
	"github.com/Veraticus/papertrail/internal/llm"
	"github.com/Veraticus/papertrail/internal/remote"
)

// SetDefaults registers default values for every key the commands read.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("arxiv.categories", arxiv.DefaultCategories)
	v.SetDefault("arxiv.max_results", 30)
	v.SetDefault("arxiv.timeout", 30*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// LoadLLM builds the language model configuration. The API key is read from
// viper first, then from the provider's conventional environment variable.
func LoadLLM(v *viper.Viper) (llm.Config, error) {
	cfg := llm.Config{
		Provider:    strings.ToLower(v.GetString("llm.provider")),
		Model:       v.GetString("llm.model"),
		BaseURL:     v.GetString("llm.base_url"),
		Timeout:     v.GetDuration("llm.timeout"),
		MaxTokens:   v.GetInt("llm.max_tokens"),
	}
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if v.IsSet("llm.temperature") {
		temperature := v.GetFloat64("llm.temperature")
		cfg.Temperature = &temperature
	}

	var keyName, envName string
	switch cfg.Provider {
	case "openai":
		keyName, envName = "llm.openai_api_key", "OPENAI_API_KEY"
	case "anthropic":
		keyName, envName = "llm.anthropic_api_key", "ANTHROPIC_API_KEY"
	default:
		return llm.Config{}, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}

	cfg.APIKey = v.GetString(keyName)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(envName)
	}
	if cfg.APIKey == "" {
		return llm.Config{}, common.NewUserError(
			fmt.Sprintf("%s API key not found in config (%s) or %s environment variable", cfg.Provider, keyName, envName),
			common.ErrMissingConfig)
	}

	cfg.Model = llm.ModelFor(cfg)
	return cfg, nil
}

// LoadGitHub builds the repository configuration.
func LoadGitHub(v *viper.Viper) (remote.Config, error) {
	cfg := remote.Config{
		Token:      v.GetString("github.token"),
		Repository: v.GetString("github.repository"),
		Branch:     v.GetString("github.branch"),
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}

	if cfg.Token == "" {
		return remote.Config{}, common.NewUserError(
			"please set the GITHUB_TOKEN environment variable", common.ErrMissingConfig)
	}
	if err := cfg.Validate(); err != nil {
		return remote.Config{}, common.NewUserError(
			"please set github.repository to owner/name", err)
	}

	return cfg, nil
}

// ArxivSettings holds the listing query settings and the per-run paper count.
type ArxivSettings struct {
	Fetcher    arxiv.Config
	MaxResults int
}

// LoadArxiv builds the listing configuration.
func LoadArxiv(v *viper.Viper) (ArxivSettings, error) {
	settings := ArxivSettings{
		Fetcher: arxiv.Config{
			BaseURL:    v.GetString("arxiv.base_url"),
			Categories: v.GetStringSlice("arxiv.categories"),
			Timeout:    v.GetDuration("arxiv.timeout"),
		},
		MaxResults: v.GetInt("arxiv.max_results"),
	}

	if settings.MaxResults <= 0 {
		return ArxivSettings{}, fmt.Errorf("%w: arxiv.max_results must be positive, got %d",
			common.ErrInvalidConfig, settings.MaxResults)
	}
	return settings, nil
}
