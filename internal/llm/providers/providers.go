// Package providers builds the configured llm.Provider.
package providers

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/llm"
	"github.com/joseph-ayodele/docfacts/internal/llm/gemini"
	"github.com/joseph-ayodele/docfacts/internal/llm/openai"
)

// New returns the provider named in cfg. Without a credential it returns a
// nil provider and an error wrapping ErrProviderUnavailable.
func New(cfg common.LLMConfig, logger *slog.Logger) (llm.Provider, error) {
	if cfg.APIKey == "" {
		return nil, common.ExtractionError("no credential for "+cfg.Provider, common.ErrProviderUnavailable)
	}
	switch cfg.Provider {
	case common.ProviderGemini, "":
		return gemini.NewClient(gemini.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	case common.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	default:
		return nil, common.ConfigError(fmt.Sprintf("unknown llm provider %q", cfg.Provider), common.ErrInvalidInput)
	}
}
