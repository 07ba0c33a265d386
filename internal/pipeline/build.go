package pipeline

import (
	"errors"
	"log/slog"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/extract"
	"github.com/joseph-ayodele/docfacts/internal/llm"
	"github.com/joseph-ayodele/docfacts/internal/llm/providers"
	"github.com/joseph-ayodele/docfacts/internal/pdftext"
)

// Build wires a Processor from configuration. A missing model credential is
// not an error: the model strategy then reports ErrProviderUnavailable per run.
func Build(cfg *common.Config, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reader, err := pdftext.NewReader(cfg.Reader, logger)
	if err != nil {
		return nil, err
	}

	provider, err := providers.New(cfg.LLM, logger)
	if err != nil {
		if !errors.Is(err, common.ErrProviderUnavailable) {
			return nil, err
		}
		logger.Warn("pipeline.model.unavailable", "provider", cfg.LLM.Provider, "credential", cfg.CredentialName())
		provider = nil
	}

	model := llm.NewModelExtractor(provider, llm.Options{
		Temperature: cfg.LLM.Temperature,
		Lenient:     cfg.LLM.Lenient,
	}, logger)

	return NewProcessor(logger,
		reader,
		extract.NewPatternExtractor(nil, logger),
		extract.NewModelAdapter(model, logger),
		cfg.LLM.Provider+"/"+cfg.LLM.Model,
	), nil
}
