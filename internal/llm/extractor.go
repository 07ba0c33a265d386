package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/entity"
	"github.com/joseph-ayodele/docfacts/internal/telemetry"
)

// Options tune the model-backed extractor.
type Options struct {
	Temperature float32
	Lenient     bool // repair coercible responses before giving up
}

// ModelExtractor turns document text into records with one generative-model call.
type ModelExtractor struct {
	provider Provider
	opts     Options
	schema   map[string]any
	valid    *SchemaValidator
	log      *slog.Logger
	metrics  *telemetry.Metrics
}

// NewModelExtractor wraps provider, which may be nil when no credential is
// configured; ExtractRecords then reports ErrProviderUnavailable.
func NewModelExtractor(provider Provider, opts Options, logger *slog.Logger) *ModelExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	schema := BuildRecordsJSONSchema()
	valid, err := NewSchemaValidator(schema)
	if err != nil {
		panic(fmt.Sprintf("llm: records schema does not compile: %v", err))
	}
	return &ModelExtractor{
		provider: provider,
		opts:     opts,
		schema:   schema,
		valid:    valid,
		log:      logger,
		metrics:  telemetry.NewMetrics(),
	}
}

// Available reports whether a provider is configured.
func (e *ModelExtractor) Available() bool { return e.provider != nil }

// ExtractRecords asks the model for the records in text. When useAI is false
// or text is blank it returns no records without calling out. Every failure
// returns no records and an EXTRACTION_ERROR; nothing is retried.
func (e *ModelExtractor) ExtractRecords(ctx context.Context, text string, useAI bool) ([]entity.Record, error) {
	if !useAI || strings.TrimSpace(text) == "" {
		e.log.Debug("llm.extract.skip", "use_ai", useAI, "text_len", len(text))
		return nil, nil
	}
	if e.provider == nil {
		e.log.Error("llm.extract.no_provider")
		return nil, common.ExtractionError("model extraction", common.ErrProviderUnavailable)
	}

	rid := uuid.New().String()
	start := time.Now()
	provider := e.provider.Name()

	e.log.Info("llm.extract.start",
		"req_id", rid,
		"provider", provider,
		"model", e.provider.Model(),
		"temp", e.opts.Temperature,
		"text_len", len(text),
	)

	raw, err := e.provider.GenerateJSON(ctx, GenerateRequest{
		Prompt:      BuildPrompt(text),
		Schema:      e.schema,
		Temperature: e.opts.Temperature,
	})
	if err != nil {
		e.metrics.ObserveLLM(provider, "call_error", time.Since(start))
		e.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.ExtractionError("model call", fmt.Errorf("%w: %w", common.ErrModelCall, err))
	}

	records, err := e.decode(rid, raw)
	if err != nil {
		e.metrics.ObserveLLM(provider, "bad_response", time.Since(start))
		e.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.ExtractionError("model response", fmt.Errorf("%w: %v", common.ErrModelResponse, err))
	}

	e.metrics.ObserveLLM(provider, "ok", time.Since(start))
	e.log.Info("llm.extract.ok",
		"req_id", rid,
		"records", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}

// decode validates the raw model output against the schema, optionally
// repairing it first, and unmarshals the records.
func (e *ModelExtractor) decode(rid string, raw []byte) ([]entity.Record, error) {
	content := StripCodeFence(raw)
	if !json.Valid(content) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	if err := e.valid.Validate(content); err != nil {
		if !e.opts.Lenient {
			return nil, err
		}
		cleaned, changed, sErr := NormalizeAndSanitizeRecords(content, e.log)
		if sErr != nil {
			return nil, fmt.Errorf("%v (sanitize failed: %v)", err, sErr)
		}
		if vErr := e.valid.Validate(cleaned); vErr != nil {
			return nil, vErr
		}
		e.log.Warn("llm.extract.lenient_sanitize_applied", "req_id", rid, "changed", len(changed))
		content = cleaned
	}

	var out []entity.Record
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	return out, nil
}
