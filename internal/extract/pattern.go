package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/entity"
)

// PatternExtractor applies a rule catalog to document text.
type PatternExtractor struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewPatternExtractor returns an extractor over catalog, or over
// DefaultCatalog when catalog is empty.
func NewPatternExtractor(catalog Catalog, logger *slog.Logger) *PatternExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	return &PatternExtractor{catalog: catalog, logger: logger}
}

func (e *PatternExtractor) Strategy() constants.Strategy { return constants.StrategyPattern }

// Extract runs every rule in catalog order and concatenates their records.
// Blank text yields no records at all. A failing rule contributes nothing;
// its error is joined into the returned error and the remaining rules still run.
func (e *PatternExtractor) Extract(ctx context.Context, text string) ([]entity.Record, error) {
	if strings.TrimSpace(text) == "" {
		e.logger.Debug("pattern.extract.skip", "reason", "empty_text")
		return nil, nil
	}

	start := time.Now()
	var (
		records []entity.Record
		errs    []error
		matched int
	)
	for _, r := range e.catalog {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		out, err := r.Apply(text)
		if err != nil {
			e.logger.Warn("pattern.rule.failed", "rule", r.Name, "section", r.Section, "error", err)
			errs = append(errs, fmt.Errorf("%w: rule %s: %v", common.ErrRuleFailed, r.Name, err))
			continue
		}
		if len(out) > 0 {
			matched++
		}
		records = append(records, out...)
	}

	e.logger.Info("pattern.extract.done",
		"rules", len(e.catalog),
		"matched", matched,
		"failed", len(errs),
		"records", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if len(errs) > 0 {
		return records, common.ExtractionError("pattern extraction", errors.Join(errs...))
	}
	return records, nil
}
