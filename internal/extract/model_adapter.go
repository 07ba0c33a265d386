package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/entity"
)

// recordModel is the slice of llm.ModelExtractor the adapter needs.
type recordModel interface {
	ExtractRecords(ctx context.Context, text string, useAI bool) ([]entity.Record, error)
}

// ModelAdapter exposes a model-backed extractor as a RecordExtractor with the
// AI flag switched on.
type ModelAdapter struct {
	m recordModel
}

func NewModelAdapter(m recordModel, _ *slog.Logger) *ModelAdapter {
	return &ModelAdapter{m: m}
}

func (a *ModelAdapter) Extract(ctx context.Context, text string) ([]entity.Record, error) {
	return a.m.ExtractRecords(ctx, text, true)
}

func (a *ModelAdapter) Strategy() constants.Strategy { return constants.StrategyModel }
