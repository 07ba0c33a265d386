package extract

import (
	"context"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/entity"
)

// RecordExtractor is Stage 2: document text -> records (model or rules).
// Implementations return whatever records they managed to produce alongside
// any error; an error never invalidates the records already returned.
type RecordExtractor interface {
	Extract(ctx context.Context, text string) ([]entity.Record, error)
	Strategy() constants.Strategy
}
