package pipeline

import (
	"context"
	"errors"

	"github.com/joseph-ayodele/docfacts/internal/cache"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/entity"
	"github.com/joseph-ayodele/docfacts/internal/pdftext"
)

func (p *Processor) read(ctx context.Context, src pdftext.Source) (pdftext.Document, error) {
	if p.Reader == nil {
		return pdftext.Document{}, common.ConfigError("no pdf reader configured", common.ErrInvalidInput)
	}
	doc, err := p.Reader.Read(ctx, src)
	if err != nil {
		return pdftext.Document{}, err
	}
	return doc, nil
}

// extract runs the selected strategy. Model results go through the memo;
// only successful calls are stored.
func (p *Processor) extract(ctx context.Context, text string, opts RunOptions) ([]entity.Record, bool, error) {
	if !opts.UseAI {
		if p.Pattern == nil {
			return nil, false, nil
		}
		recs, err := p.Pattern.Extract(ctx, text)
		return recs, false, err
	}

	if p.Model == nil {
		return nil, false, common.ExtractionError("model extraction", common.ErrProviderUnavailable)
	}
	key := cache.KeyFrom(p.ModelScope, text)
	if recs, ok := opts.Memo.Get(key); ok {
		p.Logger.Debug("pipeline.memo.hit", "scope", p.ModelScope)
		return recs, true, nil
	}
	recs, err := p.Model.Extract(ctx, text)
	if err != nil {
		return nil, false, err
	}
	opts.Memo.Put(key, recs)
	return recs, false, nil
}

// issuesFrom splits joined errors so each failure is reported on its own.
// The stage comes from the outermost error that carries one.
func issuesFrom(err error) []Issue {
	stage := common.StageOf(err)
	if stage == common.StageUnknown {
		stage = common.StageExtraction
	}
	errs := []error{err}
	for e := err; e != nil; e = errors.Unwrap(e) {
		if j, ok := e.(interface{ Unwrap() []error }); ok {
			errs = j.Unwrap()
			break
		}
	}
	out := make([]Issue, 0, len(errs))
	for _, e := range errs {
		out = append(out, Issue{Stage: stage, Message: e.Error(), Err: e})
	}
	return out
}
