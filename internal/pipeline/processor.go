// Package pipeline runs one document through Reader -> Extractor -> Table.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/cache"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/entity"
	"github.com/joseph-ayodele/docfacts/internal/extract"
	"github.com/joseph-ayodele/docfacts/internal/pdftext"
	"github.com/joseph-ayodele/docfacts/internal/telemetry"
)

// RunOptions select the strategy for one run.
type RunOptions struct {
	UseAI bool
	// Memo, when set, serves and stores model results for unchanged text.
	Memo *cache.Memo
}

// Issue is one reported, non-fatal problem of a run.
type Issue struct {
	Stage   common.Stage
	Message string
	Err     error
}

// Result is everything one run produced.
type Result struct {
	RunID    string
	Source   string
	Text     string
	Pages    int
	Strategy constants.Strategy
	Records  []entity.Record
	Table    entity.Table
	Issues   []Issue
	Cached   bool
	Duration time.Duration
}

// Empty reports whether the run produced no rows. Callers skip export then.
func (r Result) Empty() bool { return r.Table.IsEmpty() }

// Failed reports whether the document could not be read.
func (r Result) Failed() bool {
	for _, is := range r.Issues {
		if is.Stage == common.StageInput {
			return true
		}
	}
	return false
}

// Outcome summarizes the run for logs and metrics.
func (r Result) Outcome() constants.Outcome {
	switch {
	case r.Failed():
		return constants.OutcomeFailed
	case len(r.Issues) > 0:
		return constants.OutcomeDegraded
	case r.Empty():
		return constants.OutcomeEmpty
	default:
		return constants.OutcomeOK
	}
}

// Processor coordinates text reading then record extraction.
type Processor struct {
	Logger  *slog.Logger
	Reader  pdftext.Reader
	Pattern extract.RecordExtractor
	Model   extract.RecordExtractor
	// ModelScope namespaces memo keys, e.g. "gemini/gemini-2.5-flash".
	ModelScope string
	metrics    *telemetry.Metrics
}

func NewProcessor(logger *slog.Logger, reader pdftext.Reader, pattern, model extract.RecordExtractor, modelScope string) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:     logger,
		Reader:     reader,
		Pattern:    pattern,
		Model:      model,
		ModelScope: modelScope,
		metrics:    telemetry.NewMetrics(),
	}
}

// Run reads src, extracts records with the selected strategy and tabulates
// them. Problems are collected in Result.Issues; a read failure leaves the
// text empty and the run still completes with an empty table.
func (p *Processor) Run(ctx context.Context, src pdftext.Source, opts RunOptions) Result {
	start := time.Now()
	res := Result{
		RunID:    uuid.New().String(),
		Source:   src.Name,
		Strategy: constants.StrategyPattern,
	}
	if opts.UseAI {
		res.Strategy = constants.StrategyModel
	}
	log := common.LoggerFrom(ctx, p.Logger).With("run_id", res.RunID)

	// 1) read
	doc, err := p.read(ctx, src)
	if err != nil {
		log.Error("pipeline.read.failed", "source", src.Name, "error", err)
		res.Issues = append(res.Issues, Issue{Stage: common.StageInput, Message: err.Error(), Err: err})
	}
	res.Text = doc.Text
	res.Pages = doc.Pages

	// 2) extract
	records, cached, err := p.extract(ctx, res.Text, opts)
	if err != nil {
		for _, is := range issuesFrom(err) {
			log.Warn("pipeline.extract.issue", "strategy", res.Strategy, "error", is.Err)
			res.Issues = append(res.Issues, is)
		}
	}
	res.Records = records
	res.Cached = cached

	// 3) tabulate
	res.Table = entity.BuildTable(records)
	res.Duration = time.Since(start)

	p.metrics.ObserveRun(string(res.Strategy), string(res.Outcome()), res.Table.Len())
	log.Info("pipeline.run.done",
		"source", src.Name,
		"strategy", res.Strategy,
		"outcome", res.Outcome(),
		"pages", res.Pages,
		"records", res.Table.Len(),
		"issues", len(res.Issues),
		"cached", cached,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res
}
