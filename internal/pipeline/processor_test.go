package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/cache"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/entity"
	"github.com/joseph-ayodele/docfacts/internal/extract"
	"github.com/joseph-ayodele/docfacts/internal/pdftext"
)

type stubReader struct {
	doc pdftext.Document
	err error
}

func (r stubReader) Read(context.Context, pdftext.Source) (pdftext.Document, error) {
	return r.doc, r.err
}

type countingExtractor struct {
	strategy constants.Strategy
	records  []entity.Record
	err      error
	calls    int
	texts    []string
}

func (e *countingExtractor) Extract(_ context.Context, text string) ([]entity.Record, error) {
	e.calls++
	e.texts = append(e.texts, text)
	if e.err != nil {
		return e.records, e.err
	}
	return e.records, nil
}

func (e *countingExtractor) Strategy() constants.Strategy { return e.strategy }

func textDoc(s string) stubReader {
	return stubReader{doc: pdftext.Document{Text: s, Pages: 1, PagesWithText: 1}}
}

func TestRun_PatternStrategy(t *testing.T) {
	pattern := &countingExtractor{strategy: constants.StrategyPattern, records: []entity.Record{
		entity.NewRecord("First Name", "Vijay"),
		entity.NewRecord("Last Name", "Kumar"),
	}}
	model := &countingExtractor{strategy: constants.StrategyModel}
	p := NewProcessor(nil, textDoc("Vijay Kumar\n"), pattern, model, "gemini/m")

	res := p.Run(context.Background(), pdftext.FromBytes("doc.pdf", []byte("%PDF")), RunOptions{UseAI: false})

	assert.Equal(t, constants.StrategyPattern, res.Strategy)
	assert.Equal(t, "doc.pdf", res.Source)
	assert.Equal(t, "Vijay Kumar\n", res.Text)
	assert.Equal(t, 1, pattern.calls)
	assert.Equal(t, 0, model.calls)
	require.Equal(t, 2, res.Table.Len())
	assert.Equal(t, 1, res.Table.Rows[0].Seq)
	assert.Equal(t, "Kumar", res.Table.Rows[1].Value)
	assert.Empty(t, res.Issues)
	assert.False(t, res.Empty())
	assert.Equal(t, constants.OutcomeOK, res.Outcome())
	assert.NotEmpty(t, res.RunID)
}

func TestRun_ReadFailureYieldsEmptyTable(t *testing.T) {
	readErr := common.InputError("read broken.pdf", common.ErrUnreadableDocument)
	pattern := &countingExtractor{strategy: constants.StrategyPattern}
	p := NewProcessor(nil, stubReader{err: readErr}, pattern, nil, "")

	res := p.Run(context.Background(), pdftext.FromBytes("broken.pdf", nil), RunOptions{})

	require.Len(t, res.Issues, 1)
	assert.Equal(t, common.StageInput, res.Issues[0].Stage)
	assert.ErrorIs(t, res.Issues[0].Err, common.ErrUnreadableDocument)
	assert.Equal(t, []string{""}, pattern.texts)
	assert.Empty(t, res.Text)
	assert.True(t, res.Empty())
	assert.True(t, res.Failed())
	assert.Equal(t, constants.OutcomeFailed, res.Outcome())
}

func TestRun_ModelResultsAreMemoized(t *testing.T) {
	model := &countingExtractor{strategy: constants.StrategyModel, records: []entity.Record{
		entity.NewRecord("Employer", "Acme"),
	}}
	p := NewProcessor(nil, textDoc("Acme\n"), nil, model, "gemini/m")
	memo := cache.NewMemo()
	src := pdftext.FromBytes("doc.pdf", []byte("%PDF"))

	first := p.Run(context.Background(), src, RunOptions{UseAI: true, Memo: memo})
	second := p.Run(context.Background(), src, RunOptions{UseAI: true, Memo: memo})

	assert.Equal(t, 1, model.calls)
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Table, second.Table)
	assert.Equal(t, constants.StrategyModel, second.Strategy)
	assert.Equal(t, 1, memo.Hits())

	memo.Clear()
	p.Run(context.Background(), src, RunOptions{UseAI: true, Memo: memo})
	assert.Equal(t, 2, model.calls)
}

func TestRun_ModelFailureIsNotMemoized(t *testing.T) {
	callErr := common.ExtractionError("model call", common.ErrModelCall)
	model := &countingExtractor{strategy: constants.StrategyModel, err: callErr}
	p := NewProcessor(nil, textDoc("Acme\n"), nil, model, "gemini/m")
	memo := cache.NewMemo()
	src := pdftext.FromBytes("doc.pdf", []byte("%PDF"))

	res := p.Run(context.Background(), src, RunOptions{UseAI: true, Memo: memo})
	require.Len(t, res.Issues, 1)
	assert.Equal(t, common.StageExtraction, res.Issues[0].Stage)
	assert.ErrorIs(t, res.Issues[0].Err, common.ErrModelCall)
	assert.True(t, res.Empty())
	assert.Equal(t, constants.OutcomeDegraded, res.Outcome())

	p.Run(context.Background(), src, RunOptions{UseAI: true, Memo: memo})
	assert.Equal(t, 2, model.calls)
	assert.Equal(t, 0, memo.Len())
}

func TestRun_MemoKeyedByText(t *testing.T) {
	model := &countingExtractor{strategy: constants.StrategyModel}
	memo := cache.NewMemo()
	src := pdftext.FromBytes("doc.pdf", []byte("%PDF"))

	NewProcessor(nil, textDoc("one\n"), nil, model, "gemini/m").Run(context.Background(), src, RunOptions{UseAI: true, Memo: memo})
	NewProcessor(nil, textDoc("two\n"), nil, model, "gemini/m").Run(context.Background(), src, RunOptions{UseAI: true, Memo: memo})

	assert.Equal(t, 2, model.calls)
	assert.Equal(t, 2, memo.Len())
}

func TestRun_RuleFailuresReportedSeparately(t *testing.T) {
	joined := common.ExtractionError("pattern extraction", errors.Join(
		errors.New("rule a: bad date"),
		errors.New("rule b: bad date"),
	))
	pattern := &countingExtractor{
		strategy: constants.StrategyPattern,
		records:  []entity.Record{entity.NewRecord("First Name", "Vijay")},
		err:      joined,
	}
	p := NewProcessor(nil, textDoc("Vijay\n"), pattern, nil, "")

	res := p.Run(context.Background(), pdftext.FromBytes("doc.pdf", []byte("%PDF")), RunOptions{})

	require.Len(t, res.Issues, 2)
	assert.Equal(t, "rule a: bad date", res.Issues[0].Message)
	assert.Equal(t, common.StageExtraction, res.Issues[1].Stage)
	assert.Equal(t, 1, res.Table.Len())
	assert.Equal(t, constants.OutcomeDegraded, res.Outcome())
}

func TestRun_NoModelConfigured(t *testing.T) {
	p := NewProcessor(nil, textDoc("text\n"), nil, nil, "")

	res := p.Run(context.Background(), pdftext.FromBytes("doc.pdf", []byte("%PDF")), RunOptions{UseAI: true})

	require.Len(t, res.Issues, 1)
	assert.ErrorIs(t, res.Issues[0].Err, common.ErrProviderUnavailable)
	assert.True(t, res.Empty())
}

func TestRun_WithDefaultCatalog(t *testing.T) {
	text := "Vijay Kumar was born on March 15, 1989, in Jaipur, Rajasthan\n"
	p := NewProcessor(nil, textDoc(text), extract.NewPatternExtractor(nil, nil), nil, "")

	res := p.Run(context.Background(), pdftext.FromBytes("doc.pdf", []byte("%PDF")), RunOptions{})

	values := map[string]string{}
	for _, r := range res.Records {
		if _, seen := values[r.Key]; !seen {
			values[r.Key] = r.Value
		}
	}
	assert.Equal(t, "Vijay", values["First Name"])
	assert.Equal(t, "Kumar", values["Last Name"])
	assert.Equal(t, "15-Mar-89", values["Date of Birth"])
	assert.Equal(t, "Jaipur", values["Birth City"])
	assert.Equal(t, "Rajasthan", values["Birth State"])
	assert.Equal(t, len(res.Records), res.Table.Len())
}

func TestBuild_WithoutCredential(t *testing.T) {
	cfg := &common.Config{
		LLM:    common.LLMConfig{Provider: common.ProviderGemini, Model: "gemini-2.5-flash", Lenient: true},
		Reader: common.ReaderConfig{Kind: common.ReaderNative},
		Server: common.ServerConfig{Addr: ":0", MaxUploadMB: 1},
	}
	p, err := Build(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "gemini/gemini-2.5-flash", p.ModelScope)

	p.Reader = textDoc("some text\n")
	res := p.Run(context.Background(), pdftext.FromBytes("doc.pdf", []byte("%PDF")), RunOptions{UseAI: true, Memo: cache.NewMemo()})
	require.Len(t, res.Issues, 1)
	assert.ErrorIs(t, res.Issues[0].Err, common.ErrProviderUnavailable)
}

func TestBuild_RejectsUnknownReader(t *testing.T) {
	cfg := &common.Config{
		LLM:    common.LLMConfig{Provider: common.ProviderGemini},
		Reader: common.ReaderConfig{Kind: "ocr"},
		Server: common.ServerConfig{MaxUploadMB: 1},
	}
	_, err := Build(cfg, nil)
	assert.Equal(t, common.StageConfig, common.StageOf(err))
}
