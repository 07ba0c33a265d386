package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/telemetry"
)

// NativeReader decodes PDFs in-process with github.com/ledongthuc/pdf.
type NativeReader struct {
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

func NewNativeReader(logger *slog.Logger) *NativeReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &NativeReader{logger: logger, metrics: telemetry.NewMetrics()}
}

func (r *NativeReader) Read(ctx context.Context, src Source) (Document, error) {
	start := time.Now()
	data, err := src.Bytes()
	if err != nil {
		r.logger.Error("pdftext.read.input_error", "source", src.Name, "error", err)
		return Document{}, err
	}

	pages, err := nativePages(ctx, data)
	if err != nil {
		r.logger.Error("pdftext.read.failed", "source", src.Name, "method", MethodNative, "error", err)
		return Document{}, common.InputError("read "+src.Name, err)
	}
	return finish(r.logger, r.metrics, src, MethodNative, pages, start), nil
}

// nativePages returns the raw plain text of every page, "" for null pages.
// The PDF library panics on some malformed inputs; that is reported as an
// unreadable document.
func nativePages(ctx context.Context, data []byte) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("%w: pdf decoder panic: %v", common.ErrUnreadableDocument, rec)
		}
	}()

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", common.ErrUnreadableDocument)
	}
	rdr, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadableDocument, err)
	}

	n := rdr.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := rdr.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		txt, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", common.ErrUnreadableDocument, i, err)
		}
		pages = append(pages, txt)
	}
	return pages, nil
}
