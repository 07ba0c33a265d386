// Package pdftext turns a PDF source into the document text consumed by the
// extractors: every page's text in page order, each followed by a newline.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/telemetry"
)

// Reader method names, reported in Document.Method and metrics.
const (
	MethodNative    = "native"
	MethodPdftotext = "pdftotext"
)

// Source is a PDF given either as a filesystem path or as in-memory bytes.
type Source struct {
	Name string
	Path string
	Data []byte
}

// FromPath returns a Source backed by a file on disk.
func FromPath(path string) Source {
	return Source{Name: filepath.Base(path), Path: path}
}

// FromBytes returns a Source backed by an uploaded byte stream.
func FromBytes(name string, data []byte) Source {
	return Source{Name: name, Data: data}
}

// Bytes loads the source contents. A missing file is reported as ErrInputNotFound.
func (s Source) Bytes() ([]byte, error) {
	if s.Path == "" {
		return s.Data, nil
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.InputError("read "+s.Path, fmt.Errorf("%w: %s", common.ErrInputNotFound, s.Path))
		}
		return nil, common.InputError("read "+s.Path, err)
	}
	return b, nil
}

// Document is the text read from one PDF.
type Document struct {
	Text          string
	Pages         int
	PagesWithText int
	Method        string
	Duration      time.Duration
}

// Reader reads the text of a PDF. On failure it returns a zero Document
// (empty text) together with the error, so callers may carry on with an
// empty document.
type Reader interface {
	Read(ctx context.Context, src Source) (Document, error)
}

// NewReader picks the reader implementation configured in cfg.Kind.
func NewReader(cfg common.ReaderConfig, logger *slog.Logger) (Reader, error) {
	switch cfg.Kind {
	case "", common.ReaderNative:
		return NewNativeReader(logger), nil
	case common.ReaderPdftotext:
		return NewPopplerReader(cfg.PdftotextBin, logger), nil
	default:
		return nil, common.ConfigError(fmt.Sprintf("unknown pdf reader %q", cfg.Kind), common.ErrInvalidInput)
	}
}

// joinPages normalizes each page and concatenates the non-empty ones, each
// followed by "\n".
func joinPages(pages []string) (string, int) {
	var b strings.Builder
	withText := 0
	for _, p := range pages {
		p = Normalize(p)
		if p == "" {
			continue
		}
		b.WriteString(p)
		b.WriteString("\n")
		withText++
	}
	return b.String(), withText
}

func finish(logger *slog.Logger, metrics *telemetry.Metrics, src Source, method string, pages []string, start time.Time) Document {
	text, withText := joinPages(pages)
	doc := Document{
		Text:          text,
		Pages:         len(pages),
		PagesWithText: withText,
		Method:        method,
		Duration:      time.Since(start),
	}
	metrics.ObservePages(method, doc.Pages)
	logger.Info("pdftext.read.ok",
		"source", src.Name,
		"method", method,
		"pages", doc.Pages,
		"pages_with_text", withText,
		"chars", len(text),
		"elapsed_ms", doc.Duration.Milliseconds(),
	)
	return doc
}
