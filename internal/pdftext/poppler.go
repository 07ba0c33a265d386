package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/telemetry"
)

// PopplerReader shells out to poppler's pdftotext.
type PopplerReader struct {
	bin     string
	runner  Runner
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

func NewPopplerReader(bin string, logger *slog.Logger) *PopplerReader {
	if logger == nil {
		logger = slog.Default()
	}
	if bin == "" {
		bin = "pdftotext"
	}
	return &PopplerReader{bin: bin, runner: ExecRunner{Logger: logger}, logger: logger, metrics: telemetry.NewMetrics()}
}

func (r *PopplerReader) Read(ctx context.Context, src Source) (Document, error) {
	start := time.Now()

	path, cleanup, err := r.localPath(src)
	if err != nil {
		r.logger.Error("pdftext.read.input_error", "source", src.Name, "error", err)
		return Document{}, err
	}
	defer cleanup()

	// pdftotext -enc UTF-8 -eol unix <path> -
	out, errb, err := r.runner.Run(ctx, r.bin, "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		err = fmt.Errorf("%w: %s: %v: %s", common.ErrUnreadableDocument, r.bin, err, firstLine(errb, 512))
		r.logger.Error("pdftext.read.failed", "source", src.Name, "method", MethodPdftotext, "error", err)
		return Document{}, common.InputError("read "+src.Name, err)
	}

	return finish(r.logger, r.metrics, src, MethodPdftotext, splitPages(string(out)), start), nil
}

// localPath returns a filesystem path for src, spilling in-memory data to a
// temp file that cleanup removes.
func (r *PopplerReader) localPath(src Source) (string, func(), error) {
	noop := func() {}
	if src.Path != "" {
		if _, err := os.Stat(src.Path); err != nil {
			_, err = src.Bytes()
			return "", noop, err
		}
		return src.Path, noop, nil
	}

	f, err := os.CreateTemp("", "docfacts-*.pdf")
	if err != nil {
		return "", noop, common.InputError("spill upload", err)
	}
	cleanup := func() {
		if err := os.Remove(f.Name()); err != nil {
			r.logger.Warn("pdftext.tmp.remove_failed", "path", f.Name(), "error", err)
		}
	}
	if _, err := f.Write(src.Data); err != nil {
		_ = f.Close()
		cleanup()
		return "", noop, common.InputError("spill upload", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", noop, common.InputError("spill upload", err)
	}
	return f.Name(), cleanup, nil
}

// splitPages splits pdftotext output on the form feed it writes after each page.
func splitPages(out string) []string {
	if out == "" {
		return nil
	}
	pages := strings.Split(out, "\f")
	if strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	for i, p := range pages {
		pages[i] = strings.TrimSuffix(p, "\n")
	}
	return pages
}

// firstLine returns the first non-empty line of tool output, cut to max bytes.
func firstLine(b []byte, max int) string {
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > max {
			line = line[:max]
		}
		return line
	}
	return ""
}
