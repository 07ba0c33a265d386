package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/export"
	"github.com/joseph-ayodele/docfacts/internal/pdftext"
	"github.com/joseph-ayodele/docfacts/internal/pipeline"
)

const previewRows = 10

// extractToFile runs one document through the pipeline and saves the table
// to out. A missing or unreadable input ends the run before anything is written.
func extractToFile(ctx context.Context, proc *pipeline.Processor, exporter *export.Service, in, out string, useAI bool, w io.Writer) error {
	if _, err := os.Stat(in); err != nil {
		return common.InputError("open "+in, common.ErrInputNotFound)
	}

	fmt.Fprintln(w, "Extracting data from document...")
	res := proc.Run(ctx, pdftext.FromPath(in), pipeline.RunOptions{UseAI: useAI})
	for _, is := range res.Issues {
		if is.Stage == common.StageInput {
			return is.Err
		}
		fmt.Fprintf(w, "Warning: %s\n", is.Message)
	}

	if res.Empty() {
		fmt.Fprintln(w, "No data extracted. Skipping Excel save.")
	} else {
		if err := exporter.SaveXLSX(ctx, res.Table, out); err != nil {
			return err
		}
		fmt.Fprintf(w, "Data successfully extracted and saved to %s\n", out)
		fmt.Fprintf(w, "Total records extracted: %d\n", res.Table.Len())
	}

	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\nEXTRACTION COMPLETE\n%s\n", rule, rule)
	fmt.Fprintln(w, "\nPreview of extracted data:")
	renderPreview(w, res.Table, previewRows)
	fmt.Fprintf(w, "\n... (%d total records)\n", res.Table.Len())
	return nil
}

func userError(err error, in string) string {
	if errors.Is(err, common.ErrInputNotFound) {
		return "The specified PDF file was not found at path: " + in
	}
	return err.Error()
}
