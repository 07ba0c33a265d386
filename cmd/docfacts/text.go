package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/pdftext"
)

// textCmd prints the raw document text, the same text the extractors see.
var textCmd = &cobra.Command{
	Use:   "text [pdf_path]",
	Short: "Print the raw text read from a PDF",
	Long: `Print the text the extractors would receive for a PDF.

Examples:
  docfacts text "Data Input.pdf"
  docfacts text --reader pdftotext scan.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runText,
}

func runText(cmd *cobra.Command, args []string) error {
	in := constants.DefaultInputPath
	if len(args) > 0 {
		in = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	logger := common.NewLogger(cfg.Log, cmd.ErrOrStderr())

	rd, err := pdftext.NewReader(cfg.Reader, logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	if err := printText(cmd.Context(), rd, in, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", userError(err, in))
		return err
	}
	return nil
}

// printText writes the document text to w and a one-line summary to status.
func printText(ctx context.Context, rd pdftext.Reader, in string, w, status io.Writer) error {
	start := time.Now()
	doc, err := rd.Read(ctx, pdftext.FromPath(in))
	if err != nil {
		return err
	}
	if doc.Text == "" {
		fmt.Fprintln(status, "Raw text was empty (check PDF readability).")
		return nil
	}
	_, err = io.WriteString(w, doc.Text)
	if err == nil {
		fmt.Fprintf(status, "%d pages, %d with text, %s reader, %dms\n",
			doc.Pages, doc.PagesWithText, doc.Method, time.Since(start).Milliseconds())
	}
	return err
}
