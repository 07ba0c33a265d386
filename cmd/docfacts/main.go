// Command docfacts extracts key-value facts from one PDF into a spreadsheet.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docfacts/constants"
	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/export"
	"github.com/joseph-ayodele/docfacts/internal/pipeline"
)

var (
	configFile string
	provider   string
	model      string
	reader     string
	version    = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docfacts [pdf_path] [output_path] [use_ai]",
	Short: "Extract key-value facts from a PDF into an Excel workbook",
	Long: `docfacts reads a PDF, extracts {key, value, comments} records and writes
them to a single-sheet workbook.

Examples:
  # Defaults: "Data Input.pdf" -> Output.xlsx with model extraction
  docfacts

  # Rule-based extraction only
  docfacts resume.pdf out.xlsx false

  # Use OpenAI instead of Gemini
  docfacts --provider openai resume.pdf`,
	Version:       version,
	Args:          cobra.MaximumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (default $DOCFACTS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "model provider: gemini or openai (overrides LLM_PROVIDER)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model name (overrides LLM_MODEL)")
	rootCmd.PersistentFlags().StringVar(&reader, "reader", "", "pdf reader: native or pdftotext (overrides PDF_READER)")
	rootCmd.AddCommand(textCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	in, out, useAI := parseArgs(args)
	stdout := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	logger := common.NewLogger(cfg.Log, cmd.ErrOrStderr())

	proc, err := pipeline.Build(cfg, logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	fmt.Fprintln(stdout, "Initializing AI Document Extractor...")
	if useAI && !cfg.HasCredential() {
		fmt.Fprintf(stdout, "Warning: %s is not set; model extraction is unavailable.\n", cfg.CredentialName())
	}

	err = extractToFile(cmd.Context(), proc, export.NewService(logger), in, out, useAI, stdout)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %s\n", userError(err, in))
	}
	return err
}

// parseArgs applies the positional defaults. use_ai is true unless the third
// argument is given and is not "true" (any case).
func parseArgs(args []string) (in, out string, useAI bool) {
	in, out, useAI = constants.DefaultInputPath, constants.DefaultOutputPath, true
	if len(args) > 0 {
		in = args[0]
	}
	if len(args) > 1 {
		out = args[1]
	}
	if len(args) > 2 {
		useAI = strings.EqualFold(args[2], "true")
	}
	return in, out, useAI
}

// loadConfig maps the override flags onto their environment keys so they
// take the highest precedence, then loads and validates.
func loadConfig() (*common.Config, error) {
	for key, val := range map[string]string{
		"LLM_PROVIDER": provider,
		"LLM_MODEL":    model,
		"PDF_READER":   reader,
	} {
		if val != "" {
			if err := os.Setenv(key, val); err != nil {
				return nil, err
			}
		}
	}
	cfg, err := common.LoadConfig(common.LoadOptions{ConfigFile: configFile, EnvFiles: []string{".env"}})
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}
