package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/export"
	"github.com/jackzampolin/pagenum/internal/label"
	"github.com/jackzampolin/pagenum/internal/server/endpoints"
	"github.com/jackzampolin/pagenum/internal/workspace"
)

// resolveOptions overlays command-line flags onto the configured numbering
// defaults.
func resolveOptions(cmd *cobra.Command, flags *endpoints.OptionFlags) (label.Options, error) {
	h, err := getHome()
	if err != nil {
		return label.Options{}, err
	}
	cfgMgr, err := loadConfig(h)
	if err != nil {
		return label.Options{}, err
	}
	_, opts, err := flags.Resolve(cmd, cfgMgr.Get().Numbering)
	return opts, err
}

// readPDF reads a local PDF, rejecting files that are not PDFs by name.
func readPDF(path string) ([]byte, error) {
	if err := workspace.ValidateUpload(path, ""); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func newStampCmd() *cobra.Command {
	var (
		flags *endpoints.OptionFlags
		out   string
		quiet bool
	)
	cmd := &cobra.Command{
		Use:   "stamp <file.pdf>",
		Short: "Add page numbers to a PDF",
		Long: `Add page numbers to a PDF and write the result.

Options not given on the command line come from the numbering section of
the config file. The output defaults to <name>_with_pagenums.pdf in the
exports directory under the pagenum home.

Examples:
  pagenum stamp report.pdf
  pagenum stamp thesis.pdf --format i,ii,iii --position bottom-center
  pagenum stamp deck.pdf --include-first-page=false --out deck-numbered.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := slog.Default()

			opts, err := resolveOptions(cmd, flags)
			if err != nil {
				return err
			}
			data, err := readPDF(args[0])
			if err != nil {
				return err
			}

			progress := func(done, total int) {
				if !quiet {
					fmt.Fprintf(os.Stderr, "\rLabeling page %d/%d", done, total)
					if done == total {
						fmt.Fprintln(os.Stderr)
					}
				}
			}

			exporter := export.New(document.NewPDFLoader(logger), logger)
			result, err := exporter.Run(ctx, filepath.Base(args[0]), data, opts, progress)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				h, err := getHome()
				if err != nil {
					return err
				}
				path = h.ExportPath(result.FileName)
			}
			if err := os.WriteFile(path, result.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Println(result.Message)
			fmt.Printf("Saved %s\n", path)
			return nil
		},
	}
	flags = endpoints.AddOptionFlags(cmd)
	cmd.Flags().StringVar(&out, "out", "", "output path")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print progress")
	return cmd
}

func init() {
	rootCmd.AddCommand(newStampCmd())
}
