package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/preview"
	"github.com/jackzampolin/pagenum/internal/render"
	"github.com/jackzampolin/pagenum/internal/server/endpoints"
)

func newPreviewCmd() *cobra.Command {
	var (
		flags *endpoints.OptionFlags
		page  int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "preview <file.pdf>",
		Short: "Render one labeled page to PNG",
		Long: `Render one page of the labeled document to a PNG without writing the PDF.

Requires pdftoppm (poppler-utils) on PATH or configured as preview.pdftoppm.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := slog.Default()

			h, err := getHome()
			if err != nil {
				return err
			}
			cfgMgr, err := loadConfig(h)
			if err != nil {
				return err
			}
			cfg := cfgMgr.Get()

			_, opts, err := flags.Resolve(cmd, cfg.Numbering)
			if err != nil {
				return err
			}
			data, err := readPDF(args[0])
			if err != nil {
				return err
			}

			scratch := cfg.Preview.ScratchDir
			if scratch == "" {
				scratch = h.ScratchDir()
			}
			renderer := render.NewPdftoppm(render.PdftoppmConfig{
				Binary:     cfg.Preview.PdftoppmPath(),
				ScratchDir: scratch,
				Logger:     logger,
			})
			if !renderer.Available() {
				return fmt.Errorf("%s not found, install poppler-utils or set preview.pdftoppm", cfg.Preview.PdftoppmPath())
			}

			session, err := preview.New(preview.Config{
				Source:     data,
				Loader:     document.NewPDFLoader(logger),
				Rasterizer: renderer,
				Scale:      cfg.Preview.Scale,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			defer session.Close()

			if err := session.Rebuild(ctx, opts); err != nil {
				return err
			}
			if page > 1 {
				if err := session.GoTo(ctx, page-1); err != nil {
					return err
				}
			}

			frame := session.Frame()
			if out == "" {
				out = fmt.Sprintf("page-%d.png", frame.PageNum)
			}
			if err := os.WriteFile(out, frame.PNG, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			snap := session.Snapshot()
			fmt.Printf("Saved page %d of %d (%dx%d) to %s\n", frame.PageNum, snap.PageCount, frame.Width, frame.Height, out)
			return nil
		},
	}
	flags = endpoints.AddOptionFlags(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "page to render (1-based)")
	cmd.Flags().StringVar(&out, "out", "", "output path (default: page-<n>.png)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newPreviewCmd())
}
