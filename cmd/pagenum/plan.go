package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/document"
	"github.com/jackzampolin/pagenum/internal/label"
	"github.com/jackzampolin/pagenum/internal/server/endpoints"
)

// verifyPlan checks that every roman label reads back as its number.
func verifyPlan(plan label.Plan, format label.Format) error {
	if format != label.FormatRomanLower && format != label.FormatRomanUpper {
		return nil
	}
	for _, in := range plan.Instructions {
		if in.Number < 1 || in.Number > 3999 {
			continue // shown as arabic
		}
		n, err := label.ParseRoman(in.Text)
		if err != nil {
			return fmt.Errorf("page %d: label %q: %w", in.PageIndex+1, in.Text, err)
		}
		if n != in.Number {
			return fmt.Errorf("page %d: label %q reads as %d, expected %d", in.PageIndex+1, in.Text, n, in.Number)
		}
	}
	return nil
}

func newPlanCmd() *cobra.Command {
	var (
		flags  *endpoints.OptionFlags
		verify bool
	)
	cmd := &cobra.Command{
		Use:   "plan <file.pdf>",
		Short: "Show where labels would be placed without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts, err := resolveOptions(cmd, flags)
			if err != nil {
				return err
			}
			data, err := readPDF(args[0])
			if err != nil {
				return err
			}

			doc, err := document.Load(ctx, document.NewPDFLoader(slog.Default()), data)
			if err != nil {
				return err
			}
			geoms, err := document.Geometries(doc)
			if err != nil {
				return err
			}

			plan := label.Build(geoms, opts)
			if verify {
				if err := verifyPlan(plan, opts.Format); err != nil {
					return err
				}
			}
			return api.Output(plan)
		},
	}
	flags = endpoints.AddOptionFlags(cmd)
	cmd.Flags().BoolVar(&verify, "verify", false, "check that roman labels read back as their numbers")
	return cmd
}

func init() {
	rootCmd.AddCommand(newPlanCmd())
}
