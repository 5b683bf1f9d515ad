package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/pagenum/internal/api"
	"github.com/jackzampolin/pagenum/internal/label"
)

// formattedValue is one line of `pagenum format` output.
type formattedValue struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// formatValues renders each raw value as a label. Values that do not start
// with an integer are passed through.
func formatValues(values []string, format label.Format, total int) []formattedValue {
	out := make([]formattedValue, 0, len(values))
	for _, v := range values {
		out = append(out, formattedValue{Value: v, Label: label.FormatValue(v, format, total)})
	}
	return out
}

func newFormatCmd() *cobra.Command {
	var (
		format string
		total  int
	)
	cmd := &cobra.Command{
		Use:   "format <value>...",
		Short: "Show how page numbers render in a label format",
		Example: `  pagenum format 1 4 27 --format I,II,III
  pagenum format 3 --format 1/100 --total 12`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return api.Output(formatValues(args, label.Format(format), total))
		},
	}
	cmd.Flags().StringVar(&format, "format", string(label.FormatArabic), "label format: 1,2,3 | i,ii,iii | I,II,III | a,b,c | A,B,C | -1- | 1/100 | \"Page 1\"")
	cmd.Flags().IntVar(&total, "total", 1, "page count used by the 1/100 format")
	return cmd
}

func init() {
	rootCmd.AddCommand(newFormatCmd())
}
