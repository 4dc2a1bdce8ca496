package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/services/whisper"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "models",
		Short:       "List available model sizes and their trade-offs",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := whisper.Specs()
			rows := make([][]string, 0, len(specs))
			for _, spec := range specs {
				rows = append(rows, []string{
					string(spec.Model),
					spec.Parameters,
					spec.Memory,
					spec.RelativeSpeed,
					spec.Notes,
				})
			}
			headers := []string{"Model", "Parameters", "Memory", "Relative speed", "Notes"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
			return nil
		},
	}
}
