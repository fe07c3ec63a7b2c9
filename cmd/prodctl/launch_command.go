package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hancomics/prodboard/internal/domain/launch"
)

func newLaunchCommand(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "launch <category>",
		Short: "Show launch statuses for a category",
		Long:  "Categories: domestic-live, domestic-completed, overseas-live, overseas-completed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []launch.Entry
			if err := client.getJSON(cmd.Context(), "/launch/"+pathEscape(args[0]), &entries); err != nil {
				return err
			}

			var platforms []string
			if err := client.getJSON(cmd.Context(), "/launch/platforms", &platforms); err != nil {
				return err
			}

			headers := append([]string{"Title"}, platforms...)
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				row := make([]string, 0, len(headers))
				row = append(row, e.Title)
				for _, platform := range platforms {
					row = append(row, launchGlyph(e.Platforms[platform]))
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			return nil
		},
	}
}

func launchGlyph(status launch.Status) string {
	switch status {
	case launch.StatusLaunched:
		return "L"
	case launch.StatusPending:
		return "p"
	case launch.StatusRejected:
		return "x"
	default:
		return ""
	}
}
