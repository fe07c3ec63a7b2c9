package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hancomics/prodboard/internal/domain/delivery"
)

func newDeliveryCommand(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "delivery <weekday>",
		Short: "Show the delivery worklist for a weekday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekday := strings.ToLower(args[0])
			var views []delivery.TitleView
			path := "/delivery/worklist?weekday=" + pathEscape(weekday)
			if err := client.getJSON(cmd.Context(), path, &views); err != nil {
				return err
			}

			rows := make([][]string, 0, len(views))
			for _, view := range views {
				if view.NoLaunches {
					rows = append(rows, []string{view.Title, string(view.DeliveryDay), "(no launched platforms)", ""})
					continue
				}
				for _, platform := range view.Platforms {
					rows = append(rows, []string{
						view.Title,
						string(view.DeliveryDay),
						platform.PlatformID,
						strconv.Itoa(platform.Count),
					})
				}
			}
			out := renderTable(
				[]string{"Title", "Day", "Platform", "Delivered"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
