package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hancomics/prodboard/internal/domain/task"
)

func newTasksCommand(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks [date]",
		Short: "List daily tasks (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/tasks"
			if len(args) == 1 {
				path += "?date=" + pathEscape(args[0])
			}
			var tasks []task.DailyTask
			if err := client.getJSON(cmd.Context(), path, &tasks); err != nil {
				return err
			}

			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				done := " "
				if t.Completed {
					done = "x"
				}
				rows = append(rows, []string{
					t.ID,
					t.ProjectID,
					strconv.Itoa(t.ProcessID),
					strconv.Itoa(t.Episode),
					done,
					t.Note,
				})
			}
			out := renderTable(
				[]string{"ID", "Project", "Process", "Episode", "Done", "Note"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
