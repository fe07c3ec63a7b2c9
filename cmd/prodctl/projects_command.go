package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hancomics/prodboard/internal/domain/project"
)

func newProjectsCommand(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var summaries []project.ProjectSummary
			if err := client.getJSON(cmd.Context(), "/projects", &summaries); err != nil {
				return err
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{
					s.ID,
					s.Title,
					string(s.Status),
					strconv.Itoa(s.EpisodeCount),
					strconv.Itoa(s.ProcessCount),
					s.LastModified.Format("2006-01-02 15:04"),
				})
			}
			out := renderTable(
				[]string{"ID", "Title", "Status", "Episodes", "Processes", "Modified"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newGridCommand(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "grid <project-id>",
		Short: "Render a project's status grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var proj project.Project
			if err := client.getJSON(cmd.Context(), "/projects/"+pathEscape(args[0]), &proj); err != nil {
				return err
			}

			colorize := shouldColorize(cmd.OutOrStdout())
			episodes := project.DisplayEpisodes(&proj)
			columns := gridColumns(proj.Processes)

			headers := make([]string, 0, len(columns)+1)
			headers = append(headers, "Ep")
			for _, col := range columns {
				headers = append(headers, col.header)
			}

			rows := make([][]string, 0, len(episodes))
			for _, ep := range episodes {
				row := make([]string, 0, len(columns)+1)
				row = append(row, strconv.Itoa(ep))
				for _, col := range columns {
					if col.disabled {
						row = append(row, disabledGlyph)
						continue
					}
					cell := proj.Grid.Get(col.processID, ep)
					row = append(row, statusGlyph(cell.Status, colorize))
				}
				rows = append(rows, row)
			}

			aligns := make([]columnAlignment, len(headers))
			aligns[0] = alignRight
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", proj.Title, proj.Status)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
}

// gridColumn is one process column in the grid view. Canonical ids the
// project lacks still get a column so every grid lines up, rendered as a
// disabled placeholder.
type gridColumn struct {
	processID int
	header    string
	disabled  bool
}

const disabledGlyph = "-"

func gridColumns(processes []project.Process) []gridColumn {
	byID := make(map[int]project.Process, len(processes))
	maxID := project.CanonicalProcessCount
	for _, p := range processes {
		byID[p.ID] = p
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	columns := make([]gridColumn, 0, maxID)
	for id := 1; id <= maxID; id++ {
		if p, ok := byID[id]; ok {
			columns = append(columns, gridColumn{processID: id, header: p.Name})
			continue
		}
		if id <= project.CanonicalProcessCount {
			columns = append(columns, gridColumn{processID: id, header: fmt.Sprintf("P%d", id), disabled: true})
		}
	}
	return columns
}

func statusGlyph(status project.CellStatus, colorize bool) string {
	var glyph, color string
	switch status {
	case project.StatusInProgress:
		glyph, color = "~", ansiYellow
	case project.StatusDone:
		glyph, color = "o", ansiGreen
	case project.StatusFinal:
		glyph, color = "*", ansiBlue
	default:
		glyph = "."
	}
	if colorize && color != "" {
		return color + glyph + ansiReset
	}
	return glyph
}
