package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"contactsheet/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			var highlight rowHighlight
			if shouldColorize(out) {
				highlight = highlightFailedRuns
			}
			fmt.Fprintln(out, renderTable(historyColumns, historyRows(records, time.Now()), highlight))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of runs to show")
	return cmd
}

// historyStatusColumn indexes the Status cell in historyColumns rows.
const historyStatusColumn = 5

var historyColumns = []column{
	{Header: "ID", Align: text.AlignRight},
	{Header: "Started"},
	{Header: "Input", MaxWidth: 32},
	{Header: "Thumbs", Align: text.AlignRight},
	{Header: "Elapsed", Align: text.AlignRight},
	{Header: "Status"},
	{Header: "Detail", MaxWidth: 40},
}

func highlightFailedRuns(row []string) text.Colors {
	if len(row) > historyStatusColumn && row[historyStatusColumn] == string(history.StatusFailed) {
		return text.Colors{text.FgRed}
	}
	return nil
}

func historyRows(records []history.Record, now time.Time) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		detail := filepath.Base(rec.DocumentPath)
		if rec.Status == history.StatusFailed {
			detail = fmt.Sprintf("%s (%s)", rec.FailedStage, rec.ErrorKind)
		}
		rows = append(rows, []string{
			strconv.FormatInt(rec.ID, 10),
			humanize.RelTime(rec.StartedAt, now, "ago", "from now"),
			filepath.Base(rec.InputPath),
			strconv.Itoa(rec.Thumbnails),
			rec.Elapsed().Round(time.Second).String(),
			string(rec.Status),
			detail,
		})
	}
	return rows
}
