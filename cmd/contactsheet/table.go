package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. MaxWidth trims longer cells; zero leaves
// the column unbounded.
type column struct {
	Header   string
	Align    text.Align
	MaxWidth int
}

// rowHighlight picks a colour for a whole row, or nil to leave it plain.
type rowHighlight func(row []string) text.Colors

func renderTable(columns []column, rows [][]string, highlight rowHighlight) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.Header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       col.Align,
			AlignHeader: text.AlignLeft,
		}
		if col.MaxWidth > 0 {
			configs[i].WidthMax = col.MaxWidth
			configs[i].WidthMaxEnforcer = text.Trim
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	if highlight != nil {
		tw.SetRowPainter(table.RowPainter(func(row table.Row) text.Colors {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i], _ = cell.(string)
			}
			return highlight(cells)
		}))
	}

	return tw.Render()
}
