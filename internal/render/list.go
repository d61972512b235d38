package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mediashelf/internal/catalog"
)

// List renders records as a table, one row per record.
func List(w io.Writer, records []catalog.Record) error {
	if len(records) == 0 {
		return writeEmpty(w)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Title", "Year", "Type", "Status", "Rating", "Genres"})
	for _, rec := range records {
		status := ""
		if rec.Status != "" {
			status = StatusLabel(rec.Status)
		}
		tw.AppendRow(table.Row{ListTitle(rec), rec.Year, rec.Type, status, rec.Rating, rec.Genres})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 48, WidthMaxEnforcer: text.WrapSoft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 6, WidthMax: 32, WidthMaxEnforcer: text.WrapSoft},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
