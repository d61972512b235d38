package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mediashelf/internal/catalog"
)

const summaryWidth = 72

// Detail renders every populated field of rec.
func Detail(w io.Writer, rec catalog.Record) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	add := func(label, value string) {
		if value != "" {
			tw.AppendRow(table.Row{label, value})
		}
	}
	add("Year", rec.Year)
	add("Genres", rec.Genres)
	add("Tags", rec.Tags)
	if rec.Rating != "" {
		add("Rating", strings.TrimSpace(rec.Rating+"/10 "+Stars(rec.Rating)))
	}
	if rec.Status != "" {
		add("Status", StatusLabel(rec.Status))
	}
	if rec.Runtime != "" {
		add("Runtime", rec.Runtime+" min")
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: summaryWidth - 16, WidthMaxEnforcer: text.WrapSoft},
	})

	var b strings.Builder
	b.WriteString(DetailTitle(rec))
	b.WriteByte('\n')
	if tw.Length() > 0 {
		b.WriteString(tw.Render())
		b.WriteByte('\n')
	}
	if rec.Summary != "" {
		b.WriteByte('\n')
		b.WriteString(text.WrapSoft(rec.Summary, summaryWidth))
		b.WriteByte('\n')
	}
	if rec.Link != "" {
		b.WriteByte('\n')
		b.WriteString("Link: " + rec.Link)
		b.WriteByte('\n')
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}
