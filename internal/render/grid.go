package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mediashelf/internal/catalog"
)

const (
	cardInnerWidth = 26
	cardGap        = "  "
	defaultWidth   = 80
)

// Grid renders records as cards laid out in rows that fit width columns.
func Grid(w io.Writer, records []catalog.Record, width int) error {
	if len(records) == 0 {
		return writeEmpty(w)
	}
	if width <= 0 {
		width = defaultWidth
	}

	cards := make([][]string, len(records))
	for i, rec := range records {
		cards[i] = strings.Split(renderCard(rec), "\n")
	}
	cardWidth := text.RuneWidthWithoutEscSequences(cards[0][0])
	perRow := max(1, (width+len(cardGap))/(cardWidth+len(cardGap)))

	var b strings.Builder
	for start := 0; start < len(cards); start += perRow {
		row := cards[start:min(start+perRow, len(cards))]
		writeCardRow(&b, row, cardWidth)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderCard(rec catalog.Record) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendRow(table.Row{CardTitle(rec)})
	if sub := CardSubtitle(rec); sub != "" {
		tw.AppendRow(table.Row{sub})
	}
	tw.AppendRow(table.Row{Badges(rec)})
	if stars := Stars(rec.Rating); stars != "" {
		tw.AppendRow(table.Row{stars})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{
		Number:           1,
		WidthMin:         cardInnerWidth,
		WidthMax:         cardInnerWidth,
		WidthMaxEnforcer: text.WrapSoft,
	}})
	tw.Style().Options.SeparateRows = false
	return tw.Render()
}

func writeCardRow(b *strings.Builder, row [][]string, cardWidth int) {
	height := 0
	for _, card := range row {
		height = max(height, len(card))
	}
	blank := strings.Repeat(" ", cardWidth)
	for line := 0; line < height; line++ {
		parts := make([]string, len(row))
		for i, card := range row {
			if line < len(card) {
				parts[i] = text.Pad(card[line], cardWidth, ' ')
			} else {
				parts[i] = blank
			}
		}
		fmt.Fprintln(b, strings.TrimRight(strings.Join(parts, cardGap), " "))
	}
	b.WriteByte('\n')
}
