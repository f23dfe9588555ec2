package exporter

import (
	"strings"

	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

// renderTable emits a pipe table. Cell text is written as is, pipes included.
func renderTable(b anytypedomain.Block) string {
	var buf strings.Builder

	header := make([]string, 0, len(b.Columns))
	separator := make([]string, 0, len(b.Columns))
	for _, col := range b.Columns {
		header = append(header, displayString(col.Name))
		separator = append(separator, "---")
	}
	buf.WriteString("|" + strings.Join(header, "|") + "|\n")
	buf.WriteString("|" + strings.Join(separator, "|") + "|\n")

	for _, row := range b.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, displayString(cell.Content))
		}
		buf.WriteString("|" + strings.Join(cells, "|") + "|\n")
	}
	return buf.String()
}
