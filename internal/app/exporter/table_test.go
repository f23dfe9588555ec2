package exporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

func TestRenderTable(t *testing.T) {
	b := anytypedomain.Block{
		ID:      "tbl",
		Columns: []anytypedomain.TableColumn{{Name: "A"}, {Name: "B"}},
		Rows: []anytypedomain.TableRow{
			{Cells: []anytypedomain.TableCell{{Content: "1"}, {Content: "2"}}},
			{Cells: []anytypedomain.TableCell{{Content: "x|y"}, {Content: float64(3)}}},
		},
	}

	got := renderTable(b)
	assert.Equal(t, "|A|B|\n|---|---|\n|1|2|\n|x|y|3|\n", got)
	assert.Len(t, strings.Split(strings.TrimSuffix(got, "\n"), "\n"), 4)
}

func TestRenderTableWithoutRows(t *testing.T) {
	b := anytypedomain.Block{Columns: []anytypedomain.TableColumn{{Name: "Only"}, {Name: nil}}}
	assert.Equal(t, "|Only||\n|---|---|\n", renderTable(b))
}
