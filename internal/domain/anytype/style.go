package anytype

import "strings"

type StyleKind int

const (
	StyleUnknown StyleKind = iota
	StyleNone
	StyleParagraph
	StyleHeader
	StyleMarked
	StyleNumbered
	StyleToggle
	StyleCheckbox
	StyleCode
	StyleEquation
	StyleTable
)

// Style is the parsed text style of a block. Level is set for headers, Raw keeps
// the original name so unknown styles can be reported.
type Style struct {
	Kind  StyleKind
	Level int
	Raw   string
}

func ParseStyle(raw string) Style {
	s := Style{Raw: raw}
	switch raw {
	case "", "Paragraph":
		s.Kind = StyleParagraph
	case "Marked":
		s.Kind = StyleMarked
	case "Numbered":
		s.Kind = StyleNumbered
	case "Toggle":
		s.Kind = StyleToggle
	case "Checkbox":
		s.Kind = StyleCheckbox
	case "Code":
		s.Kind = StyleCode
	case "Equation":
		s.Kind = StyleEquation
	case "Table":
		s.Kind = StyleTable
	default:
		if level, ok := headerLevel(raw); ok {
			s.Kind = StyleHeader
			s.Level = level
		}
	}
	return s
}

func headerLevel(raw string) (int, bool) {
	if !strings.HasPrefix(raw, "Header") || len(raw) != len("Header")+1 {
		return 0, false
	}
	d := raw[len(raw)-1]
	if d < '1' || d > '6' {
		return 0, false
	}
	return int(d - '0'), true
}

// Style returns the block's style. Blocks without a text payload are StyleNone
// unless they carry table columns.
func (b Block) Style() Style {
	if b.Text == nil {
		if len(b.Columns) > 0 {
			return Style{Kind: StyleTable, Raw: "Table"}
		}
		return Style{Kind: StyleNone}
	}
	return ParseStyle(b.Text.Style)
}
