package exporter

import (
	"sort"

	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

// formatInlineText inserts Markdown delimiters for marks in order of their
// start offset. Each insertion shifts the following marks by the number of
// characters already added, so overlapping ranges nest unevenly.
func formatInlineText(text string, marks []anytypedomain.TextMark) string {
	if len(marks) == 0 {
		return text
	}

	sorted := make([]anytypedomain.TextMark, len(marks))
	copy(sorted, marks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Range.From < sorted[j].Range.From })

	runes := []rune(text)
	offset := 0
	for _, mark := range sorted {
		start := mark.Range.From + offset
		end := mark.Range.To + offset

		var opening, closing string
		switch mark.Type {
		case "Bold":
			opening, closing = "**", "**"
		case "Italic":
			opening, closing = "*", "*"
		case "Underscored":
			opening, closing = "_", "_"
		case "Strikethrough":
			opening, closing = "~~", "~~"
		case "Link":
			opening, closing = "[", "]("+mark.Param+")"
		default:
			continue
		}

		runes = wrapRange(runes, start, end, opening, closing)
		offset += len([]rune(opening)) + len([]rune(closing))
	}
	return string(runes)
}

// wrapRange returns head + opening + middle + closing + tail where the parts
// are cut at start and end after clamping both to the slice. An end before
// start yields an empty middle and lets head and tail overlap.
func wrapRange(runes []rune, start, end int, opening, closing string) []rune {
	start = clampIndex(start, len(runes))
	end = clampIndex(end, len(runes))

	var middle []rune
	if end > start {
		middle = runes[start:end]
	}

	out := make([]rune, 0, len(runes)+len(opening)+len(closing)+len(middle))
	out = append(out, runes[:start]...)
	out = append(out, []rune(opening)...)
	out = append(out, middle...)
	out = append(out, []rune(closing)...)
	out = append(out, runes[end:]...)
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
