package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

func mark(kind string, from, to int, param string) anytypedomain.TextMark {
	return anytypedomain.TextMark{Type: kind, Range: anytypedomain.TextMarkRange{From: from, To: to}, Param: param}
}

func TestFormatInlineText(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		marks []anytypedomain.TextMark
		want  string
	}{
		{name: "no marks", text: "plain", want: "plain"},
		{name: "bold", text: "hello world", marks: []anytypedomain.TextMark{mark("Bold", 0, 5, "")}, want: "**hello** world"},
		{
			name:  "sorted by start",
			text:  "hello world",
			marks: []anytypedomain.TextMark{mark("Italic", 6, 11, ""), mark("Bold", 0, 5, "")},
			want:  "**hello** *world*",
		},
		{
			name:  "link and strikethrough",
			text:  "see docs here",
			marks: []anytypedomain.TextMark{mark("Link", 4, 8, "https://x.io"), mark("Strikethrough", 9, 13, "")},
			want:  "see [docs](https://x.io) ~~here~~",
		},
		{
			name:  "overlapping ranges shift",
			text:  "abcdef",
			marks: []anytypedomain.TextMark{mark("Bold", 0, 4, ""), mark("Italic", 2, 6, "")},
			want:  "**abcd***ef*",
		},
		{
			name:  "unknown mark ignored",
			text:  "abc",
			marks: []anytypedomain.TextMark{mark("Mention", 0, 1, "obj"), mark("Underscored", 1, 2, "")},
			want:  "a_b_c",
		},
		{
			name:  "rune offsets",
			text:  "héllo wörld",
			marks: []anytypedomain.TextMark{mark("Bold", 6, 11, "")},
			want:  "héllo **wörld**",
		},
		{
			name:  "range past end is clamped",
			text:  "abc",
			marks: []anytypedomain.TextMark{mark("Bold", 1, 10, "")},
			want:  "a**bc**",
		},
		{
			name:  "reversed range repeats text",
			text:  "abcd",
			marks: []anytypedomain.TextMark{mark("Italic", 3, 1, "")},
			want:  "abc**bcd",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatInlineText(tc.text, tc.marks))
		})
	}
}

func TestFormatInlineTextDoesNotReorderInput(t *testing.T) {
	marks := []anytypedomain.TextMark{mark("Italic", 6, 11, ""), mark("Bold", 0, 5, "")}
	formatInlineText("hello world", marks)
	assert.Equal(t, "Italic", marks[0].Type)
}
