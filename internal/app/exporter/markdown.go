package exporter

import (
	"log/slog"
	"strconv"
	"strings"

	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

type block = anytypedomain.Block

type blockRenderer struct {
	arena       map[string]block
	attachments AttachmentResolver
	logger      *slog.Logger
}

func newBlockRenderer(blocks []block, attachments AttachmentResolver, logger *slog.Logger) *blockRenderer {
	arena := make(map[string]block, len(blocks))
	for _, b := range blocks {
		if b.ID == "" {
			continue
		}
		arena[b.ID] = b
	}
	return &blockRenderer{arena: arena, attachments: attachments, logger: logger}
}

// renderBlocks renders the children of the first block, which is the document
// root. Top level numbered items share one counter that other blocks between
// them do not reset.
func renderBlocks(blocks []block, attachments AttachmentResolver, logger *slog.Logger) string {
	if len(blocks) == 0 {
		return ""
	}
	r := newBlockRenderer(blocks, attachments, logger)
	visited := make(map[string]struct{})

	var buf strings.Builder
	listNumber := 1
	for _, childID := range blocks[0].ChildrenID {
		child, ok := r.arena[childID]
		if !ok {
			continue
		}
		if _, done := visited[childID]; done {
			continue
		}
		buf.WriteString(r.render(&child, "", true, visited, 0, listNumber))
		if child.Style().Kind == anytypedomain.StyleNumbered {
			listNumber++
		}
	}
	return buf.String()
}

// render returns the Markdown for b and its subtree. Every block id is rendered
// at most once per visited set.
func (r *blockRenderer) render(b *block, parentIndent string, topLevel bool, visited map[string]struct{}, listLevel, listNumber int) string {
	if b == nil || b.ID == "" {
		return ""
	}
	if _, done := visited[b.ID]; done {
		return ""
	}
	visited[b.ID] = struct{}{}

	if b.IsOrganizational() {
		var buf strings.Builder
		for _, childID := range b.ChildrenID {
			child, ok := r.arena[childID]
			if !ok {
				continue
			}
			if _, done := visited[childID]; done {
				continue
			}
			buf.WriteString(r.render(&child, parentIndent, topLevel, visited, listLevel, listNumber))
		}
		return buf.String()
	}

	indent := ""
	if !topLevel {
		indent = parentIndent + ">"
	}

	content := ""
	if text := b.TextContent(); text != "" {
		content = formatInlineText(text, b.MarkList())
	}

	style := b.Style()
	kind := style.Kind
	if b.TextContent() == "" {
		switch {
		case b.File != nil:
			kind = anytypedomain.StyleNone
		case len(b.Columns) > 0:
			kind = anytypedomain.StyleTable
		}
	}

	var buf strings.Builder
	switch kind {
	case anytypedomain.StyleNumbered:
		buf.WriteString(strings.Repeat("  ", listLevel) + strconv.Itoa(listNumber) + ". " + content + "\n")
		for i, childID := range b.ChildrenID {
			child, ok := r.arena[childID]
			if !ok {
				continue
			}
			buf.WriteString(r.render(&child, parentIndent, false, visited, listLevel+1, i+1))
		}
		return buf.String()

	case anytypedomain.StyleHeader:
		buf.WriteString(indent + strings.Repeat("#", style.Level) + " " + content + "\n\n")
	case anytypedomain.StyleParagraph, anytypedomain.StyleToggle:
		if content != "" {
			buf.WriteString(applyIndent(indent, content) + "\n\n")
		}
	case anytypedomain.StyleMarked:
		buf.WriteString(applyIndent(indent, "- "+content) + "\n")
	case anytypedomain.StyleCode:
		lang := asString(b.Fields["lang"])
		buf.WriteString(applyIndent(indent, "```"+lang+"\n"+content+"\n```") + "\n")
	case anytypedomain.StyleCheckbox:
		glyph := "☐"
		if b.Text != nil && b.Text.Checked {
			glyph = "☒"
		}
		buf.WriteString(applyIndent(indent, glyph+" "+content) + "\n")
	case anytypedomain.StyleEquation:
		buf.WriteString(applyIndent(indent, "$$"+content+"$$") + "\n\n")
	default:
		switch {
		case b.File != nil:
			buf.WriteString(applyIndent(indent, r.attachments.ResolveAttachment(*b.File)) + "\n\n")
		case kind == anytypedomain.StyleTable:
			buf.WriteString(applyIndent(indent, renderTable(*b)) + "\n")
		default:
			r.logger.Warn("Unknown block type", slog.String("style", style.Raw), slog.String("block", b.ID))
			buf.WriteString(applyIndent(indent, content) + "\n\n")
		}
	}

	for _, childID := range b.ChildrenID {
		if childID == b.ID {
			continue
		}
		child, ok := r.arena[childID]
		if !ok {
			continue
		}
		if _, done := visited[childID]; done {
			continue
		}
		buf.WriteString(r.render(&child, indent, false, visited, 0, 1))
	}
	return buf.String()
}

// applyIndent prefixes every non-blank line with indent and drops blank lines.
// An empty indent leaves text untouched.
func applyIndent(indent, text string) string {
	if indent == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, indent+line)
	}
	return strings.Join(out, "\n")
}
