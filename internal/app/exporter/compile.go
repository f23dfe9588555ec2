package exporter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sleroq/anytype-to-markdown/internal/apperr"
	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

type documentCompiler struct {
	relations   *relationResolver
	attachments AttachmentResolver
	logger      *slog.Logger
}

// compileMarkdown assembles the frontmatter block and the rendered body of doc.
func (c *documentCompiler) compileMarkdown(doc anytypedomain.Document) (string, error) {
	if err := validateDocument(doc); err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.WriteString("---\n")
	for _, line := range c.relations.extractRelations(doc) {
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	buf.WriteString("---\n\n")
	buf.WriteString(renderBlocks(doc.Blocks, c.attachments, c.logger))
	return buf.String(), nil
}

func validateDocument(doc anytypedomain.Document) error {
	if doc.Details == nil {
		return fmt.Errorf("%w: %s has no details", apperr.ErrInvalidDocument, doc.ID)
	}
	if doc.RelationLinks == nil {
		return fmt.Errorf("%w: %s has no relationLinks", apperr.ErrInvalidDocument, doc.ID)
	}
	return nil
}
