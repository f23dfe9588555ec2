package exporter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleroq/anytype-to-markdown/internal/apperr"
	"github.com/sleroq/anytype-to-markdown/internal/config"
	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
	"github.com/sleroq/anytype-to-markdown/internal/logging"
)

func newTestCompiler() *documentCompiler {
	return &documentCompiler{
		relations:   newRelationResolver(testCorpus(), true, nil, config.LinkModeSelect, logging.Discard()),
		attachments: newAttachmentRegistry(),
		logger:      logging.Discard(),
	}
}

func TestCompileMarkdown(t *testing.T) {
	doc := anytypedomain.Document{
		ID:            "page",
		Details:       map[string]any{"status": "opt-doing"},
		RelationLinks: links("status"),
		Blocks: []anytypedomain.Block{
			{ID: "page", ChildrenID: []string{"p"}},
			{ID: "p", Text: &anytypedomain.TextBlock{Text: "body"}},
		},
	}

	got, err := newTestCompiler().compileMarkdown(doc)
	require.NoError(t, err)
	assert.Equal(t, "---\nStatus: \"[[Doing]]\"\n---\n\nbody\n\n", got)
}

func TestCompileMarkdownWithoutRelations(t *testing.T) {
	doc := anytypedomain.Document{
		ID:            "page",
		Details:       map[string]any{},
		RelationLinks: []anytypedomain.RelationLink{},
		Blocks:        []anytypedomain.Block{{ID: "page", ChildrenID: []string{"p"}}, {ID: "p", Text: &anytypedomain.TextBlock{Text: "body"}}},
	}
	got, err := newTestCompiler().compileMarkdown(doc)
	require.NoError(t, err)
	assert.Equal(t, "---\n---\n\nbody\n\n", got)
}

func TestCompileMarkdownWithoutBlocks(t *testing.T) {
	doc := anytypedomain.Document{ID: "page", Details: map[string]any{"status": "opt-doing"}, RelationLinks: links("status")}
	got, err := newTestCompiler().compileMarkdown(doc)
	require.NoError(t, err)
	assert.Equal(t, "---\nStatus: \"[[Doing]]\"\n---\n\n", got)
}

func TestCompileMarkdownRejectsIncompleteDocuments(t *testing.T) {
	c := newTestCompiler()

	_, err := c.compileMarkdown(anytypedomain.Document{ID: "no-details", RelationLinks: links("status")})
	assert.True(t, errors.Is(err, apperr.ErrInvalidDocument))

	_, err = c.compileMarkdown(anytypedomain.Document{ID: "no-links", Details: map[string]any{}})
	assert.True(t, errors.Is(err, apperr.ErrInvalidDocument))
}
