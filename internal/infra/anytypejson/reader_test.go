package anytypejson

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/sleroq/anytype-to-markdown/internal/apperr"
	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
	"github.com/sleroq/anytype-to-markdown/internal/logging"
)

func writeSnapshot(t *testing.T, path string, sbType string, details map[string]any, blocks []map[string]any) {
	t.Helper()
	data := map[string]any{"details": details}
	if blocks != nil {
		data["blocks"] = blocks
	}
	payload := map[string]any{
		"sbType":   sbType,
		"snapshot": map[string]any{"data": data},
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

func TestReadCorpusBuildsIndexes(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, filepath.Join(dir, "objects", "page.json"), "Page",
		map[string]any{"id": "page-1", "name": "Hello"},
		[]map[string]any{{"id": "root"}},
	)
	writeSnapshot(t, filepath.Join(dir, "relations", "a.json"), "STRelation",
		map[string]any{"id": "rel-1", "relationKey": "status", "name": "Status", "relationFormat": 3}, nil)
	writeSnapshot(t, filepath.Join(dir, "relations", "b.json"), "STRelation",
		map[string]any{"id": "rel-2", "relationKey": "status", "name": "Later", "relationFormat": 0}, nil)
	writeSnapshot(t, filepath.Join(dir, "relations", "c.json"), "STRelation",
		map[string]any{"relationKey": "note"}, nil)
	writeSnapshot(t, filepath.Join(dir, "relationsOptions", "o.json"), "STRelationOption",
		map[string]any{"id": "opt-1", "name": "Done"}, nil)
	writeSnapshot(t, filepath.Join(dir, "relationsOptions", "p.json"), "STRelationOption",
		map[string]any{"id": "opt-2"}, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o644))

	corpus, err := ReadCorpus(dir, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, 6, corpus.Snapshots)
	require.Len(t, corpus.Documents, 1)
	doc := corpus.Documents[0]
	assert.Equal(t, "page-1", doc.ID)
	assert.Equal(t, "Hello", doc.Title)
	assert.Len(t, doc.Blocks, 1)
	assert.Nil(t, doc.RelationLinks)

	assert.Equal(t, "Status", corpus.Relations["status"].Name)
	assert.Equal(t, 3, corpus.Relations["status"].Format)
	assert.Equal(t, "note", corpus.Relations["note"].Name)
	assert.Equal(t, anytypedomain.RelationFormatUnset, corpus.Relations["note"].Format)
	assert.False(t, corpus.Relations["note"].IsFreeText())

	assert.Equal(t, "Done", corpus.Options["opt-1"].Name)
	assert.Equal(t, "opt-2", corpus.Options["opt-2"].Name)
}

func TestReadCorpusDocumentDefaults(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, filepath.Join(dir, "nameless.json"), "Page", map[string]any{}, nil)

	corpus, err := ReadCorpus(dir, logging.Discard())
	require.NoError(t, err)
	require.Len(t, corpus.Documents, 1)
	assert.Equal(t, "nameless", corpus.Documents[0].ID)
	assert.Equal(t, "Untitled", corpus.Documents[0].Title)
	assert.Nil(t, corpus.Documents[0].Blocks)
}

func TestReadCorpusKeepsMissingRelationLinksDistinct(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.json": `{"sbType":"Page","snapshot":{"data":{"details":{"id":"a"},"relationLinks":[]}}}`,
		"b.json": `{"sbType":"Page","snapshot":{"data":{"details":{"id":"b"}}}}`,
		"c.json": `{"sbType":"Page","snapshot":{"data":{"details":{"id":"c"},"relationLinks":[{"key":"status"}]}}}`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	corpus, err := ReadCorpus(dir, logging.Discard())
	require.NoError(t, err)
	require.Len(t, corpus.Documents, 3)

	assert.NotNil(t, corpus.Documents[0].RelationLinks)
	assert.Empty(t, corpus.Documents[0].RelationLinks)
	assert.Nil(t, corpus.Documents[1].RelationLinks)
	assert.Equal(t, []anytypedomain.RelationLink{{Key: "status"}}, corpus.Documents[2].RelationLinks)
}

func TestReadCorpusEncodingFallback(t *testing.T) {
	dir := t.TempDir()
	doc := `{"sbType":"Page","snapshot":{"data":{"details":{"id":"x","name":"Café"},"blocks":[]}}}`

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_utf16.json"), []byte(utf16), 0o644))

	latin, err := charmap.Windows1252.NewEncoder().String(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_cp1252.json"), []byte(latin), 0o644))

	bom := append([]byte{0xEF, 0xBB, 0xBF}, []byte(doc)...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_bom.json"), bom, 0o644))

	corpus, err := ReadCorpus(dir, logging.Discard())
	require.NoError(t, err)
	require.Len(t, corpus.Documents, 3)
	for _, d := range corpus.Documents {
		assert.Equal(t, "Café", d.Title, d.SourcePath)
	}
}

func TestReadCorpusSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
	writeSnapshot(t, filepath.Join(dir, "ok.json"), "Page", map[string]any{"id": "ok"}, nil)

	corpus, err := ReadCorpus(dir, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 1, corpus.Snapshots)
	require.Len(t, corpus.Documents, 1)
	assert.Equal(t, "ok", corpus.Documents[0].ID)
}

func TestReadCorpusUnreadable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	_, err := ReadCorpus(dir, logging.Discard())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrCorpusUnreadable))

	_, err = ReadCorpus(filepath.Join(dir, "missing"), logging.Discard())
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperr.ErrCorpusUnreadable))
}
