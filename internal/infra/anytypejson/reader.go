package anytypejson

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sleroq/anytype-to-markdown/internal/apperr"
	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

// ReadCorpus reads every *.json snapshot below inputDir in lexical walk order
// and builds the relation and option indexes. Files that cannot be decoded are
// logged and skipped.
func ReadCorpus(inputDir string, logger *slog.Logger) (anytypedomain.Corpus, error) {
	corpus := anytypedomain.Corpus{
		Relations: make(map[string]anytypedomain.RelationDef),
		Options:   make(map[string]anytypedomain.RelationOption),
	}

	info, err := os.Stat(inputDir)
	if err != nil {
		return corpus, fmt.Errorf("stat input dir: %w", err)
	}
	if !info.IsDir() {
		return corpus, fmt.Errorf("input path %s is not a directory", inputDir)
	}

	err = filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warn("skip unreadable path", slog.String("path", path), slog.String("error", walkErr.Error()))
			if d != nil && d.IsDir() && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		f, err := readSnapshot(path, logger)
		if err != nil {
			logger.Error("failed to decode snapshot", slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		corpus.Snapshots++
		addSnapshot(&corpus, path, f)
		return nil
	})
	if err != nil {
		return corpus, fmt.Errorf("walk input dir: %w", err)
	}

	if corpus.Snapshots == 0 {
		return corpus, fmt.Errorf("%w: no valid JSON files in %s", apperr.ErrCorpusUnreadable, inputDir)
	}
	logger.Info("read snapshot files", slog.Int("count", corpus.Snapshots), slog.Int("documents", len(corpus.Documents)))
	return corpus, nil
}

func addSnapshot(corpus *anytypedomain.Corpus, path string, f anytypedomain.SnapshotFile) {
	var data anytypedomain.SnapshotData
	if f.Snapshot.Data != nil {
		data = *f.Snapshot.Data
	}

	switch f.SbType {
	case anytypedomain.SbTypePage:
		id := asString(data.Details["id"])
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(path), ".json")
		}
		title := "Untitled"
		if name, ok := data.Details["name"]; ok && name != nil {
			title = asString(name)
		}
		corpus.Documents = append(corpus.Documents, anytypedomain.Document{
			ID:            id,
			Title:         title,
			SourcePath:    path,
			Details:       data.Details,
			RelationLinks: data.RelationLinks,
			Blocks:        data.Blocks,
		})

	case anytypedomain.SbTypeRelation:
		key := asString(data.Details["relationKey"])
		if key == "" {
			return
		}
		if _, exists := corpus.Relations[key]; exists {
			return
		}
		def := anytypedomain.RelationDef{
			ID:     asString(data.Details["id"]),
			Key:    key,
			Name:   key,
			Format: anytypedomain.RelationFormatUnset,
		}
		if name, ok := data.Details["name"].(string); ok {
			def.Name = name
		}
		if format, ok := asInt(data.Details["relationFormat"]); ok {
			def.Format = format
		}
		corpus.Relations[key] = def

	case anytypedomain.SbTypeRelationOption:
		id := asString(data.Details["id"])
		if id == "" {
			return
		}
		if _, exists := corpus.Options[id]; exists {
			return
		}
		opt := anytypedomain.RelationOption{ID: id, Name: id}
		if name, ok := data.Details["name"].(string); ok {
			opt.Name = name
		}
		corpus.Options[id] = opt
	}
}

func readSnapshot(path string, logger *slog.Logger) (anytypedomain.SnapshotFile, error) {
	var s anytypedomain.SnapshotFile
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read %s: %w", path, err)
	}

	if utf8.Valid(b) {
		err = json.Unmarshal(b, &s)
		if err == nil {
			return s, nil
		}
		logger.Warn("error decoding JSON with default encoding", slog.String("path", path), slog.String("error", err.Error()))
	} else {
		logger.Warn("file is not valid UTF-8", slog.String("path", path))
	}

	decoded, name, err := decodeFallback(b)
	if err != nil {
		return s, fmt.Errorf("convert %s to UTF-8: %w", path, err)
	}
	s = anytypedomain.SnapshotFile{}
	if err := json.Unmarshal(decoded, &s); err != nil {
		return s, fmt.Errorf("decode %s as %s: %w", path, name, err)
	}
	logger.Info("read file with detected encoding", slog.String("path", path), slog.String("encoding", name))
	return s, nil
}

// decodeFallback converts b to UTF-8. A byte order mark selects UTF-8 or
// UTF-16; without one the bytes are read as Windows-1252.
func decodeFallback(b []byte) ([]byte, string, error) {
	name := detectBOM(b)
	if name == "" {
		name = "windows-1252"
	}
	decoder := unicode.BOMOverride(charmap.Windows1252.NewDecoder())
	out, _, err := transform.Bytes(decoder, b)
	if err != nil {
		return nil, name, err
	}
	return out, name, nil
}

func detectBOM(b []byte) string {
	switch {
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return "utf-8"
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return "utf-16le"
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return "utf-16be"
	default:
		return ""
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		i, err := strconv.Atoi(t)
		return i, err == nil
	default:
		return 0, false
	}
}
