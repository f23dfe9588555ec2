package exportfs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	maxFilenameRunes = 150
	maxNameAttempts  = 1000
)

var errTooManyDuplicates = errors.New("too many duplicate filenames")

// Writer persists compiled notes into a single output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// WriteDocument writes content under a filename derived from title and returns
// the path written. Titles longer than the filename limit are kept in a
// title: frontmatter line.
func (w *Writer) WriteDocument(content, title string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if strings.TrimSpace(title) == "" {
		title = "untitled"
	}

	name, truncated := fileBaseName(title)
	if !strings.HasSuffix(strings.ToLower(name), ".md") {
		name += ".md"
	}
	content = w.rewriteFrontmatter(content, title, truncated)

	path, err := uniquePath(w.dir, name)
	if err != nil {
		w.logger.Error("Too many duplicate filenames, aborting.", slog.String("title", title))
		return "", err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		w.logger.Error("Error writing Markdown file", slog.String("title", title), slog.String("error", err.Error()))
		return w.writeFallback(content)
	}
	w.logger.Info("Markdown file created", slog.String("path", path))
	return path, nil
}

func (w *Writer) writeFallback(content string) (string, error) {
	path := filepath.Join(w.dir, "untitled.md")
	for counter := 1; exists(path); counter++ {
		if counter > maxNameAttempts {
			w.logger.Error("Too many fallback filenames, aborting.")
			return "", errTooManyDuplicates
		}
		path = filepath.Join(w.dir, fmt.Sprintf("untitled-%d.md", counter))
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		w.logger.Error("Failed to create fallback file", slog.String("error", err.Error()))
		return "", fmt.Errorf("write fallback file: %w", err)
	}
	w.logger.Info("Fallback Markdown file created", slog.String("path", path))
	return path, nil
}

// rewriteFrontmatter drops title: and original_filename: lines from a leading
// frontmatter block and adds the full title when the filename was truncated.
func (w *Writer) rewriteFrontmatter(content, title string, truncated bool) string {
	if !strings.HasPrefix(content, "---") {
		if truncated {
			return "---\ntitle: " + title + "\n---\n\n" + content
		}
		return content
	}

	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if lines[i] == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		w.logger.Error("Frontmatter is malformed or missing.")
		return content
	}

	frontmatter := make([]string, 0, end)
	if truncated {
		frontmatter = append(frontmatter, "title: "+title)
	}
	for _, line := range lines[1:end] {
		if strings.HasPrefix(line, "title:") || strings.HasPrefix(line, "original_filename:") {
			continue
		}
		frontmatter = append(frontmatter, line)
	}
	return "---\n" + strings.Join(frontmatter, "\n") + "\n---\n" + strings.Join(lines[end+1:], "\n")
}

// fileBaseName replaces characters that are not letters, digits, '_', '-', '.'
// or spaces and truncates the result.
func fileBaseName(title string) (string, bool) {
	safe := []rune(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' || r == '.' || r == ' ' {
			return r
		}
		return '_'
	}, title))

	if len(safe) <= maxFilenameRunes {
		return string(safe), false
	}
	return strings.TrimRightFunc(string(safe[:maxFilenameRunes]), unicode.IsSpace), true
}

func uniquePath(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; exists(path); counter++ {
		if counter > maxNameAttempts {
			return "", errTooManyDuplicates
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, counter, ext))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
