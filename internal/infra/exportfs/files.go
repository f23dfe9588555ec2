package exportfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

const copyWorkers = 4

var attachmentNameReplacer = strings.NewReplacer("/", "_", `\`, "_")

// CopyResult counts the outcome of CopyAttachments.
type CopyResult struct {
	Copied  int
	Missing int
	Failed  int
}

// AttachmentFileName is the name an attachment gets inside the attachments
// directory. Path separators are replaced so the result is one path element.
func AttachmentFileName(hash, name string) string {
	return attachmentNameReplacer.Replace(hash + "_" + name)
}

func validHash(hash string) bool {
	return hash != "" && hash != "." && hash != ".." && !strings.ContainsAny(hash, `/\`)
}

// within reports whether path stays inside dir after cleaning.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// CopyAttachments copies srcDir/<hash> to dstDir/AttachmentFileName(hash, name)
// for every pending attachment. Missing sources and failed copies are logged and
// counted; only cancellation of ctx stops the run.
func CopyAttachments(ctx context.Context, srcDir, dstDir string, pending map[string]string, logger *slog.Logger) (CopyResult, error) {
	if len(pending) == 0 {
		return CopyResult{}, nil
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return CopyResult{}, fmt.Errorf("create attachments dir: %w", err)
	}

	hashes := make([]string, 0, len(pending))
	for hash := range pending {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	var copied, missing, failed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(copyWorkers)

	for _, hash := range hashes {
		hash := hash
		name := pending[hash]
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			dst := filepath.Join(dstDir, AttachmentFileName(hash, name))
			if !validHash(hash) || !within(dstDir, dst) {
				logger.Warn("Invalid attachment reference", slog.String("hash", hash), slog.String("name", name))
				failed.Add(1)
				return nil
			}
			src := filepath.Join(srcDir, hash)
			if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
				logger.Warn("File not found", slog.String("path", src))
				missing.Add(1)
				return nil
			}
			if err := copyFile(src, dst); err != nil {
				logger.Warn("Failed to copy file", slog.String("path", src), slog.String("error", err.Error()))
				failed.Add(1)
				return nil
			}
			copied.Add(1)
			return nil
		})
	}

	err := g.Wait()
	res := CopyResult{Copied: int(copied.Load()), Missing: int(missing.Load()), Failed: int(failed.Load())}
	return res, err
}

// ApplyExportedFileTimes stamps path with the document's access and modification
// times, then hands the creation time to setCreationTime when one is known.
func ApplyExportedFileTimes(path string, details map[string]any, setCreationTime func(path string, created time.Time) error) error {
	times := anytypedomain.TimesFromDetails(details)
	atime, mtime, ok := times.FileTimes()
	if !ok {
		return nil
	}
	if err := os.Chtimes(path, atime, mtime); err != nil {
		return err
	}
	if !times.Created.IsZero() && setCreationTime != nil {
		if err := setCreationTime(path, times.Created); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies src to dst and carries over the source modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
