package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"

	"github.com/sleroq/anytype-to-markdown/internal/apperr"
	"github.com/sleroq/anytype-to-markdown/internal/config"
	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
	"github.com/sleroq/anytype-to-markdown/internal/infra/anytypejson"
	"github.com/sleroq/anytype-to-markdown/internal/infra/exportfs"
	"github.com/sleroq/anytype-to-markdown/internal/logging"
)

type Exporter struct {
	InputDir          string
	OutputDir         string
	FilesDir          string
	DecodeTimestamps  bool
	IgnoredProperties map[string]struct{}
	LinkMode          string
	PreserveFileTimes bool
	Logger            *slog.Logger
	Progress          io.Writer
}

type Stats struct {
	Notes        int
	Skipped      int
	Files        int
	MissingFiles int
	FailedFiles  int
}

// DocumentWriter persists one compiled note and returns the path it was written to.
type DocumentWriter interface {
	WriteDocument(content, title string) (string, error)
}

// New builds an Exporter from a validated configuration.
func New(cfg *config.Config, logger *slog.Logger) Exporter {
	return Exporter{
		InputDir:          cfg.InputFolder,
		OutputDir:         cfg.OutputFolder,
		FilesDir:          cfg.AttachmentsSource(),
		DecodeTimestamps:  cfg.DecodeTimestamps,
		IgnoredProperties: cfg.IgnoredSet(),
		LinkMode:          cfg.LinkMode,
		PreserveFileTimes: cfg.PreserveFileTimes,
		Logger:            logger,
		Progress:          os.Stderr,
	}
}

type exportProgressBar struct {
	enabled         bool
	out             io.Writer
	total           int
	current         int
	lastRenderWidth int
	label           string
	bar             progress.Model
}

func newExportProgressBar(out io.Writer, total int) exportProgressBar {
	if total <= 0 {
		total = 1
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 36

	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		width := cols - 40
		if width < 16 {
			width = 16
		}
		if width > 64 {
			width = 64
		}
		bar.Width = width
	}

	return exportProgressBar{
		enabled: isTerminal(out),
		out:     out,
		total:   total,
		bar:     bar,
	}
}

func (p *exportProgressBar) Advance(label string) {
	if !p.enabled {
		return
	}
	p.current++
	if p.current > p.total {
		p.current = p.total
	}
	p.label = label
	p.render()
}

func (p *exportProgressBar) Finish(label string) {
	if !p.enabled {
		return
	}
	p.current = p.total
	p.label = label
	p.render()
	fmt.Fprint(p.out, "\n")
	p.lastRenderWidth = 0
}

func (p *exportProgressBar) Close() {
	if !p.enabled {
		return
	}
	if p.lastRenderWidth > 0 {
		fmt.Fprint(p.out, "\n")
		p.lastRenderWidth = 0
	}
}

func (p *exportProgressBar) render() {
	percent := float64(p.current) / float64(p.total)
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	line := fmt.Sprintf("%s %3.0f%% %d/%d %s", p.bar.ViewAs(percent), percent*100, p.current, p.total, strings.TrimSpace(p.label))
	pad := ""
	if p.lastRenderWidth > len(line) {
		pad = strings.Repeat(" ", p.lastRenderWidth-len(line))
	}
	fmt.Fprintf(p.out, "\r%s%s", line, pad)
	p.lastRenderWidth = len(line)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (e Exporter) Run(ctx context.Context) (Stats, error) {
	if e.InputDir == "" || e.OutputDir == "" {
		return Stats{}, fmt.Errorf("input and output directories are required")
	}
	logger := e.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	info, err := os.Stat(e.InputDir)
	if err != nil {
		return Stats{}, fmt.Errorf("input folder does not exist: %w", err)
	}
	if !info.IsDir() {
		return Stats{}, fmt.Errorf("input folder %s is not a directory", e.InputDir)
	}

	attachmentsDir := filepath.Join(e.OutputDir, "attachments")
	if err := os.MkdirAll(attachmentsDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output dir: %w", err)
	}

	logger.Info("Starting Anytype to Markdown conversion", slog.String("input", e.InputDir), slog.String("output", e.OutputDir))

	corpus, err := anytypejson.ReadCorpus(e.InputDir, logger)
	if err != nil {
		return Stats{}, err
	}
	if len(corpus.Documents) == 0 {
		logger.Error(apperr.ErrNoDocuments.Error())
		return Stats{}, nil
	}

	linkMode := e.LinkMode
	if linkMode == "" {
		linkMode = config.LinkModeSelect
	}

	registry := newAttachmentRegistry()
	compiler := &documentCompiler{
		relations:   newRelationResolver(corpus, e.DecodeTimestamps, e.IgnoredProperties, linkMode, logger),
		attachments: registry,
		logger:      logger,
	}
	writer := exportfs.NewWriter(e.OutputDir, logger)

	out := e.Progress
	if out == nil {
		out = io.Discard
	}
	progressBar := newExportProgressBar(out, len(corpus.Documents)+1)
	defer progressBar.Close()

	var stats Stats
	for _, doc := range corpus.Documents {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := e.exportDocument(doc, compiler, writer, logger); err != nil {
			logger.Error("Error processing file", slog.String("id", doc.ID), slog.String("path", doc.SourcePath), slog.String("error", err.Error()))
			stats.Skipped++
		} else {
			stats.Notes++
		}
		progressBar.Advance("exporting notes")
	}

	filesDir := e.FilesDir
	if filesDir == "" {
		filesDir = filepath.Join(e.InputDir, "files")
	}
	copied, err := exportfs.CopyAttachments(ctx, filesDir, attachmentsDir, registry.Pending(), logger)
	stats.Files = copied.Copied
	stats.MissingFiles = copied.Missing
	stats.FailedFiles = copied.Failed
	if err != nil {
		return stats, fmt.Errorf("copy attachments: %w", err)
	}
	progressBar.Finish("done")

	logger.Info("Conversion completed successfully",
		slog.Int("notes", stats.Notes),
		slog.Int("skipped", stats.Skipped),
		slog.Int("files", stats.Files),
		slog.Int("missing_files", stats.MissingFiles),
		slog.Int("failed_files", stats.FailedFiles))
	return stats, nil
}

func (e Exporter) exportDocument(doc anytypedomain.Document, compiler *documentCompiler, writer DocumentWriter, logger *slog.Logger) error {
	created := "Unknown creation date"
	if ts, ok := doc.CreatedDate(); ok {
		created = ts.Local().Format("2006-01-02 15:04:05")
	}
	logger.Debug("Processing content", slog.String("id", doc.ID), slog.String("title", doc.Title), slog.String("created", created))

	content, err := compiler.compileMarkdown(doc)
	if err != nil {
		return err
	}
	path, err := writer.WriteDocument(content, doc.Title)
	if err != nil {
		return fmt.Errorf("write note %s: %w", doc.ID, err)
	}
	if e.PreserveFileTimes {
		if err := exportfs.ApplyExportedFileTimes(path, doc.Details, exportfs.SetCreationTime); err != nil {
			logger.Warn("failed to apply note timestamps", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
	return nil
}
