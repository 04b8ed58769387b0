// Package importer turns a directory of section files into the corpus
// database. Every run rebuilds the database from scratch.
package importer

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/risale/core/corpus"
	"github.com/FocuswithJustin/risale/core/errors"
	"github.com/FocuswithJustin/risale/core/segment"
	"github.com/FocuswithJustin/risale/internal/archive"
	"github.com/FocuswithJustin/risale/internal/config"
	"github.com/FocuswithJustin/risale/internal/logging"
	"github.com/FocuswithJustin/risale/internal/source"
	"github.com/FocuswithJustin/risale/internal/store"
)

// Options control a single import run.
type Options struct {
	// Database is the SQLite file to rebuild.
	Database string

	// Works are imported in order, one transaction each.
	Works []config.WorkConfig

	// XZ also writes a compressed copy of the finished database.
	XZ bool
}

// OptionsFromConfig derives run options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Database: cfg.Database,
		Works:    cfg.Works,
		XZ:       cfg.Archive.XZ,
	}
}

// Importer builds and writes works.
type Importer struct {
	opts Options
}

// New creates an importer.
func New(opts Options) *Importer {
	return &Importer{opts: opts}
}

// Summary reports what a run wrote.
type Summary struct {
	Works            int    `json:"works"`
	Sections         int    `json:"sections"`
	Paragraphs       int    `json:"paragraphs"`
	ArabicParagraphs int    `json:"arabic_paragraphs"`
	FallbackTitles   int    `json:"fallback_titles"`
	Database         string `json:"database"`
	DatabaseSize     int64  `json:"database_size"`
	Archive          string `json:"archive,omitempty"`
	ArchiveSize      int64  `json:"archive_size,omitempty"`
}

// WriteText prints s in the form shown after an import.
func (s *Summary) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Imported %d work(s): %d sections, %d paragraphs (%d Arabic)\nDatabase: %s (%s)\n",
		s.Works, s.Sections, s.Paragraphs, s.ArabicParagraphs,
		s.Database, humanize.Bytes(uint64(s.DatabaseSize)))
	if err != nil {
		return err
	}
	if s.FallbackTitles > 0 {
		if _, err := fmt.Fprintf(w, "Titles taken from bare filenames: %d\n", s.FallbackTitles); err != nil {
			return err
		}
	}
	if s.Archive != "" {
		_, err = fmt.Fprintf(w, "Archive: %s (%s)\n", s.Archive, humanize.Bytes(uint64(s.ArchiveSize)))
	}
	return err
}

// Build reads the source directory of wc and returns the work tree. Nothing
// is written.
func (im *Importer) Build(ctx context.Context, wc config.WorkConfig) (*corpus.Work, error) {
	w, _, err := im.build(ctx, wc)
	return w, err
}

func (im *Importer) build(ctx context.Context, wc config.WorkConfig) (*corpus.Work, int, error) {
	files, err := source.List(wc.SourceDir)
	if err != nil {
		return nil, 0, err
	}

	prefix := wc.Prefix
	if prefix == "" {
		prefix = wc.Title
	}

	w := &corpus.Work{
		ID:       wc.ID,
		Title:    wc.Title,
		Order:    wc.Order,
		Category: wc.Category,
	}

	h := blake3.New()
	fallbacks := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		raw, err := source.Read(f)
		if err != nil {
			return nil, 0, err
		}
		h.Write([]byte(f.Name))
		h.Write([]byte{0})
		h.Write(raw)
		h.Write([]byte{0})

		text, err := segment.Decode(raw)
		if err != nil {
			var pe *errors.ParseError
			if errors.As(err, &pe) {
				pe.Path = f.Path
			}
			return nil, 0, err
		}

		meta := source.DeriveSectionMeta(f.Name, prefix, wc.Title)
		if meta.FallbackUsed {
			fallbacks++
			logging.TitleFallback(ctx, f.Name, meta.Title)
		}

		sec := w.AddSection(meta.Title)
		sec.SourceFile = f.Name
		for _, line := range segment.Segment(text) {
			p := sec.AddParagraph(line)
			if segment.IsDivider(line) {
				logging.DebugContext(ctx, "divider_paragraph", "paragraph_id", p.ID)
			}
		}
	}

	w.Meta = &corpus.Meta{
		SourceDirName: filepath.Base(wc.SourceDir),
		SourceFiles:   len(files),
		SourceBLAKE3:  hex.EncodeToString(h.Sum(nil)),
	}
	return w, fallbacks, nil
}

// Run builds every configured work, replaces the database, and writes the
// works in order. All sources are read before the old database is removed,
// so a missing or unreadable source leaves it untouched.
func (im *Importer) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	if len(im.opts.Works) == 0 {
		return nil, errors.NewValidation("works", "nothing to import")
	}

	sum := &Summary{Database: im.opts.Database}
	works := make([]*corpus.Work, 0, len(im.opts.Works))
	for _, wc := range im.opts.Works {
		w, fallbacks, err := im.build(ctx, wc)
		if err != nil {
			return nil, errors.Wrapf(err, "build work %s", wc.ID)
		}
		if errs := corpus.Validate(w); len(errs) > 0 {
			return nil, errors.Wrapf(errors.Join(errs...), "work %s is inconsistent", wc.ID)
		}
		sum.FallbackTitles += fallbacks
		works = append(works, w)
	}

	if dir := filepath.Dir(im.opts.Database); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewIO("create", dir, err)
		}
	}
	st, err := store.Rebuild(im.opts.Database)
	if err != nil {
		return nil, err
	}

	for _, w := range works {
		if err := st.WriteWork(ctx, w); err != nil {
			st.Close()
			return nil, err
		}
		for _, sec := range w.Sections {
			arabic := 0
			for _, p := range sec.Paragraphs {
				if p.IsArabic {
					arabic++
				}
			}
			logging.SectionImported(ctx, sec.ID, sec.Title, len(sec.Paragraphs), arabic,
				"source_file", sec.SourceFile)
		}
		stats := w.Stats()
		sum.Works++
		sum.Sections += stats.Sections
		sum.Paragraphs += stats.Paragraphs
		sum.ArabicParagraphs += stats.ArabicParagraphs
	}
	if err := st.Close(); err != nil {
		return nil, errors.NewIO("close", im.opts.Database, err)
	}

	info, err := os.Stat(im.opts.Database)
	if err != nil {
		return nil, errors.NewIO("stat", im.opts.Database, err)
	}
	sum.DatabaseSize = info.Size()

	if im.opts.XZ {
		sum.Archive = archive.PathFor(im.opts.Database)
		n, err := archive.CompressFile(im.opts.Database, sum.Archive)
		if err != nil {
			return nil, err
		}
		sum.ArchiveSize = n
	}

	logging.RunFinished(ctx, "import", time.Since(start),
		"works", sum.Works,
		"sections", sum.Sections,
		"paragraphs", sum.Paragraphs,
		"size", humanize.Bytes(uint64(sum.DatabaseSize)),
	)
	return sum, nil
}
