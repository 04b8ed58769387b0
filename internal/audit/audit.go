// Package audit scans section files for Arabic phrases that need a rendering
// decision and for sacred terms carrying grammatical suffixes. It reports;
// it never changes the source.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/FocuswithJustin/risale/core/errors"
	"github.com/FocuswithJustin/risale/core/phrase"
	"github.com/FocuswithJustin/risale/core/script"
	"github.com/FocuswithJustin/risale/core/segment"
	"github.com/FocuswithJustin/risale/core/suffix"
	"github.com/FocuswithJustin/risale/internal/logging"
	"github.com/FocuswithJustin/risale/internal/source"
)

// DefaultSampleSize is how many suffix candidates a report lists.
const DefaultSampleSize = 20

// Accumulator carries running totals from file to file.
type Accumulator struct {
	Files    int
	Blocks   int
	Inline   int
	Suffixes suffix.Set
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() Accumulator {
	return Accumulator{Suffixes: suffix.NewSet()}
}

// FileResult holds the tallies of a single file.
type FileResult struct {
	ArabicLines int
	Blocks      int
	Inline      int
	Occurrences int
}

// Auditor scans source directories.
type Auditor struct {
	scanner    *suffix.Scanner
	sampleSize int
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithScanner replaces the default lexicon scanner.
func WithScanner(s *suffix.Scanner) Option {
	return func(a *Auditor) { a.scanner = s }
}

// WithSampleSize sets how many suffix candidates the report lists.
func WithSampleSize(n int) Option {
	return func(a *Auditor) { a.sampleSize = n }
}

// New creates an auditor.
func New(opts ...Option) *Auditor {
	a := &Auditor{
		scanner:    suffix.Default(),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AuditFile folds one file's content into acc and returns the new totals
// together with the file's own tallies. Phrases are counted per non-blank
// line; suffixes are scanned over the whole content.
func (a *Auditor) AuditFile(acc Accumulator, content string) (Accumulator, FileResult) {
	if acc.Suffixes == nil {
		acc.Suffixes = suffix.NewSet()
	}
	var res FileResult
	for _, line := range segment.Segment(content) {
		// Phrases are runs of extended-block characters.
		if !script.ContainsArabicExtended(line) {
			continue
		}
		res.ArabicLines++
		b, i := phrase.Count(line)
		res.Blocks += b
		res.Inline += i
	}
	res.Occurrences = a.scanner.ScanInto(content, acc.Suffixes)

	acc.Files++
	acc.Blocks += res.Blocks
	acc.Inline += res.Inline
	return acc, res
}

// Report is the outcome of an audit run.
type Report struct {
	Files          int      `json:"files"`
	Blocks         int      `json:"blocks"`
	Inline         int      `json:"inline"`
	UniqueSuffixes int      `json:"unique_suffixes"`
	Sample         []string `json:"sample"`
}

// Report builds the report for acc.
func (a *Auditor) Report(acc Accumulator) *Report {
	sample := acc.Suffixes.Sample(a.sampleSize)
	if sample == nil {
		sample = []string{}
	}
	return &Report{
		Files:          acc.Files,
		Blocks:         acc.Blocks,
		Inline:         acc.Inline,
		UniqueSuffixes: acc.Suffixes.Len(),
		Sample:         sample,
	}
}

// Run audits every section file in dir in filename order.
func (a *Auditor) Run(ctx context.Context, dir string) (*Report, error) {
	start := time.Now()
	files, err := source.List(dir)
	if err != nil {
		return nil, err
	}

	acc := NewAccumulator()
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := source.Read(f)
		if err != nil {
			return nil, err
		}
		content, err := segment.Decode(raw)
		if err != nil {
			var pe *errors.ParseError
			if errors.As(err, &pe) {
				pe.Path = f.Path
			}
			return nil, err
		}

		var res FileResult
		acc, res = a.AuditFile(acc, content)
		logging.FileAudited(ctx, f.Name, res.Blocks, res.Inline, res.Occurrences,
			"arabic_lines", res.ArabicLines)
	}

	rep := a.Report(acc)
	logging.RunFinished(ctx, "audit", time.Since(start),
		"files", rep.Files,
		"blocks", rep.Blocks,
		"inline", rep.Inline,
		"unique_suffixes", rep.UniqueSuffixes,
	)
	return rep, nil
}

// WriteText prints the report for a terminal.
func (r *Report) WriteText(w io.Writer) error {
	sample, err := json.Marshal(r.Sample)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w,
		"Total Files Scanned: %d\n"+
			"Total Arabic Blocks Detected (whitespace or >%d chars): %d\n"+
			"Total Arabic Inline Detected: %d\n"+
			"Unique Sacred Words with Suffixes Found: %d\n"+
			"Sample Suffixes: %s\n",
		r.Files, phrase.MaxInlineLength, r.Blocks, r.Inline, r.UniqueSuffixes, sample)
	return err
}

// WriteJSON prints the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}
