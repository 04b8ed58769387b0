package corpus

import (
	"fmt"

	"github.com/FocuswithJustin/risale/core/script"
)

// Work is the top-level container for one book of the corpus.
type Work struct {
	// ID is the stable slug (e.g., "sozler").
	ID string `json:"id"`

	// Title is the display title (e.g., "Sözler").
	Title string `json:"title"`

	// Order is the position among works (1-indexed).
	Order int `json:"order_index"`

	// Category groups works in the reader (e.g., "Risale-i Nur").
	Category string `json:"category,omitempty"`

	// Meta is stored verbatim in works.meta_json when non-empty.
	Meta *Meta `json:"meta,omitempty"`

	// Sections in source order.
	Sections []*Section `json:"sections,omitempty"`
}

// Meta describes the source a work was built from. It holds no timestamps so
// that rebuilding unchanged input produces identical rows.
type Meta struct {
	SourceDirName string `json:"source_dir_name"`
	SourceFiles   int    `json:"source_files"`
	SourceBLAKE3  string `json:"source_blake3"`
}

// Section is one source file of a work.
type Section struct {
	ID     string `json:"id"`
	WorkID string `json:"work_id"`
	Title  string `json:"title"`

	// Order is the position in sorted filename order (1-indexed).
	Order int `json:"order_index"`

	// Type is optional and currently unset by the importer.
	Type string `json:"type,omitempty"`

	// SourceFile is the file name the section was read from. Not persisted.
	SourceFile string `json:"-"`

	Paragraphs []*Paragraph `json:"paragraphs,omitempty"`
}

// Paragraph is one non-blank source line.
type Paragraph struct {
	ID        string `json:"id"`
	SectionID string `json:"section_id"`
	Text      string `json:"text"`

	// Order is the line position among the section's paragraphs (0-indexed).
	Order int `json:"order_index"`

	// IsArabic is set when Text has a code point in the primary Arabic block.
	IsArabic bool `json:"is_arabic"`

	// PageNo is reserved; the importer never sets it.
	PageNo *int `json:"page_no,omitempty"`
}

// SectionID formats the ID of the section at 1-based rank order.
func SectionID(workID string, order int) string {
	return fmt.Sprintf("%s-%02d", workID, order)
}

// ParagraphID formats the ID of the paragraph at 0-based position seq.
func ParagraphID(sectionID string, seq int) string {
	return fmt.Sprintf("%s-%d", sectionID, seq)
}

// AddSection appends a section with the next rank and returns it.
func (w *Work) AddSection(title string) *Section {
	order := len(w.Sections) + 1
	sec := &Section{
		ID:     SectionID(w.ID, order),
		WorkID: w.ID,
		Title:  title,
		Order:  order,
	}
	w.Sections = append(w.Sections, sec)
	return sec
}

// AddParagraph appends a paragraph with the next sequence number. The Arabic
// flag is computed from text with the primary-block rule.
func (s *Section) AddParagraph(text string) *Paragraph {
	seq := len(s.Paragraphs)
	p := &Paragraph{
		ID:        ParagraphID(s.ID, seq),
		SectionID: s.ID,
		Text:      text,
		Order:     seq,
		IsArabic:  script.ContainsArabic(text),
	}
	s.Paragraphs = append(s.Paragraphs, p)
	return p
}

// Stats summarizes a work.
type Stats struct {
	Sections         int `json:"sections"`
	Paragraphs       int `json:"paragraphs"`
	ArabicParagraphs int `json:"arabic_paragraphs"`
}

// Stats counts sections and paragraphs of w.
func (w *Work) Stats() Stats {
	st := Stats{Sections: len(w.Sections)}
	for _, sec := range w.Sections {
		st.Paragraphs += len(sec.Paragraphs)
		for _, p := range sec.Paragraphs {
			if p.IsArabic {
				st.ArabicParagraphs++
			}
		}
	}
	return st
}
