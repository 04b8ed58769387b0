package corpus

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/risale/core/errors"
	"github.com/FocuswithJustin/risale/core/script"
)

func newValidationError(field, message string) error {
	return errors.NewValidation(field, message)
}

// Validate checks the ordering and identity invariants of w and returns every
// violation found. A nil result means the tree can be written.
func Validate(w *Work) []error {
	var errs []error

	if w == nil {
		return []error{newValidationError("work", "work is nil")}
	}
	if w.ID == "" {
		errs = append(errs, newValidationError("work.id", "ID is required"))
	}
	if w.Title == "" {
		errs = append(errs, newValidationError("work.title", "title is required"))
	}

	sectionIDs := make(map[string]bool, len(w.Sections))
	for i, sec := range w.Sections {
		path := fmt.Sprintf("work.sections[%d]", i)
		errs = append(errs, validateSection(w, sec, i, path)...)
		if sec != nil {
			if sectionIDs[sec.ID] {
				errs = append(errs, newValidationError(path+".id", fmt.Sprintf("duplicate section ID %q", sec.ID)))
			}
			sectionIDs[sec.ID] = true
		}
	}

	return errs
}

func validateSection(w *Work, sec *Section, i int, path string) []error {
	if sec == nil {
		return []error{newValidationError(path, "section is nil")}
	}
	var errs []error

	if want := i + 1; sec.Order != want {
		errs = append(errs, newValidationError(path+".order_index",
			fmt.Sprintf("expected %d, got %d", want, sec.Order)))
	}
	if sec.WorkID != w.ID {
		errs = append(errs, newValidationError(path+".work_id",
			fmt.Sprintf("references %q, want %q", sec.WorkID, w.ID)))
	}
	if want := SectionID(w.ID, i+1); sec.ID != want {
		errs = append(errs, newValidationError(path+".id",
			fmt.Sprintf("expected %q, got %q", want, sec.ID)))
	}

	for j, p := range sec.Paragraphs {
		ppath := fmt.Sprintf("%s.paragraphs[%d]", path, j)
		if p == nil {
			errs = append(errs, newValidationError(ppath, "paragraph is nil"))
			continue
		}
		if p.Order != j {
			errs = append(errs, newValidationError(ppath+".order_index",
				fmt.Sprintf("expected %d, got %d", j, p.Order)))
		}
		if p.SectionID != sec.ID {
			errs = append(errs, newValidationError(ppath+".section_id",
				fmt.Sprintf("references %q, want %q", p.SectionID, sec.ID)))
		}
		if want := ParagraphID(sec.ID, j); p.ID != want {
			errs = append(errs, newValidationError(ppath+".id",
				fmt.Sprintf("expected %q, got %q", want, p.ID)))
		}
		if strings.TrimSpace(p.Text) == "" {
			errs = append(errs, newValidationError(ppath+".text", "text is empty"))
		}
		if p.IsArabic != script.ContainsArabic(p.Text) {
			errs = append(errs, newValidationError(ppath+".is_arabic",
				fmt.Sprintf("flag %v disagrees with text", p.IsArabic)))
		}
	}

	return errs
}
