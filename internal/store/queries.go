package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/FocuswithJustin/risale/core/corpus"
	"github.com/FocuswithJustin/risale/core/errors"
)

// Counts are row totals per table.
type Counts struct {
	Works            int `json:"works"`
	Sections         int `json:"sections"`
	Paragraphs       int `json:"paragraphs"`
	ArabicParagraphs int `json:"arabic_paragraphs"`
}

// Counts returns row totals.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM works", &c.Works},
		{"SELECT COUNT(*) FROM sections", &c.Sections},
		{"SELECT COUNT(*) FROM paragraphs", &c.Paragraphs},
		{"SELECT COUNT(*) FROM paragraphs WHERE is_arabic = 1", &c.ArabicParagraphs},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.sql).Scan(q.dest); err != nil {
			return Counts{}, errors.Wrap(err, "count rows")
		}
	}
	return c, nil
}

// Works returns all works ordered by order_index, with Meta decoded from
// meta_json when present.
func (s *Store) Works(ctx context.Context) ([]*corpus.Work, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, order_index, category, meta_json FROM works ORDER BY order_index, id")
	if err != nil {
		return nil, errors.Wrap(err, "query works")
	}
	defer rows.Close()

	var works []*corpus.Work
	for rows.Next() {
		var (
			w        corpus.Work
			category sql.NullString
			meta     sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.Title, &w.Order, &category, &meta); err != nil {
			return nil, errors.Wrap(err, "scan work")
		}
		w.Category = category.String
		if meta.Valid {
			w.Meta = &corpus.Meta{}
			if err := json.Unmarshal([]byte(meta.String), w.Meta); err != nil {
				return nil, &errors.ParseError{Format: "JSON", Path: "works.meta_json", Message: err.Error(), Err: err}
			}
		}
		works = append(works, &w)
	}
	return works, rows.Err()
}

// Sections returns the sections of workID in order, without paragraphs.
func (s *Store) Sections(ctx context.Context, workID string) ([]*corpus.Section, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, work_id, title, order_index, type FROM sections WHERE work_id = ? ORDER BY order_index", workID)
	if err != nil {
		return nil, errors.Wrap(err, "query sections")
	}
	defer rows.Close()

	var sections []*corpus.Section
	for rows.Next() {
		var (
			sec corpus.Section
			typ sql.NullString
		)
		if err := rows.Scan(&sec.ID, &sec.WorkID, &sec.Title, &sec.Order, &typ); err != nil {
			return nil, errors.Wrap(err, "scan section")
		}
		sec.Type = typ.String
		sections = append(sections, &sec)
	}
	return sections, rows.Err()
}

// SectionParagraphs returns the paragraphs of sectionID in order. When
// contains is non-empty only paragraphs whose text includes it are returned.
func (s *Store) SectionParagraphs(ctx context.Context, sectionID, contains string) ([]*corpus.Paragraph, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sections WHERE id = ?", sectionID).Scan(&exists)
	if err != nil {
		return nil, errors.Wrap(err, "query section")
	}
	if exists == 0 {
		return nil, errors.NewNotFound("section", sectionID)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, section_id, text, order_index, is_arabic, page_no FROM paragraphs WHERE section_id = ? ORDER BY order_index",
		sectionID)
	if err != nil {
		return nil, errors.Wrap(err, "query paragraphs")
	}
	defer rows.Close()

	var paragraphs []*corpus.Paragraph
	for rows.Next() {
		var (
			p        corpus.Paragraph
			isArabic int
			pageNo   sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.SectionID, &p.Text, &p.Order, &isArabic, &pageNo); err != nil {
			return nil, errors.Wrap(err, "scan paragraph")
		}
		p.IsArabic = isArabic != 0
		if pageNo.Valid {
			n := int(pageNo.Int64)
			p.PageNo = &n
		}
		if contains != "" && !strings.Contains(p.Text, contains) {
			continue
		}
		paragraphs = append(paragraphs, &p)
	}
	return paragraphs, rows.Err()
}
