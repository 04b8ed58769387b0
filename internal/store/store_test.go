package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/FocuswithJustin/risale/core/corpus"
	"github.com/FocuswithJustin/risale/core/errors"
)

func sampleWork() *corpus.Work {
	w := &corpus.Work{
		ID:       "sozler",
		Title:    "Sözler",
		Order:    1,
		Category: "Risale-i Nur",
		Meta:     &corpus.Meta{SourceDirName: "01 Sözler", SourceFiles: 2, SourceBLAKE3: "abc"},
	}
	s1 := w.AddSection("Birinci Söz")
	s1.AddParagraph("Merhaba")
	s1.AddParagraph("بِسْمِ اللّٰهِ")
	s2 := w.AddSection("İkinci Söz")
	s2.AddParagraph("Elif")
	return w
}

func rebuild(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "risale.db")
	s, err := Rebuild(path)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestWriteWorkAndRead(t *testing.T) {
	ctx := context.Background()
	s, _ := rebuild(t)
	if err := s.WriteWork(ctx, sampleWork()); err != nil {
		t.Fatalf("WriteWork() error = %v", err)
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := Counts{Works: 1, Sections: 2, Paragraphs: 3, ArabicParagraphs: 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("Counts() mismatch (-want +got):\n%s", diff)
	}

	works, err := s.Works(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(works) != 1 || works[0].Title != "Sözler" || works[0].Category != "Risale-i Nur" {
		t.Fatalf("Works() = %+v", works)
	}
	if diff := cmp.Diff(sampleWork().Meta, works[0].Meta); diff != "" {
		t.Errorf("Works() meta mismatch (-want +got):\n%s", diff)
	}

	sections, err := s.Sections(ctx, "sozler")
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, sec := range sections {
		ids = append(ids, sec.ID)
	}
	if diff := cmp.Diff([]string{"sozler-01", "sozler-02"}, ids); diff != "" {
		t.Errorf("section IDs mismatch (-want +got):\n%s", diff)
	}

	paragraphs, err := s.SectionParagraphs(ctx, "sozler-01", "")
	if err != nil {
		t.Fatal(err)
	}
	wantParagraphs := []*corpus.Paragraph{
		{ID: "sozler-01-0", SectionID: "sozler-01", Text: "Merhaba", Order: 0},
		{ID: "sozler-01-1", SectionID: "sozler-01", Text: "بِسْمِ اللّٰهِ", Order: 1, IsArabic: true},
	}
	if diff := cmp.Diff(wantParagraphs, paragraphs); diff != "" {
		t.Errorf("SectionParagraphs() mismatch (-want +got):\n%s", diff)
	}
}

func TestMetaAndNullColumns(t *testing.T) {
	ctx := context.Background()
	s, _ := rebuild(t)
	if err := s.WriteWork(ctx, sampleWork()); err != nil {
		t.Fatal(err)
	}

	var meta string
	if err := s.db.QueryRow("SELECT meta_json FROM works WHERE id = 'sozler'").Scan(&meta); err != nil {
		t.Fatal(err)
	}
	want := `{"source_dir_name":"01 Sözler","source_files":2,"source_blake3":"abc"}`
	if meta != want {
		t.Errorf("meta_json = %s, want %s", meta, want)
	}

	var nullPages, nullTypes int
	s.db.QueryRow("SELECT COUNT(*) FROM paragraphs WHERE page_no IS NULL").Scan(&nullPages)
	s.db.QueryRow("SELECT COUNT(*) FROM sections WHERE type IS NULL").Scan(&nullTypes)
	if nullPages != 3 {
		t.Errorf("paragraphs with NULL page_no = %d, want 3", nullPages)
	}
	if nullTypes != 2 {
		t.Errorf("sections with NULL type = %d, want 2", nullTypes)
	}
}

func TestRebuildDiscardsPreviousData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "risale.db")

	first, err := Rebuild(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.WriteWork(ctx, sampleWork()); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Rebuild(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	counts, err := second.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts != (Counts{}) {
		t.Errorf("Counts() after rebuild = %+v, want zero", counts)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	s, _ := rebuild(t)
	_, err := s.db.Exec(
		"INSERT INTO paragraphs (id, section_id, text, order_index, is_arabic) VALUES ('x-0', 'missing', 't', 0, 0)")
	if err == nil {
		t.Error("expected foreign key violation for orphan paragraph")
	}
}

func TestWriteWorkDuplicateRollsBack(t *testing.T) {
	ctx := context.Background()
	s, _ := rebuild(t)
	if err := s.WriteWork(ctx, sampleWork()); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteWork(ctx, sampleWork()); err == nil {
		t.Fatal("expected error writing the same work twice")
	}
	counts, _ := s.Counts(ctx)
	if counts.Paragraphs != 3 {
		t.Errorf("paragraphs = %d after failed write, want 3", counts.Paragraphs)
	}
}

func TestSectionParagraphsContains(t *testing.T) {
	ctx := context.Background()
	s, _ := rebuild(t)
	if err := s.WriteWork(ctx, sampleWork()); err != nil {
		t.Fatal(err)
	}

	got, err := s.SectionParagraphs(ctx, "sozler-01", "Merh")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "sozler-01-0" {
		t.Errorf("SectionParagraphs(contains) = %+v", got)
	}

	_, err = s.SectionParagraphs(ctx, "sozler-99", "")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown section, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, path := rebuild(t)
	if err := s.WriteWork(ctx, sampleWork()); err != nil {
		t.Fatal(err)
	}
	s.Close()

	ro, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer ro.Close()
	counts, err := ro.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Works != 1 {
		t.Errorf("Works = %d", counts.Works)
	}

	_, err = Open(filepath.Join(t.TempDir(), "absent.db"))
	var nf *errors.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestRebuildRemovesSidecars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risale.db")
	if err := os.WriteFile(path+"-journal", []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Rebuild(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := os.Stat(path + "-journal"); err == nil {
		t.Error("stale journal should be removed")
	}
}

func TestWorksWithoutMeta(t *testing.T) {
	ctx := context.Background()
	s, _ := rebuild(t)
	w := sampleWork()
	w.Meta = nil
	if err := s.WriteWork(ctx, w); err != nil {
		t.Fatal(err)
	}
	works, err := s.Works(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if works[0].Meta != nil {
		t.Errorf("Meta = %+v, want nil for NULL meta_json", works[0].Meta)
	}
}
