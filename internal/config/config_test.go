package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	rerrors "github.com/FocuswithJustin/risale/core/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Works) != 1 {
		t.Fatalf("expected 1 default work, got %d", len(cfg.Works))
	}
	w := cfg.Works[0]
	if w.ID != "sozler" || w.Title != "Sözler" || w.Category != "Risale-i Nur" || w.Order != 1 {
		t.Errorf("unexpected default work: %+v", w)
	}
	if cfg.Audit.SampleSize != 20 {
		t.Errorf("SampleSize = %d, want 20", cfg.Audit.SampleSize)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	cfg, err = Load("")
	if err != nil || cfg == nil {
		t.Fatalf("Load(\"\") = %v, %v", cfg, err)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risale.yaml")
	data := `database: out/risale.db
works:
  - id: sozler
    title: Sözler
    category: Risale-i Nur
    source_dir: src/sozler
  - id: lemalar
    title: Lem'alar
    source_dir: src/lemalar
audit:
  sample_size: 5
  extra_terms: ["Üstad", "Nur"]
archive:
  xz: true
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []WorkConfig{
		{ID: "sozler", Title: "Sözler", Category: "Risale-i Nur", Order: 1, Prefix: "Sözler", SourceDir: "src/sozler"},
		{ID: "lemalar", Title: "Lem'alar", Order: 2, Prefix: "Lem'alar", SourceDir: "src/lemalar"},
	}
	if diff := cmp.Diff(want, cfg.Works); diff != "" {
		t.Errorf("works mismatch (-want +got):\n%s", diff)
	}
	if cfg.Database != "out/risale.db" || cfg.Audit.SampleSize != 5 || !cfg.Archive.XZ {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"Üstad", "Nur"}, cfg.Audit.ExtraTerms); diff != "" {
		t.Errorf("extra terms mismatch (-want +got):\n%s", diff)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %+v, want debug/text", cfg.Logging)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("works: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	var pe *rerrors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"no database", func(c *Config) { c.Database = " " }, "database"},
		{"no works", func(c *Config) { c.Works = nil }, "works"},
		{"missing id", func(c *Config) { c.Works[0].ID = "" }, "works[0].id"},
		{"duplicate id", func(c *Config) { c.Works = append(c.Works, c.Works[0]) }, "works[1].id"},
		{"missing title", func(c *Config) { c.Works[0].Title = "" }, "works[0].title"},
		{"missing source", func(c *Config) { c.Works[0].SourceDir = "" }, "works[0].source_dir"},
		{"malformed id", func(c *Config) { c.Works[0].ID = "Sözler" }, "works[0].id"},
		{"control character in source", func(c *Config) { c.Works[0].SourceDir = "src\tsozler" }, "works[0].source_dir"},
		{"blank extra term", func(c *Config) { c.Audit.ExtraTerms = []string{"Nur", " "} }, "audit.extra_terms[1]"},
		{"negative sample", func(c *Config) { c.Audit.SampleSize = -1 }, "audit.sample_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var ve *rerrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := DefaultConfig()
	cfg.Archive.XZ = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkLookup(t *testing.T) {
	cfg := DefaultConfig()
	if w, err := cfg.Work("sozler"); err != nil || w.Title != "Sözler" {
		t.Errorf("Work(sozler) = %+v, %v", w, err)
	}
	_, err := cfg.Work("mektubat")
	if !errors.Is(err, rerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
