// Package config loads the importer and auditor settings from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/risale/core/errors"
	"github.com/FocuswithJustin/risale/internal/validation"
)

// Config holds all settings for a run.
type Config struct {
	// Database is the SQLite file rebuilt by every import.
	Database string `yaml:"database"`

	// Works to import, in the order they are listed.
	Works []WorkConfig `yaml:"works"`

	Audit   AuditConfig   `yaml:"audit"`
	Archive ArchiveConfig `yaml:"archive"`
	Logging LoggingConfig `yaml:"logging"`
}

// WorkConfig describes one work and where its section files live.
type WorkConfig struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Order    int    `yaml:"order"`

	// Prefix is the filename prefix of section files ("Sözler" in
	// "Sözler-01-Birinci Söz.txt"). Defaults to Title.
	Prefix string `yaml:"prefix"`

	// SourceDir holds one UTF-8 text file per section.
	SourceDir string `yaml:"source_dir"`
}

// AuditConfig configures the audit report.
type AuditConfig struct {
	// SampleSize caps the suffix candidates printed in the report.
	SampleSize int `yaml:"sample_size"`

	// ExtraTerms are scanned after the built-in lexicon, in this order.
	ExtraTerms []string `yaml:"extra_terms,omitempty"`
}

// ArchiveConfig configures the compressed copy of the database.
type ArchiveConfig struct {
	// XZ writes "<database>.xz" after a successful import.
	XZ bool `yaml:"xz"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns the settings of the original Sözler build.
func DefaultConfig() *Config {
	return &Config{
		Database: "assets/risale.db",
		Works: []WorkConfig{
			{
				ID:        "sozler",
				Title:     "Sözler",
				Category:  "Risale-i Nur",
				Order:     1,
				Prefix:    "Sözler",
				SourceDir: "temp_risale_source/txt/01 Sözler",
			},
		},
		Audit: AuditConfig{
			SampleSize: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewIO("read", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		pe := errors.NewParse("YAML", path, err.Error())
		pe.Err = err
		return nil, pe
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	for i := range c.Works {
		w := &c.Works[i]
		if w.Prefix == "" {
			w.Prefix = w.Title
		}
		if w.Order == 0 {
			w.Order = i + 1
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return errors.NewValidation("database", "path is required")
	}
	if err := validation.ValidatePath("database", c.Database); err != nil {
		return err
	}
	if len(c.Works) == 0 {
		return errors.NewValidation("works", "at least one work is required")
	}
	seen := make(map[string]bool, len(c.Works))
	for i, w := range c.Works {
		field := fmt.Sprintf("works[%d]", i)
		switch {
		case w.ID == "":
			return errors.NewValidation(field+".id", "ID is required")
		case seen[w.ID]:
			return errors.NewValidation(field+".id", fmt.Sprintf("duplicate work ID %q", w.ID))
		case w.Title == "":
			return errors.NewValidation(field+".title", "title is required")
		case w.SourceDir == "":
			return errors.NewValidation(field+".source_dir", "source directory is required")
		}
		if err := validation.ValidateID(field+".id", w.ID); err != nil {
			return err
		}
		if err := validation.ValidatePath(field+".source_dir", w.SourceDir); err != nil {
			return err
		}
		seen[w.ID] = true
	}
	if c.Audit.SampleSize < 0 {
		return errors.NewValidation("audit.sample_size", "must not be negative")
	}
	for i, term := range c.Audit.ExtraTerms {
		if strings.TrimSpace(term) == "" {
			return errors.NewValidation(fmt.Sprintf("audit.extra_terms[%d]", i), "term cannot be empty")
		}
	}
	return nil
}

// Work returns the work with the given ID.
func (c *Config) Work(id string) (WorkConfig, error) {
	for _, w := range c.Works {
		if w.ID == id {
			return w, nil
		}
	}
	return WorkConfig{}, errors.NewNotFound("work", id)
}
