// Command risale builds the Risale-i Nur corpus database and audits the
// source texts it is built from.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/risale/core/errors"
	"github.com/FocuswithJustin/risale/core/lexicon"
	"github.com/FocuswithJustin/risale/core/sqlite"
	"github.com/FocuswithJustin/risale/core/suffix"
	"github.com/FocuswithJustin/risale/internal/archive"
	"github.com/FocuswithJustin/risale/internal/audit"
	"github.com/FocuswithJustin/risale/internal/config"
	"github.com/FocuswithJustin/risale/internal/importer"
	"github.com/FocuswithJustin/risale/internal/logging"
	"github.com/FocuswithJustin/risale/internal/store"
	"github.com/FocuswithJustin/risale/internal/validation"
)

const version = "0.1.0"

// output receives command results. Logs go to stderr.
var output io.Writer = os.Stdout

// Globals are flags shared by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"YAML configuration file" type:"path" default:"risale.yaml"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error); overrides the config file"`
	LogFormat string `name:"log-format" help:"Log format (text, json); overrides the config file"`
}

// CLI defines the command-line interface for risale.
var CLI struct {
	Globals

	Init    InitCmd    `cmd:"" help:"Write the default configuration file"`
	Import  ImportCmd  `cmd:"" help:"Rebuild the corpus database from source texts"`
	Audit   AuditCmd   `cmd:"" help:"Report Arabic phrases and sacred-term suffixes in source texts"`
	Inspect InspectCmd `cmd:"" help:"Print the stored paragraphs of a section"`
	Info    InfoCmd    `cmd:"" help:"Show database driver and row counts"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// setup loads the configuration, applies flag overrides, and initializes
// logging. The returned context carries a fresh run ID.
func (g *Globals) setup() (*config.Config, context.Context, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Logging.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Logging.Format = g.LogFormat
	}
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, errors.NewValidation("logging.level", err.Error())
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, nil, errors.NewValidation("logging.format", err.Error())
	}
	logging.InitLogger(level, format)
	return cfg, logging.StartRun(context.Background()), nil
}

// selectWorks narrows cfg.Works to id, or returns all of them when id is
// empty. A source override needs exactly one work.
func selectWorks(cfg *config.Config, id, sourceDir string) ([]config.WorkConfig, error) {
	works := cfg.Works
	if id != "" {
		w, err := cfg.Work(id)
		if err != nil {
			return nil, err
		}
		works = []config.WorkConfig{w}
	}
	if sourceDir != "" {
		if err := validation.ValidatePath("source", sourceDir); err != nil {
			return nil, err
		}
		if len(works) != 1 {
			return nil, errors.NewValidation("source", "--source needs --work when more than one work is configured")
		}
		w := works[0]
		w.SourceDir = sourceDir
		works = []config.WorkConfig{w}
	}
	return works, nil
}

// openStore opens the database at path read-only. A path ending in .xz is
// decompressed into a temporary directory first; the returned cleanup
// removes it.
func openStore(path string) (*store.Store, func(), error) {
	if !strings.HasSuffix(path, archive.Ext) {
		st, err := store.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &errors.NotFoundError{Resource: "database", ID: path, Err: err}
		}
		return nil, nil, errors.NewIO("stat", path, err)
	}
	dir, err := os.MkdirTemp("", "risale-db-*")
	if err != nil {
		return nil, nil, errors.NewIO("create", os.TempDir(), err)
	}
	dst := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), archive.Ext))
	if err := archive.DecompressFile(path, dst); err != nil {
		os.RemoveAll(dir)
		return nil, nil, err
	}
	st, err := store.Open(dst)
	if err != nil {
		os.RemoveAll(dir)
		return nil, nil, err
	}
	return st, func() {
		st.Close()
		os.RemoveAll(dir)
	}, nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// InitCmd writes the default configuration so it can be edited.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (c *InitCmd) Run(g *Globals) error {
	if err := validation.ValidatePath("config", g.Config); err != nil {
		return err
	}
	if _, err := os.Stat(g.Config); err == nil && !c.Force {
		return errors.NewValidation("config", g.Config+" already exists; use --force to overwrite")
	}
	if err := config.DefaultConfig().Save(g.Config); err != nil {
		return err
	}
	_, err := fmt.Fprintf(output, "Wrote %s\n", g.Config)
	return err
}

// ImportCmd rebuilds the database.
type ImportCmd struct {
	Source string `help:"Source directory of section files; overrides the configured one" type:"path"`
	Work   string `help:"Only import the work with this ID"`
	DB     string `name:"db" help:"Database file to rebuild; overrides the config file" type:"path"`
	XZ     bool   `name:"xz" help:"Also write an xz-compressed copy of the database"`
	JSON   bool   `name:"json" help:"Print the summary as JSON"`
}

func (c *ImportCmd) Run(g *Globals) error {
	cfg, ctx, err := g.setup()
	if err != nil {
		return err
	}
	opts := importer.OptionsFromConfig(cfg)
	if opts.Works, err = selectWorks(cfg, c.Work, c.Source); err != nil {
		return err
	}
	if c.DB != "" {
		if err := validation.ValidatePath("db", c.DB); err != nil {
			return err
		}
		opts.Database = c.DB
	}
	if c.XZ {
		opts.XZ = true
	}

	sum, err := importer.New(opts).Run(ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(sum)
	}
	return sum.WriteText(output)
}

// AuditCmd scans source texts without touching the database.
type AuditCmd struct {
	Source string `help:"Source directory to audit; defaults to the configured work" type:"path"`
	Work   string `help:"Audit the work with this ID"`
	Sample int    `help:"Number of suffix candidates to list; overrides the config file" default:"-1"`
	JSON   bool   `name:"json" help:"Print the report as JSON"`
}

func (c *AuditCmd) Run(g *Globals) error {
	cfg, ctx, err := g.setup()
	if err != nil {
		return err
	}
	dir := c.Source
	if dir == "" {
		works, err := selectWorks(cfg, c.Work, "")
		if err != nil {
			return err
		}
		if len(works) != 1 {
			return errors.NewValidation("work", "--work or --source is required when more than one work is configured")
		}
		dir = works[0].SourceDir
	}
	sample := cfg.Audit.SampleSize
	if c.Sample >= 0 {
		sample = c.Sample
	}

	opts := []audit.Option{audit.WithSampleSize(sample)}
	if len(cfg.Audit.ExtraTerms) > 0 {
		terms := append(lexicon.Terms(), cfg.Audit.ExtraTerms...)
		opts = append(opts, audit.WithScanner(suffix.NewScanner(terms)))
	}
	rep, err := audit.New(opts...).Run(ctx, dir)
	if err != nil {
		return err
	}
	if c.JSON {
		return rep.WriteJSON(output)
	}
	return rep.WriteText(output)
}

// InspectCmd prints the paragraphs of one section.
type InspectCmd struct {
	SectionID string `arg:"" name:"section-id" help:"Section ID (e.g., sozler-01)"`
	Contains  string `help:"Only print paragraphs containing this text"`
	DB        string `name:"db" help:"Database file or its .xz copy; overrides the config file" type:"path"`
	JSON      bool   `name:"json" help:"Print paragraphs as JSON"`
}

func (c *InspectCmd) Run(g *Globals) error {
	if err := validation.ValidateID("section-id", c.SectionID); err != nil {
		return err
	}
	cfg, ctx, err := g.setup()
	if err != nil {
		return err
	}
	path := cfg.Database
	if c.DB != "" {
		path = c.DB
	}
	st, closeStore, err := openStore(path)
	if err != nil {
		return err
	}
	defer closeStore()

	paragraphs, err := st.SectionParagraphs(ctx, c.SectionID, c.Contains)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(paragraphs)
	}
	if len(paragraphs) == 0 {
		_, err := fmt.Fprintf(output, "No paragraphs in %s match %q\n", c.SectionID, c.Contains)
		return err
	}
	for _, p := range paragraphs {
		flag := ""
		if p.IsArabic {
			flag = " [arabic]"
		}
		if _, err := fmt.Fprintf(output, "--- %s (order %d)%s ---\n%s\n", p.ID, p.Order, flag, p.Text); err != nil {
			return err
		}
	}
	return nil
}

// InfoCmd shows the driver and what the database holds.
type InfoCmd struct {
	DB   string `name:"db" help:"Database file or its .xz copy; overrides the config file" type:"path"`
	JSON bool   `name:"json" help:"Print as JSON"`
}

type infoResult struct {
	Database string       `json:"database"`
	Driver   sqlite.Info  `json:"driver"`
	Counts   store.Counts `json:"counts"`
	Works    []workInfo   `json:"works"`
}

type workInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Sections int    `json:"sections"`
}

func (c *InfoCmd) Run(g *Globals) error {
	cfg, ctx, err := g.setup()
	if err != nil {
		return err
	}
	path := cfg.Database
	if c.DB != "" {
		path = c.DB
	}
	st, closeStore, err := openStore(path)
	if err != nil {
		return err
	}
	defer closeStore()

	res := infoResult{Database: path, Driver: sqlite.GetInfo()}
	if res.Counts, err = st.Counts(ctx); err != nil {
		return err
	}
	works, err := st.Works(ctx)
	if err != nil {
		return err
	}
	for _, w := range works {
		sections, err := st.Sections(ctx, w.ID)
		if err != nil {
			return err
		}
		res.Works = append(res.Works, workInfo{ID: w.ID, Title: w.Title, Category: w.Category, Sections: len(sections)})
	}

	if c.JSON {
		return writeJSON(res)
	}
	fmt.Fprintf(output, "Database:   %s\n", res.Database)
	fmt.Fprintf(output, "Driver:     %s (%s)\n", res.Driver.DriverName, res.Driver.DriverType)
	fmt.Fprintf(output, "Works:      %d\n", res.Counts.Works)
	fmt.Fprintf(output, "Sections:   %d\n", res.Counts.Sections)
	fmt.Fprintf(output, "Paragraphs: %d (%d Arabic)\n", res.Counts.Paragraphs, res.Counts.ArabicParagraphs)
	if len(res.Works) > 0 {
		fmt.Fprintln(output)
		tw := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSECTIONS")
		for _, w := range res.Works {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", w.ID, w.Title, w.Category, w.Sections)
		}
		return tw.Flush()
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(output, "risale version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("risale"),
		kong.Description("Risale-i Nur corpus importer and auditor"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
