// Package source reads a work's section files from disk.
//
// A work is a directory of UTF-8 text files named
// "{Prefix}-{NN}-{Section Title}.txt". Files are taken in byte-wise filename
// order, which must match the intended section order; nothing is reordered by
// content.
package source

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/FocuswithJustin/risale/core/errors"
	"github.com/FocuswithJustin/risale/internal/validation"
)

// Ext is the extension of section files.
const Ext = ".txt"

// File is one section file of a work directory.
type File struct {
	Name string // base name, e.g. "Sözler-01-Birinci Söz.txt"
	Path string
}

// List returns the section files of dir sorted by name. Subdirectories and
// files without the .txt extension are ignored.
func List(dir string) ([]File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "source directory", ID: dir, Err: err}
		}
		return nil, errors.NewIO("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidation("source_dir", dir+" is not a directory")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewIO("list", dir, err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		files = append(files, File{Name: e.Name(), Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Read returns the raw bytes of f. Files over validation.MaxFileSize are
// rejected.
func Read(f File) ([]byte, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return nil, errors.NewIO("read", f.Path, err)
	}
	if err := validation.CheckFileSize(f.Path, info.Size()); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errors.NewIO("read", f.Path, err)
	}
	return data, nil
}

// SectionMeta is what a filename says about its section.
type SectionMeta struct {
	Title string

	// FallbackUsed is set when the filename did not follow the naming
	// convention and Title is the bare filename.
	FallbackUsed bool
}

// DeriveSectionMeta extracts the section title from filename. For
// "{prefix}-{NN}-{Title}.txt" the title is the part after the number, with
// any "({workTitle})" marker removed. Other names fall back to the filename
// without its extension. It never fails.
func DeriveSectionMeta(filename, prefix, workTitle string) SectionMeta {
	if m := titlePattern(prefix).FindStringSubmatch(filename); m != nil {
		title := m[1]
		if workTitle != "" {
			title = strings.ReplaceAll(title, "("+workTitle+")", "")
		}
		return SectionMeta{Title: strings.TrimSpace(title)}
	}
	return SectionMeta{
		Title:        strings.TrimSpace(strings.ReplaceAll(filename, Ext, "")),
		FallbackUsed: true,
	}
}

// titlePatterns caches one compiled filename pattern per prefix.
var titlePatterns sync.Map

func titlePattern(prefix string) *regexp.Regexp {
	if re, ok := titlePatterns.Load(prefix); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-\p{Nd}+-(.*)\.txt`)
	actual, _ := titlePatterns.LoadOrStore(prefix, re)
	return actual.(*regexp.Regexp)
}
