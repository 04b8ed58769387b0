// Package store persists the corpus tree in the SQLite database shipped with
// the reader application.
//
// The database is never updated in place. Rebuild removes the file and
// creates an empty schema; readers holding the old file must cope with it
// disappearing.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"

	"github.com/FocuswithJustin/risale/core/corpus"
	"github.com/FocuswithJustin/risale/core/errors"
	"github.com/FocuswithJustin/risale/core/sqlite"
)

// Store wraps an open corpus database.
type Store struct {
	db *sql.DB
}

// Rebuild deletes the database at path, if any, and returns a store with a
// fresh schema.
func Rebuild(path string) (*Store, error) {
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return nil, errors.NewIO("remove", p, err)
		}
	}

	s, err := open(path, false)
	if err != nil {
		return nil, err
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			s.Close()
			return nil, errors.Wrap(err, "failed to create schema")
		}
	}
	return s, nil
}

// Open opens an existing database read-only.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "database", ID: path, Err: err}
		}
		return nil, errors.NewIO("stat", path, err)
	}
	return open(path, true)
}

func open(path string, readOnly bool) (*Store, error) {
	db, err := sqlite.OpenWith(path, sqlite.Options{ReadOnly: readOnly, ForeignKeys: true})
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewIO("open", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// WriteWork inserts w with all its sections and paragraphs in one transaction.
func (s *Store) WriteWork(ctx context.Context, w *corpus.Work) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var meta any
	if w.Meta != nil {
		data, err := json.Marshal(w.Meta)
		if err != nil {
			return errors.Wrap(err, "failed to encode work meta")
		}
		meta = string(data)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO works (id, title, order_index, category, meta_json) VALUES (?, ?, ?, ?, ?)",
		w.ID, w.Title, w.Order, nullString(w.Category), meta); err != nil {
		return errors.Wrapf(err, "insert work %s", w.ID)
	}

	secStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO sections (id, work_id, title, order_index, type) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, "failed to prepare section insert")
	}
	defer secStmt.Close()

	parStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO paragraphs (id, section_id, text, order_index, is_arabic, page_no) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, "failed to prepare paragraph insert")
	}
	defer parStmt.Close()

	for _, sec := range w.Sections {
		if _, err := secStmt.ExecContext(ctx, sec.ID, sec.WorkID, sec.Title, sec.Order, nullString(sec.Type)); err != nil {
			return errors.Wrapf(err, "insert section %s", sec.ID)
		}
		for _, p := range sec.Paragraphs {
			isArabic := 0
			if p.IsArabic {
				isArabic = 1
			}
			var pageNo any
			if p.PageNo != nil {
				pageNo = *p.PageNo
			}
			if _, err := parStmt.ExecContext(ctx, p.ID, p.SectionID, p.Text, p.Order, isArabic, pageNo); err != nil {
				return errors.Wrapf(err, "insert paragraph %s", p.ID)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit work")
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
