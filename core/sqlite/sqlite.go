// Package sqlite selects the SQLite driver for the corpus database.
//
// Build modes:
//   - Default (CGO_ENABLED=0): modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3 via contrib/sqlite-external
//
// Use OpenWith instead of sql.Open so the driver name and connection
// parameters match the build.
package sqlite

import (
	"database/sql"
	"strings"
)

// DriverName returns the SQL driver name to use.
func DriverName() string {
	return driverName
}

// DriverType returns "cgo" for mattn/go-sqlite3, "purego" for modernc.org/sqlite.
func DriverType() string {
	return driverType
}

// IsCGO returns true if the CGO implementation is being used.
func IsCGO() bool {
	return driverType == "cgo"
}

// Options are connection settings applied to every pooled connection.
type Options struct {
	// ReadOnly opens the file with mode=ro; writes fail.
	ReadOnly bool

	// ForeignKeys turns on foreign key enforcement.
	ForeignKeys bool
}

// uriEscaper escapes the characters that would end or corrupt the path part
// of a file: URI.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// DSN builds the file: URI for path. The two drivers spell the foreign key
// parameter differently.
func DSN(path string, opts Options) string {
	var params []string
	if opts.ReadOnly {
		params = append(params, "mode=ro")
	}
	if opts.ForeignKeys {
		params = append(params, foreignKeysParam)
	}
	dsn := "file:" + uriEscaper.Replace(path)
	if len(params) > 0 {
		dsn += "?" + strings.Join(params, "&")
	}
	return dsn
}

// OpenWith opens the database file at path.
func OpenWith(path string, opts Options) (*sql.DB, error) {
	return sql.Open(driverName, DSN(path, opts))
}

// Info contains information about the SQLite driver configuration.
type Info struct {
	DriverName string `json:"driver_name"`
	DriverType string `json:"driver_type"`
	IsCGO      bool   `json:"is_cgo"`
	Package    string `json:"package"`
}

// GetInfo returns information about the current SQLite configuration.
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      IsCGO(),
		Package:    driverPackage,
	}
}
