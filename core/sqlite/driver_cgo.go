//go:build cgo_sqlite

// CGO SQLite driver using mattn/go-sqlite3, selected by the cgo_sqlite tag.
//
// Build with: go build -tags cgo_sqlite
// Requires: CGO_ENABLED=1
package sqlite

import (
	sqliteexternal "github.com/FocuswithJustin/risale/contrib/sqlite-external"
)

const (
	driverName       = sqliteexternal.DriverName
	driverType       = sqliteexternal.DriverType
	driverPackage    = sqliteexternal.DriverPackage + " (via contrib/sqlite-external)"
	foreignKeysParam = sqliteexternal.ForeignKeysParam
)
