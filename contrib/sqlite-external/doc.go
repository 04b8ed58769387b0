// Package sqliteexternal provides the optional CGO SQLite driver.
//
// To use the CGO driver (github.com/mattn/go-sqlite3) for the risale database:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/risale
//
// The default build uses modernc.org/sqlite and needs no C toolchain. See
// github.com/FocuswithJustin/risale/core/sqlite.
//
// Use this package when the build pipeline already has CGO and import speed on
// the full corpus matters; use the default otherwise.
package sqliteexternal
