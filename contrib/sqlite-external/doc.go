// Package sqliteexternal registers the CGO SQLite driver
// (github.com/mattn/go-sqlite3) for builds that opt into it.
//
// Build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/conllu
//
// Without the tag, core/sqlite uses the pure Go modernc.org/sqlite driver
// and this package is empty.
package sqliteexternal
