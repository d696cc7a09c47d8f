//go:build cgo_sqlite

// Build with: go build -tags cgo_sqlite
// Requires: CGO_ENABLED=1
package sqlite

import (
	sqliteexternal "github.com/FocuswithJustin/conllu/contrib/sqlite-external"
)

const (
	driverName    = sqliteexternal.DriverName
	driverType    = sqliteexternal.DriverType
	driverPackage = sqliteexternal.DriverPackage + " (via contrib/sqlite-external)"

	pragmaParams = "_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"
)
