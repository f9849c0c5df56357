package migrations

import "embed"

// FS contains embedded SQLite migrations for kitchen storage.
//
//go:embed *.sql
var FS embed.FS
