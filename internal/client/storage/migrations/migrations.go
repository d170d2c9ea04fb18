// Package migrations embeds the SQLite schema of the key-value store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
