// Package migrations embeds the SQL that creates the contracts table for
// local development databases and integration tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
