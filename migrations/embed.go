// Package migrations embeds the SQL migrations so the server and the migrate
// command can run them without the source tree.
package migrations

import "embed"

// FS holds every *.up.sql and *.down.sql file
//
//go:embed *.sql
var FS embed.FS
