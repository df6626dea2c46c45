// Package migrations embeds the SQL schema migrations so the binary can
// bring its database up to date without external files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
