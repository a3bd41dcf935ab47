// Package migrations embeds the goose SQL migrations of the blog. The
// statements stick to types understood by postgres, mysql and sqlite.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
