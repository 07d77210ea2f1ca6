// Package migrations embeds the goose SQL migrations of the regatta store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
