// Package migrations embeds the SQL schema applied by the store on every boot.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
