// Package migrations схема БД для golang-migrate
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
