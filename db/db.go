// Package db carries the SQL migrations for the pgvector passage store and
// the result table sink.
package db

import "embed"

//go:embed migrations/*.up.sql
var Migrations embed.FS
