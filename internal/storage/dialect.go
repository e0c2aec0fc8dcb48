package storage

import (
	sq "github.com/Masterminds/squirrel"
)

// Dialect captures the differences between the supported SQL databases.
type Dialect struct {
	Name        string
	DriverName  string
	SerialKey   string // DDL for an auto-incrementing primary key
	Placeholder sq.PlaceholderFormat
}

// Supported dialects.
var (
	SQLite = Dialect{
		Name:        "sqlite",
		DriverName:  "sqlite3",
		SerialKey:   "INTEGER PRIMARY KEY AUTOINCREMENT",
		Placeholder: sq.Question,
	}
	Postgres = Dialect{
		Name:        "postgres",
		DriverName:  "pgx",
		SerialKey:   "BIGSERIAL PRIMARY KEY",
		Placeholder: sq.Dollar,
	}
)

func (d Dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder)
}
