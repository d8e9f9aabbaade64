// Package postgres writes export artifacts into PostgreSQL: one schema per
// artifact, one table per sheet, loaded with COPY.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/hwinventory/internal/core"
)

// Column types chosen per column from the rendered cells.
const (
	typeBigint = "bigint"
	typeDate   = "date"
	typeText   = "text"
)

// Serializer replaces schema <name> on each write.
type Serializer struct {
	pool *pgxpool.Pool
}

// New returns a Serializer using pool.
func New(pool *pgxpool.Pool) *Serializer {
	return &Serializer{pool: pool}
}

// Connect opens and pings a pool for url.
func Connect(ctx context.Context, url string, maxConns int) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// Write drops and recreates the artifact schema in one transaction, so a
// failed export leaves the previous contents intact.
func (s *Serializer) Write(ctx context.Context, name string, tables []core.Table) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range SchemaDDL(name) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return "", fmt.Errorf("prepare schema %s: %w", name, err)
		}
	}

	for _, t := range tables {
		types := ColumnTypes(t)
		if _, err := tx.Exec(ctx, CreateTableDDL(name, t, types)); err != nil {
			return "", fmt.Errorf("create table %s: %w", t.Name, err)
		}
		if len(t.Rows) == 0 {
			continue
		}
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{name, t.Name},
			t.Columns,
			pgx.CopyFromRows(CopyRows(t, types)),
		)
		if err != nil {
			return "", fmt.Errorf("copy %s: %w", t.Name, err)
		}
		if int(n) != len(t.Rows) {
			return "", fmt.Errorf("copy %s: wrote %d of %d rows", t.Name, n, len(t.Rows))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return "postgres:" + name, nil
}

// SchemaDDL returns the statements that reset the artifact schema.
func SchemaDDL(schema string) []string {
	ident := pgx.Identifier{schema}.Sanitize()
	return []string{
		"DROP SCHEMA IF EXISTS " + ident + " CASCADE",
		"CREATE SCHEMA " + ident,
	}
}

// CreateTableDDL returns the CREATE TABLE statement for t.
func CreateTableDDL(schema string, t core.Table, types []string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(pgx.Identifier{schema, t.Name}.Sanitize())
	b.WriteString(" (")
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{c}.Sanitize())
		b.WriteString(" ")
		b.WriteString(types[i])
	}
	b.WriteString(")")
	return b.String()
}

// ColumnTypes picks bigint or date for a column when every non-blank cell has
// that type, and text otherwise. Raw fallbacks in a date column make it text.
func ColumnTypes(t core.Table) []string {
	types := make([]string, len(t.Columns))
	for col := range t.Columns {
		kind := ""
		for _, row := range t.Rows {
			if col >= len(row) || row[col] == nil {
				continue
			}
			k := cellType(row[col])
			if kind == "" {
				kind = k
			} else if kind != k {
				kind = typeText
				break
			}
		}
		if kind == "" {
			kind = typeText
		}
		types[col] = kind
	}
	return types
}

func cellType(v any) string {
	switch v.(type) {
	case int, int64:
		return typeBigint
	case time.Time:
		return typeDate
	default:
		return typeText
	}
}

// CopyRows converts cells to COPY values matching types.
func CopyRows(t core.Table, types []string) [][]any {
	rows := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		out := make([]any, len(t.Columns))
		for col := range t.Columns {
			if col >= len(row) || row[col] == nil {
				continue
			}
			v := row[col]
			switch types[col] {
			case typeBigint:
				switch n := v.(type) {
				case int:
					out[col] = int64(n)
				case int64:
					out[col] = n
				}
			case typeDate:
				out[col] = v
			default:
				out[col] = core.FormatCell(v)
			}
		}
		rows[i] = out
	}
	return rows
}
