// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/tochemey/userdir/schema"
	"github.com/tochemey/userdir/store/sqlstore"
)

const driverName = "postgres"

// Config holds the connection settings.
type Config struct {
	DSN                   string
	MaxOpenConnections    int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

// Open connects to PostgreSQL and returns a store on the connection pool.
func Open(ctx context.Context, config Config) (*sqlstore.Store, error) {
	db, err := sql.Open(driverName, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: failed to ping database connection: %w", err)
	}

	if config.MaxOpenConnections > 0 {
		db.SetMaxOpenConns(config.MaxOpenConnections)
	}
	if config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(config.MaxIdleConnections)
	}
	if config.ConnectionMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnectionMaxLifetime)
	}
	return sqlstore.New(db, Dialect{}), nil
}

// Dialect is the PostgreSQL dialect.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string {
	return "postgres"
}

// Placeholder implements sqlstore.Dialect.
func (Dialect) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// Quote implements sqlstore.Dialect.
func (Dialect) Quote(ident string) string {
	return pq.QuoteIdentifier(ident)
}

// ColumnType implements sqlstore.Dialect.
func (Dialect) ColumnType(d schema.Descriptor) string {
	switch d.Kind {
	case schema.KindInteger:
		return "BIGINT"
	case schema.KindBoolean:
		return "BOOLEAN"
	case schema.KindFloat:
		return "DOUBLE PRECISION"
	case schema.KindJSON:
		return "JSONB"
	default:
		if d.Size > 0 {
			return fmt.Sprintf("VARCHAR(%d)", d.Size)
		}
		return "TEXT"
	}
}

// Literal implements sqlstore.Dialect.
func (Dialect) Literal(d schema.Descriptor, value any) (string, error) {
	if d.Kind == schema.KindBoolean {
		coerced, err := d.Coerce(value)
		if err != nil {
			return "", err
		}
		if coerced.(bool) {
			return "TRUE", nil
		}
		return "FALSE", nil
	}
	return sqlstore.Literal(d, value)
}

// Columns implements sqlstore.Dialect.
func (Dialect) Columns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}
