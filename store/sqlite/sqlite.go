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

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tochemey/userdir/schema"
	"github.com/tochemey/userdir/store/sqlstore"
)

const (
	driverName = "sqlite3"
	// Memory is the path of a private in-memory database.
	Memory = ":memory:"
)

// Open opens or creates the SQLite database at path and returns a store on it.
func Open(ctx context.Context, path string) (*sqlstore.Store, error) {
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: unable to create the database directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}
	// SQLite has a single writer and an in-memory database lives in one connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping %s: %w", path, err)
	}
	return sqlstore.New(db, Dialect{}), nil
}

// Dialect is the SQLite dialect.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string {
	return "sqlite"
}

// Placeholder implements sqlstore.Dialect.
func (Dialect) Placeholder(int) string {
	return "?"
}

// Quote implements sqlstore.Dialect.
func (Dialect) Quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// ColumnType implements sqlstore.Dialect.
func (Dialect) ColumnType(d schema.Descriptor) string {
	switch d.Kind {
	case schema.KindInteger:
		return "INTEGER"
	case schema.KindBoolean:
		return "BOOLEAN"
	case schema.KindFloat:
		return "REAL"
	case schema.KindJSON:
		return "TEXT"
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
			return "1", nil
		}
		return "0", nil
	}
	return sqlstore.Literal(d, value)
}

// Columns implements sqlstore.Dialect.
func (Dialect) Columns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
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
