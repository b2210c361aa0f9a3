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

package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	goset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/schema"
	"github.com/tochemey/userdir/store"
)

// Store persists records in one SQL table per model: the identity is the
// primary key and every declared field is a column.
type Store struct {
	store.Base

	db      *sql.DB
	dialect Dialect
	closed  *atomic.Bool
}

var _ store.Store = (*Store)(nil)

// New creates a Store on an open database handle. The Store owns db.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		Base:    store.NewBase(),
		db:      db,
		dialect: dialect,
		closed:  atomic.NewBool(false),
	}
}

// DB returns the database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// EnsureSchemaSynced creates the model table and adds the columns of fields
// declared since. Existing columns are never altered or dropped.
func (s *Store) EnsureSchemaSynced(ctx context.Context, model *schema.Model) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	table := s.dialect.Quote(model.Name())
	definitions := make([]string, 0, len(model.Fields()))
	for _, field := range model.Fields() {
		definition, err := s.columnDefinition(field)
		if err != nil {
			return err
		}
		definitions = append(definitions, definition)
	}

	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(definitions, ", "))
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("%s: creating table %s: %w", s.dialect.Name(), model.Name(), err)
	}

	columns, err := s.dialect.Columns(ctx, s.db, model.Name())
	if err != nil {
		return fmt.Errorf("%s: listing columns of %s: %w", s.dialect.Name(), model.Name(), err)
	}
	existing := goset.NewThreadUnsafeSet(columns...)

	for _, field := range model.Fields() {
		if existing.Contains(field.Name) {
			continue
		}
		definition, err := s.columnDefinition(field)
		if err != nil {
			return err
		}
		alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, definition)
		if _, err := s.db.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("%s: adding column %s: %w", s.dialect.Name(), field.Name, err)
		}
	}
	return nil
}

func (s *Store) columnDefinition(field schema.Field) (string, error) {
	column := s.dialect.Quote(field.Name)
	if field.Name == schema.FieldIdentity {
		return column + " BIGINT PRIMARY KEY", nil
	}

	definition := column + " " + s.dialect.ColumnType(field.Descriptor)
	zero := field.Descriptor.Zero()
	if zero == nil {
		return definition, nil
	}
	literal, err := s.dialect.Literal(field.Descriptor, zero)
	if err != nil {
		return "", fmt.Errorf("%s: default of %s: %w", s.dialect.Name(), field.Name, err)
	}
	return definition + " NOT NULL DEFAULT " + literal, nil
}

// FindByIdentity implements store.Store.
func (s *Store) FindByIdentity(ctx context.Context, identity int64) (*record.Record, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	model, err := s.model()
	if err != nil {
		return nil, err
	}

	fields := model.Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = s.dialect.Quote(field.Name)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s",
		strings.Join(columns, ", "),
		s.dialect.Quote(model.Name()),
		s.dialect.Quote(schema.FieldIdentity),
		s.dialect.Placeholder(1))

	values := make([]any, len(fields))
	targets := make([]any, len(fields))
	for i := range values {
		targets[i] = &values[i]
	}

	if err := s.db.QueryRowContext(ctx, query, identity).Scan(targets...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: finding identity=(%d): %w", s.dialect.Name(), identity, err)
	}

	data := record.Data{Identity: identity, Fields: make(map[string]any, len(fields))}
	for i, field := range fields {
		switch field.Name {
		case schema.FieldIdentity:
		case schema.FieldDisplayName:
			data.DisplayName = asString(values[i])
		case schema.FieldSecondaryName:
			data.SecondaryName = asString(values[i])
		default:
			data.Fields[field.Name] = values[i]
		}
	}
	return s.Rehydrate(data)
}

// Save implements store.Store.
func (s *Store) Save(ctx context.Context, rec *record.Record) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	model, err := s.model()
	if err != nil {
		return err
	}

	data := rec.Data()
	fields := model.Fields()
	columns := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	updates := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))

	for _, field := range fields {
		value, err := columnValue(field, data)
		if err != nil {
			return fmt.Errorf("%s: saving identity=(%d): %w", s.dialect.Name(), data.Identity, err)
		}
		column := s.dialect.Quote(field.Name)
		columns = append(columns, column)
		args = append(args, value)
		placeholders = append(placeholders, s.dialect.Placeholder(len(args)))
		if field.Name != schema.FieldIdentity {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", column, column))
		}
	}

	statement := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		s.dialect.Quote(model.Name()),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		s.dialect.Quote(schema.FieldIdentity),
		strings.Join(updates, ", "))

	if _, err := s.db.ExecContext(ctx, statement, args...); err != nil {
		return fmt.Errorf("%s: saving identity=(%d): %w", s.dialect.Name(), data.Identity, err)
	}
	return nil
}

// Count implements store.Store.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	model, err := s.model()
	if err != nil {
		return 0, err
	}
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.dialect.Quote(model.Name()))
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: counting records: %w", s.dialect.Name(), err)
	}
	return count, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureOpen() error {
	if s.closed.Load() {
		return errors.ErrStoreClosed
	}
	return nil
}

func (s *Store) model() (*schema.Model, error) {
	model := s.Model()
	if model == nil {
		return nil, fmt.Errorf("%s: schema is not defined", s.dialect.Name())
	}
	return model, nil
}

func columnValue(field schema.Field, data record.Data) (any, error) {
	switch field.Name {
	case schema.FieldIdentity:
		return data.Identity, nil
	case schema.FieldDisplayName:
		return data.DisplayName, nil
	case schema.FieldSecondaryName:
		return data.SecondaryName, nil
	}

	value, ok := data.Fields[field.Name]
	if !ok || value == nil {
		return field.Descriptor.Zero(), nil
	}
	if field.Descriptor.Kind != schema.KindJSON {
		return field.Descriptor.Coerce(value)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
