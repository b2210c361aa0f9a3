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

package store

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks Store

import (
	"context"
	"fmt"

	"go.uber.org/atomic"

	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/schema"
)

// Store persists user records. Implementations must be safe for concurrent use.
//
// A directory calls DefineSchema and EnsureSchemaSynced once at start, before
// any other method.
type Store interface {
	// DefineSchema turns the sealed field list into the model the store
	// materializes records with.
	DefineSchema(ctx context.Context, name string, fields []schema.Field) (*schema.Model, error)
	// EnsureSchemaSynced creates or migrates the backing storage for the model.
	// Migrations are additive: missing columns are added, nothing is dropped.
	EnsureSchemaSynced(ctx context.Context, model *schema.Model) error
	// FindByIdentity loads a record. It returns nil and no error when the
	// identity is unknown.
	FindByIdentity(ctx context.Context, identity int64) (*record.Record, error)
	// Materialize builds a record instance from data without persisting it.
	Materialize(data record.Data) *record.Record
	// Save inserts or updates the record.
	Save(ctx context.Context, rec *record.Record) error
	// Count returns the number of persisted records.
	Count(ctx context.Context) (int64, error)
}

// Base implements the model handling shared by the adapters.
type Base struct {
	model *atomic.Pointer[schema.Model]
}

// NewBase creates a Base without a model.
func NewBase() Base {
	return Base{model: atomic.NewPointer[schema.Model](nil)}
}

// DefineSchema records the model built from fields.
func (b Base) DefineSchema(_ context.Context, name string, fields []schema.Field) (*schema.Model, error) {
	model := schema.NewModel(name, fields)
	b.model.Store(model)
	return model, nil
}

// Model returns the model recorded by DefineSchema, or nil.
func (b Base) Model() *schema.Model {
	return b.model.Load()
}

// Materialize builds a record with the model defaults.
func (b Base) Materialize(data record.Data) *record.Record {
	return record.New(data.Clone(), record.WithModel(b.Model()))
}

// Rehydrate builds a record from stored values, coercing every extra field to
// the type of its descriptor. Stored fields that the model no longer declares
// are ignored.
func (b Base) Rehydrate(data record.Data) (*record.Record, error) {
	model := b.Model()
	if model == nil {
		return record.New(data), nil
	}
	fields := make(map[string]any, len(data.Fields))
	for name, value := range data.Fields {
		field, ok := model.Field(name)
		if !ok || schema.IsBase(name) {
			continue
		}
		coerced, err := field.Descriptor.Coerce(value)
		if err != nil {
			return nil, fmt.Errorf("identity=(%d) field=(%s): %w", data.Identity, name, err)
		}
		fields[name] = coerced
	}
	data.Fields = fields
	return record.New(data, record.WithModel(model)), nil
}
