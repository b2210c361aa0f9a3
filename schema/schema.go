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

package schema

import (
	"sync"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/internal/validation"
)

// Base field names every record carries.
const (
	FieldIdentity      = "identity"
	FieldDisplayName   = "display_name"
	FieldSecondaryName = "secondary_name"
)

// DefaultModelName is the model name used when none is configured.
const DefaultModelName = "users"

const fieldNamePattern = `^[a-z][a-z0-9_]{0,62}$`

// FieldSchema is the ordered, additive set of fields of the user model.
// A name can be declared once. Fields cannot be removed.
type FieldSchema struct {
	mu     sync.RWMutex
	fields []Field
	index  map[string]int
	sealed bool
}

// New creates a FieldSchema with the base fields declared.
func New() *FieldSchema {
	s := &FieldSchema{index: make(map[string]int)}
	for _, field := range baseFields() {
		s.insert(field)
	}
	return s
}

func baseFields() []Field {
	return []Field{
		{Name: FieldIdentity, Descriptor: Descriptor{Kind: KindInteger}},
		{Name: FieldDisplayName, Descriptor: String(255, "")},
		{Name: FieldSecondaryName, Descriptor: String(255, "")},
	}
}

// IsBase reports whether name is one of the base fields.
func IsBase(name string) bool {
	return name == FieldIdentity || name == FieldDisplayName || name == FieldSecondaryName
}

// Declare adds a field. It fails with a DuplicateFieldError when the name
// exists and with ErrSchemaSealed once the schema has been sealed. A failed
// declaration leaves the schema unchanged.
func (s *FieldSchema) Declare(name string, descriptor Descriptor) error {
	if err := validation.New(validation.FailFast()).
		AddValidator(validation.NewPatternValidator(fieldNamePattern, name, errors.NewErrInvalidFieldName(name))).
		AddValidator(validation.NewBooleanValidator(descriptor.Kind != KindInvalid, errors.ErrInvalidFieldKind.Error())).
		Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[name]; ok {
		return errors.NewDuplicateFieldError(name)
	}

	if s.sealed {
		return errors.ErrSchemaSealed
	}

	s.insert(Field{Name: name, Descriptor: descriptor})
	return nil
}

func (s *FieldSchema) insert(field Field) {
	s.index[field.Name] = len(s.fields)
	s.fields = append(s.fields, field)
}

// Lookup returns the descriptor of the named field.
func (s *FieldSchema) Lookup(name string) (Descriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return s.fields[pos].Descriptor, true
}

// Fields returns a copy of the declared fields in declaration order.
func (s *FieldSchema) Fields() []Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of declared fields.
func (s *FieldSchema) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}

// Sealed reports whether Seal has been called.
func (s *FieldSchema) Sealed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealed
}

// Seal freezes the schema and returns a snapshot of it as a Model.
// Calling it again returns a fresh snapshot of the same fields.
func (s *FieldSchema) Seal(modelName string) *Model {
	s.mu.Lock()
	s.sealed = true
	fields := make([]Field, len(s.fields))
	copy(fields, s.fields)
	s.mu.Unlock()
	return NewModel(modelName, fields)
}
