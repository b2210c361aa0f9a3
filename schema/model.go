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

// Model is an immutable snapshot of a FieldSchema handed to a store.
type Model struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewModel creates a Model. An empty name falls back to DefaultModelName.
func NewModel(name string, fields []Field) *Model {
	if name == "" {
		name = DefaultModelName
	}
	m := &Model{
		name:   name,
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(m.fields, fields)
	for i, field := range m.fields {
		m.index[field.Name] = i
	}
	return m
}

// Name returns the model (table, bucket, key prefix) name.
func (m *Model) Name() string {
	return m.name
}

// Fields returns the model fields in declaration order.
func (m *Model) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Field returns the named field.
func (m *Model) Field(name string) (Field, bool) {
	pos, ok := m.index[name]
	if !ok {
		return Field{}, false
	}
	return m.fields[pos], true
}

// Extras returns the fields that are not base fields.
func (m *Model) Extras() []Field {
	out := make([]Field, 0, len(m.fields))
	for _, field := range m.fields {
		if !IsBase(field.Name) {
			out = append(out, field)
		}
	}
	return out
}

// Defaults returns the zero value of every non base field.
func (m *Model) Defaults() map[string]any {
	out := make(map[string]any, len(m.fields))
	for _, field := range m.Extras() {
		out[field.Name] = field.Descriptor.Zero()
	}
	return out
}
