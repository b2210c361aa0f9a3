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

package record

import (
	"sort"
	"sync"

	goset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/schema"
)

// Method is a behavior attached to every record of a directory. The record
// the method is called on is passed first.
type Method func(rec *Record, args ...any) (any, error)

// Tracker is notified whenever a record field changes.
type Tracker interface {
	MarkDirty(rec *Record)
}

// Record is a user record: the base fields, the schema declared extra fields,
// the namespaces of the composed method groups and the changes not persisted yet.
type Record struct {
	mu            sync.RWMutex
	identity      int64
	displayName   string
	secondaryName string
	fields        map[string]any

	model   *schema.Model
	proto   *Prototype
	tracker Tracker

	dirty   goset.Set[string]
	version uint64

	namespaces map[string]*Namespace
	composed   bool
}

// New creates a record from data. The record starts clean.
func New(data Data, opts ...Option) *Record {
	rec := &Record{
		identity:      data.Identity,
		displayName:   data.DisplayName,
		secondaryName: data.SecondaryName,
		fields:        make(map[string]any, len(data.Fields)),
		dirty:         goset.NewThreadUnsafeSet[string](),
		namespaces:    make(map[string]*Namespace),
	}

	for _, opt := range opts {
		opt.Apply(rec)
	}

	if rec.model != nil {
		for name, value := range rec.model.Defaults() {
			rec.fields[name] = value
		}
	}

	for name, value := range data.Fields {
		if schema.IsBase(name) {
			continue
		}
		if rec.model != nil {
			if _, ok := rec.model.Field(name); !ok {
				continue
			}
		}
		rec.fields[name] = value
	}
	return rec
}

// Identity returns the immutable identity of the record.
// Negative identities are collectives.
func (r *Record) Identity() int64 {
	return r.identity
}

// IsCollective reports whether the record belongs to a collective account.
func (r *Record) IsCollective() bool {
	return IsCollective(r.identity)
}

// DisplayName returns the display name.
func (r *Record) DisplayName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.displayName
}

// SetDisplayName sets the display name and marks it dirty.
func (r *Record) SetDisplayName(name string) {
	r.mu.Lock()
	r.displayName = name
	r.markLocked(schema.FieldDisplayName)
	tracker := r.tracker
	r.mu.Unlock()
	r.notify(tracker)
}

// SecondaryName returns the secondary name. Collectives have none.
func (r *Record) SecondaryName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.secondaryName
}

// SetSecondaryName sets the secondary name and marks it dirty.
func (r *Record) SetSecondaryName(name string) {
	r.mu.Lock()
	r.secondaryName = name
	r.markLocked(schema.FieldSecondaryName)
	tracker := r.tracker
	r.mu.Unlock()
	r.notify(tracker)
}

// Field returns the value of a field. Base fields are addressable by name.
func (r *Record) Field(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch name {
	case schema.FieldIdentity:
		return r.identity, true
	case schema.FieldDisplayName:
		return r.displayName, true
	case schema.FieldSecondaryName:
		return r.secondaryName, true
	}
	value, ok := r.fields[name]
	return value, ok
}

// SetField sets a field value and marks it dirty. The identity cannot be
// written, and when the record has a model the field must be declared on it.
func (r *Record) SetField(name string, value any) error {
	switch name {
	case schema.FieldIdentity:
		return errors.ErrImmutableField
	case schema.FieldDisplayName:
		text, ok := value.(string)
		if !ok {
			return errors.NewErrInvalidFieldValue(name)
		}
		r.SetDisplayName(text)
		return nil
	case schema.FieldSecondaryName:
		text, ok := value.(string)
		if !ok {
			return errors.NewErrInvalidFieldValue(name)
		}
		r.SetSecondaryName(text)
		return nil
	}

	r.mu.Lock()
	if r.model != nil {
		if _, ok := r.model.Field(name); !ok {
			r.mu.Unlock()
			return errors.NewErrFieldNotDeclared(name)
		}
	}
	r.fields[name] = value
	r.markLocked(name)
	tracker := r.tracker
	r.mu.Unlock()
	r.notify(tracker)
	return nil
}

// Data returns a snapshot of the record values.
func (r *Record) Data() Data {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dataLocked()
}

func (r *Record) dataLocked() Data {
	fields := make(map[string]any, len(r.fields))
	for k, v := range r.fields {
		fields[k] = v
	}
	return Data{
		Identity:      r.identity,
		DisplayName:   r.displayName,
		SecondaryName: r.secondaryName,
		Fields:        fields,
	}
}

// Bind sets the default method set and the change tracker of a record
// rehydrated by a store.
func (r *Record) Bind(proto *Prototype, tracker Tracker) {
	r.mu.Lock()
	r.proto = proto
	r.tracker = tracker
	r.mu.Unlock()
}

// Touch marks every field dirty. It is used for records that have never been
// persisted.
func (r *Record) Touch() {
	r.mu.Lock()
	r.markLocked(schema.FieldIdentity)
	r.markLocked(schema.FieldDisplayName)
	r.markLocked(schema.FieldSecondaryName)
	for name := range r.fields {
		r.markLocked(name)
	}
	tracker := r.tracker
	r.mu.Unlock()
	r.notify(tracker)
}

// IsDirty reports whether the record has changes not persisted yet.
func (r *Record) IsDirty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dirty.Cardinality() > 0
}

// Changes returns the sorted names of the dirty fields.
func (r *Record) Changes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.dirty.ToSlice()
	sort.Strings(out)
	return out
}

// Snapshot returns the record values together with a change version to pass
// to MarkClean once the snapshot is persisted.
func (r *Record) Snapshot() (Data, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dataLocked(), r.version
}

// MarkClean clears the dirty fields when no change happened since the snapshot
// of the given version. It returns false when the record changed meanwhile.
func (r *Record) MarkClean(version uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.version != version {
		return false
	}
	r.dirty.Clear()
	return true
}

func (r *Record) markLocked(name string) {
	r.dirty.Add(name)
	r.version++
}

func (r *Record) notify(tracker Tracker) {
	if tracker != nil {
		tracker.MarkDirty(r)
	}
}

// Invoke calls a default method declared on the directory the record belongs to.
func (r *Record) Invoke(name string, args ...any) (any, error) {
	r.mu.RLock()
	proto := r.proto
	r.mu.RUnlock()
	if proto == nil {
		return nil, errors.NewErrMethodNotFound(name)
	}
	method, ok := proto.Lookup(name)
	if !ok {
		return nil, errors.NewErrMethodNotFound(name)
	}
	return method(r, args...)
}

// Compose attaches the namespaces of the method groups. A later namespace
// replaces an earlier one with the same name. Composition happens once per
// record; a second call fails with ErrRecordComposed.
func (r *Record) Compose(namespaces ...*Namespace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.composed {
		return errors.ErrRecordComposed
	}
	for _, ns := range namespaces {
		r.namespaces[ns.Name()] = ns
	}
	r.composed = true
	return nil
}

// Composed reports whether Compose has been called.
func (r *Record) Composed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.composed
}

// Group returns the namespace of the named method group.
func (r *Record) Group(name string) (*Namespace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ns, ok := r.namespaces[name]
	return ns, ok
}

// Groups returns the sorted names of the attached namespaces.
func (r *Record) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Call calls a method of a method group namespace.
func (r *Record) Call(group, method string, args ...any) (any, error) {
	ns, ok := r.Group(group)
	if !ok {
		return nil, errors.NewErrGroupNotFound(group)
	}
	return ns.Call(method, args...)
}
