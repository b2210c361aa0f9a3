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

package memory

import (
	"context"
	"sync"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/schema"
	"github.com/tochemey/userdir/store"
)

// Store keeps records in memory. Every lookup returns a fresh record.
type Store struct {
	store.Base

	mu     sync.RWMutex
	rows   map[int64]record.Data
	closed bool
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		Base: store.NewBase(),
		rows: make(map[int64]record.Data),
	}
}

// EnsureSchemaSynced fills the defaults of fields added since the rows were written.
func (s *Store) EnsureSchemaSynced(_ context.Context, model *schema.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}
	defaults := model.Defaults()
	for id, row := range s.rows {
		if row.Fields == nil {
			row.Fields = make(map[string]any, len(defaults))
		}
		for name, value := range defaults {
			if _, ok := row.Fields[name]; !ok {
				row.Fields[name] = value
			}
		}
		s.rows[id] = row
	}
	return nil
}

// FindByIdentity implements store.Store.
func (s *Store) FindByIdentity(_ context.Context, identity int64) (*record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errors.ErrStoreClosed
	}
	row, ok := s.rows[identity]
	if !ok {
		return nil, nil
	}
	return s.Rehydrate(row.Clone())
}

// Save implements store.Store.
func (s *Store) Save(_ context.Context, rec *record.Record) error {
	data := rec.Data()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrStoreClosed
	}
	s.rows[data.Identity] = data
	return nil
}

// Count implements store.Store.
func (s *Store) Count(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, errors.ErrStoreClosed
	}
	return int64(len(s.rows)), nil
}

// Close releases the rows. Further calls fail with ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.rows = make(map[int64]record.Data)
	s.mu.Unlock()
	return nil
}
