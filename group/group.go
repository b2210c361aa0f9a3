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

package group

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/internal/validation"
	"github.com/tochemey/userdir/record"
)

// Group is a named set of methods attached to every record.
type Group struct {
	name      string
	mu        sync.RWMutex
	methods   map[string]record.Method
	finalized bool
}

func newGroup(name string) *Group {
	return &Group{name: name, methods: make(map[string]record.Method)}
}

// Name returns the group name. Two groups may share a name.
func (g *Group) Name() string {
	return g.name
}

// Finalized reports whether the group has been finalized.
func (g *Group) Finalized() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.finalized
}

// Methods returns the sorted method names.
func (g *Group) Methods() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.methods))
	for name := range g.methods {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (g *Group) add(name string, fn record.Method) error {
	if err := validation.NewNameValidator("method", name).Validate(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidMethodName, err)
	}
	if fn == nil {
		return fmt.Errorf("method=(%s) has no behavior: %w", name, errors.ErrInvalidMethodName)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalized {
		return errors.NewClosedGroupError(g.name, name)
	}
	g.methods[name] = fn
	return nil
}

// bind builds the namespace of the group for one record. Every bound method
// prepends rec to the caller's arguments.
func (g *Group) bind(rec *record.Record) *record.Namespace {
	g.mu.RLock()
	defer g.mu.RUnlock()
	bound := make(map[string]record.Bound, len(g.methods))
	for name, fn := range g.methods {
		bound[name] = func(args ...any) (any, error) {
			return fn(rec, args...)
		}
	}
	return record.NewNamespace(g.name, bound)
}
