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

	"github.com/tochemey/userdir/errors"
)

// Bound is a method already bound to its record.
type Bound func(args ...any) (any, error)

// Namespace is the set of a method group's methods bound to one record.
// It is built once and is read only afterwards.
type Namespace struct {
	name    string
	methods map[string]Bound
}

// NewNamespace creates a Namespace from bound methods.
func NewNamespace(name string, methods map[string]Bound) *Namespace {
	ns := &Namespace{name: name, methods: make(map[string]Bound, len(methods))}
	for k, fn := range methods {
		ns.methods[k] = fn
	}
	return ns
}

// Name returns the group name.
func (n *Namespace) Name() string {
	return n.name
}

// Method returns the named bound method.
func (n *Namespace) Method(name string) (Bound, bool) {
	fn, ok := n.methods[name]
	return fn, ok
}

// Methods returns the sorted method names.
func (n *Namespace) Methods() []string {
	out := make([]string, 0, len(n.methods))
	for name := range n.methods {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Call calls the named method.
func (n *Namespace) Call(name string, args ...any) (any, error) {
	fn, ok := n.methods[name]
	if !ok {
		return nil, errors.NewErrMethodNotFound(name)
	}
	return fn(args...)
}
