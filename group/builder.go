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
	"sync"

	"go.uber.org/multierr"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/record"
)

// Builder adds methods to a group and finalizes it.
type Builder struct {
	registry *Registry
	group    *Group

	mu  sync.Mutex
	err error
}

// AddMethod adds a method and returns the builder for chaining. A method
// added after Finalize is ignored and the ClosedGroupError is reported by Err.
func (b *Builder) AddMethod(name string, fn record.Method) *Builder {
	if err := b.Method(name, fn); err != nil {
		b.mu.Lock()
		b.err = multierr.Append(b.err, err)
		b.mu.Unlock()
	}
	return b
}

// Method adds a method and returns the failure directly.
func (b *Builder) Method(name string, fn record.Method) error {
	if b.group == nil {
		return b.Err()
	}
	return b.group.add(name, fn)
}

// Finalize closes the group and registers it. A group can be finalized once:
// further calls return a ClosedGroupError and leave the registry untouched,
// the group stays registered a single time. Errors recorded by AddMethod
// before Finalize are returned and the group is not registered.
func (b *Builder) Finalize() error {
	if err := b.Err(); err != nil {
		return err
	}

	b.group.mu.Lock()
	if b.group.finalized {
		b.group.mu.Unlock()
		return errors.NewClosedGroupError(b.group.name, "")
	}
	b.group.finalized = true
	b.group.mu.Unlock()

	if err := b.registry.register(b.group); err != nil {
		b.mu.Lock()
		b.err = err
		b.mu.Unlock()
		return err
	}
	return nil
}

// Err returns the errors recorded by AddMethod and Finalize.
func (b *Builder) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Group returns the group being built.
func (b *Builder) Group() *Group {
	return b.group
}
