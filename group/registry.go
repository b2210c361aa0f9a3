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
	"sync"

	goset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/internal/validation"
	"github.com/tochemey/userdir/log"
	"github.com/tochemey/userdir/record"
)

// Registry holds the finalized method groups of a directory and composes
// them onto records.
type Registry struct {
	mu      sync.RWMutex
	ordered []*Group
	members goset.Set[*Group]
	names   map[string]int

	logger log.Logger
	strict bool
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		members: goset.NewThreadUnsafeSet[*Group](),
		names:   make(map[string]int),
		logger:  log.DiscardLogger,
	}
	for _, opt := range opts {
		opt.Apply(r)
	}
	return r
}

// CreateGroup starts a new method group. The group is not visible on records
// until its builder is finalized.
func (r *Registry) CreateGroup(name string) *Builder {
	builder := &Builder{registry: r}
	if err := validation.NewNameValidator("group", name).Validate(); err != nil {
		builder.err = fmt.Errorf("%w: %w", errors.ErrInvalidGroupName, err)
		return builder
	}
	builder.group = newGroup(name)
	return builder
}

func (r *Registry) register(g *Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.members.Contains(g) {
		return errors.NewClosedGroupError(g.name, "")
	}

	if count := r.names[g.name]; count > 0 {
		if r.strict {
			return errors.NewErrGroupNameConflict(g.name)
		}
		r.logger.Warnf("method group=(%s) is registered %d times, the last one wins", g.name, count+1)
	}

	r.members.Add(g)
	r.ordered = append(r.ordered, g)
	r.names[g.name]++
	return nil
}

// Len returns the number of registered groups.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// Groups returns the registered groups in finalize order.
func (r *Registry) Groups() []*Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Group, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Compose attaches one namespace per registered group to rec. Groups are
// applied in finalize order so the last finalized of two same-name groups
// wins. A record is composed once; a second call fails with ErrRecordComposed.
func (r *Registry) Compose(rec *record.Record) error {
	groups := r.Groups()
	namespaces := make([]*record.Namespace, 0, len(groups))
	for _, g := range groups {
		namespaces = append(namespaces, g.bind(rec))
	}
	return rec.Compose(namespaces...)
}
