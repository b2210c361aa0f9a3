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
)

// Prototype is the default method set shared by every record of a directory.
// Records look methods up at call time, so a method declared after a record
// was created is visible on it.
type Prototype struct {
	mu      sync.RWMutex
	methods map[string]Method
}

// NewPrototype creates an empty Prototype.
func NewPrototype() *Prototype {
	return &Prototype{methods: make(map[string]Method)}
}

// Declare sets a method, replacing any method with the same name.
func (p *Prototype) Declare(name string, fn Method) {
	p.mu.Lock()
	p.methods[name] = fn
	p.mu.Unlock()
}

// Lookup returns the named method.
func (p *Prototype) Lookup(name string) (Method, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fn, ok := p.methods[name]
	return fn, ok
}

// Names returns the sorted method names.
func (p *Prototype) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.methods))
	for name := range p.methods {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
