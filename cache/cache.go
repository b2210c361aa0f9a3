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

package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/atomic"

	"github.com/tochemey/userdir/internal/xsync"
	"github.com/tochemey/userdir/record"
)

// Cache maps identities to composed records. A present key always maps to a
// record whose method groups are already composed.
type Cache interface {
	// Get returns the cached record of an identity.
	Get(identity int64) (*record.Record, bool)
	// Peek is Get without updating the counters or the eviction order.
	Peek(identity int64) (*record.Record, bool)
	// Put stores rec under identity, replacing any previous record.
	Put(identity int64, rec *record.Record)
	// Len returns the number of cached records.
	Len() int
	// Records returns the cached records in no particular order.
	Records() []*record.Record
	// Stats returns the lookup counters.
	Stats() Stats
	// Reset empties the cache.
	Reset()
}

// Stats holds the lookup counters of a cache.
type Stats struct {
	Hits   uint64
	Misses uint64
}

type counters struct {
	hits   *atomic.Uint64
	misses *atomic.Uint64
}

func newCounters() counters {
	return counters{hits: atomic.NewUint64(0), misses: atomic.NewUint64(0)}
}

func (c counters) observe(hit bool) {
	if hit {
		c.hits.Inc()
		return
	}
	c.misses.Inc()
}

func (c counters) stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// unbounded keeps every record until the process exits.
type unbounded struct {
	records *xsync.Map[int64, *record.Record]
	counters
}

var _ Cache = (*unbounded)(nil)

// New creates an unbounded cache without eviction or expiry.
func New() Cache {
	return &unbounded{
		records:  xsync.NewMap[int64, *record.Record](),
		counters: newCounters(),
	}
}

func (c *unbounded) Get(identity int64) (*record.Record, bool) {
	rec, ok := c.records.Get(identity)
	c.observe(ok)
	return rec, ok
}

func (c *unbounded) Peek(identity int64) (*record.Record, bool) {
	return c.records.Get(identity)
}

func (c *unbounded) Put(identity int64, rec *record.Record) {
	c.records.Set(identity, rec)
}

func (c *unbounded) Len() int {
	return c.records.Len()
}

func (c *unbounded) Records() []*record.Record {
	return c.records.Values()
}

func (c *unbounded) Stats() Stats {
	return c.stats()
}

func (c *unbounded) Reset() {
	c.records.Reset()
}

// bounded evicts the least recently used record past its capacity.
type bounded struct {
	records *lru.Cache
	counters
}

var _ Cache = (*bounded)(nil)

// NewLRU creates a cache holding at most capacity records.
func NewLRU(capacity int) (Cache, error) {
	records, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create the record cache: %w", err)
	}
	return &bounded{records: records, counters: newCounters()}, nil
}

func (c *bounded) Get(identity int64) (*record.Record, bool) {
	value, ok := c.records.Get(identity)
	c.observe(ok)
	if !ok {
		return nil, false
	}
	return value.(*record.Record), true
}

func (c *bounded) Peek(identity int64) (*record.Record, bool) {
	value, ok := c.records.Peek(identity)
	if !ok {
		return nil, false
	}
	return value.(*record.Record), true
}

func (c *bounded) Put(identity int64, rec *record.Record) {
	c.records.Add(identity, rec)
}

func (c *bounded) Len() int {
	return c.records.Len()
}

func (c *bounded) Records() []*record.Record {
	keys := c.records.Keys()
	out := make([]*record.Record, 0, len(keys))
	for _, key := range keys {
		if value, ok := c.records.Peek(key); ok {
			out = append(out, value.(*record.Record))
		}
	}
	return out
}

func (c *bounded) Stats() Stats {
	return c.stats()
}

func (c *bounded) Reset() {
	c.records.Purge()
}
