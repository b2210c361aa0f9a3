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

package xsync

import (
	"hash/maphash"
	"sync"
)

const shardCount = 16

type shard[K comparable, V any] struct {
	sync.RWMutex
	data map[K]V
}

// Map is a concurrent map split into shards. Keys are spread over the shards
// with a seeded hash so that writers on different keys rarely contend.
type Map[K comparable, V any] struct {
	seed   maphash.Seed
	shards [shardCount]*shard[K, V]
}

// NewMap creates an empty Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	m := &Map[K, V]{seed: maphash.MakeSeed()}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{data: make(map[K]V)}
	}
	return m
}

func (m *Map[K, V]) shardOf(k K) *shard[K, V] {
	return m.shards[maphash.Comparable(m.seed, k)%shardCount]
}

// Set stores v under k.
func (m *Map[K, V]) Set(k K, v V) {
	s := m.shardOf(k)
	s.Lock()
	s.data[k] = v
	s.Unlock()
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	s := m.shardOf(k)
	s.RLock()
	v, ok := s.data[k]
	s.RUnlock()
	return v, ok
}

// GetOrSet returns the value already stored under k, or stores v. loaded
// reports which of the two happened.
func (m *Map[K, V]) GetOrSet(k K, v V) (actual V, loaded bool) {
	s := m.shardOf(k)
	s.Lock()
	defer s.Unlock()
	if existing, ok := s.data[k]; ok {
		return existing, true
	}
	s.data[k] = v
	return v, false
}

// Delete removes k.
func (m *Map[K, V]) Delete(k K) {
	s := m.shardOf(k)
	s.Lock()
	delete(s.data, k)
	s.Unlock()
}

// Len returns the number of entries. It is not a snapshot: shards are
// counted one after the other.
func (m *Map[K, V]) Len() int {
	n := 0
	for _, s := range m.shards {
		s.RLock()
		n += len(s.data)
		s.RUnlock()
	}
	return n
}

// Range calls f for every entry, one shard at a time under that shard's
// read lock. f must not write to the map.
func (m *Map[K, V]) Range(f func(K, V)) {
	for _, s := range m.shards {
		s.RLock()
		for k, v := range s.data {
			f(k, v)
		}
		s.RUnlock()
	}
}

// Values returns the values in no particular order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Len())
	m.Range(func(_ K, v V) {
		values = append(values, v)
	})
	return values
}

// Keys returns the keys in no particular order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Range(func(k K, _ V) {
		keys = append(keys, k)
	})
	return keys
}

// Reset removes every entry.
func (m *Map[K, V]) Reset() {
	for _, s := range m.shards {
		s.Lock()
		clear(s.data)
		s.Unlock()
	}
}
