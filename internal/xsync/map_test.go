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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := NewMap[int64, string]()
	m.Set(1, "a")
	m.Set(-5, "b")

	value, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", value)
	_, ok = m.Get(2)
	assert.False(t, ok)

	actual, loaded := m.GetOrSet(1, "z")
	assert.True(t, loaded)
	assert.Equal(t, "a", actual)
	actual, loaded = m.GetOrSet(2, "c")
	assert.False(t, loaded)
	assert.Equal(t, "c", actual)

	assert.Equal(t, 3, m.Len())
	assert.ElementsMatch(t, []int64{1, -5, 2}, m.Keys())
	assert.ElementsMatch(t, []string{"a", "b", "c"}, m.Values())

	seen := 0
	m.Range(func(int64, string) { seen++ })
	assert.Equal(t, 3, seen)

	m.Delete(1)
	assert.Equal(t, 2, m.Len())
	m.Reset()
	assert.Zero(t, m.Len())
}

func TestMapConcurrentGetOrSet(t *testing.T) {
	m := NewMap[int, int]()
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		stored int
	)
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, loaded := m.GetOrSet(7, i); !loaded {
				mu.Lock()
				stored++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, stored)
}

func TestMapSpreadsKeys(t *testing.T) {
	m := NewMap[int64, int64]()
	for i := range int64(1000) {
		m.Set(i, i)
	}
	assert.Equal(t, 1000, m.Len())

	used := 0
	for _, s := range m.shards {
		if len(s.data) > 0 {
			used++
		}
	}
	assert.Greater(t, used, 1)
}
