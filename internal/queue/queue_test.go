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

package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestQueue(t *testing.T) {
	t.Run("fifo across resizes", func(t *testing.T) {
		q := New[int]()
		for i := range 100 {
			require.True(t, q.Push(i))
		}
		assert.Equal(t, 100, q.Len())
		for i := range 60 {
			item, ok := q.Pop()
			require.True(t, ok)
			assert.Equal(t, i, item)
		}
		rest := q.PopAll()
		require.Len(t, rest, 40)
		assert.Equal(t, 60, rest[0])
		assert.Equal(t, 99, rest[39])
		_, ok := q.Pop()
		assert.False(t, ok)
	})
	t.Run("wrapped ring", func(t *testing.T) {
		q := New[int]()
		for i := range 10 {
			q.Push(i)
		}
		for range 8 {
			q.Pop()
		}
		for i := 10; i < 30; i++ {
			q.Push(i)
		}
		items := q.PopAll()
		require.Len(t, items, 22)
		assert.Equal(t, 8, items[0])
		assert.Equal(t, 29, items[21])
	})
	t.Run("close drops items", func(t *testing.T) {
		q := New[string]()
		q.Push("a")
		q.Close()
		assert.True(t, q.IsClosed())
		assert.Zero(t, q.Len())
		assert.False(t, q.Push("b"))
		_, ok := q.Wait()
		assert.False(t, ok)
	})
}

func TestQueueWait(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := New[int]()
	var wg sync.WaitGroup
	received := make(chan int, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if item, ok := q.Wait(); ok {
			received <- item
		}
	}()
	time.Sleep(10 * time.Millisecond)
	q.Push(7)
	wg.Wait()
	assert.Equal(t, 7, <-received)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, ok := q.Wait()
		assert.False(t, ok)
	}()
	time.Sleep(10 * time.Millisecond)
	q.Close()
	wg.Wait()
}
