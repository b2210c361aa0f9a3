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

package eventstream

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStream(t *testing.T) {
	t.Run("subscription bookkeeping", func(t *testing.T) {
		broker := New()
		t.Cleanup(broker.Close)

		sub := broker.AddSubscriber()
		require.NotNil(t, sub)
		assert.NotEmpty(t, sub.ID())
		assert.True(t, sub.Active())

		broker.Subscribe(sub, "create")
		broker.Subscribe(sub, "update")
		assert.Equal(t, 1, broker.SubscribersCount("create"))
		assert.Equal(t, []string{"create", "update"}, sub.Topics())

		broker.Unsubscribe(sub, "update")
		assert.Zero(t, broker.SubscribersCount("update"))
		assert.Equal(t, []string{"create"}, sub.Topics())

		broker.RemoveSubscriber(sub)
		assert.Zero(t, broker.SubscribersCount("create"))
		assert.False(t, sub.Active())

		broker.Subscribe(sub, "create")
		assert.Zero(t, broker.SubscribersCount("create"))
	})
	t.Run("publish reaches topic subscribers in order", func(t *testing.T) {
		broker := New()
		t.Cleanup(broker.Close)

		first := broker.AddSubscriber()
		second := broker.AddSubscriber()
		other := broker.AddSubscriber()
		broker.Subscribe(first, "create")
		broker.Subscribe(second, "create")
		broker.Subscribe(other, "other")

		broker.Publish("create", 1)
		broker.Publish("create", 2)
		broker.Publish("nobody", 3)

		for _, sub := range []Subscriber{first, second} {
			var payloads []any
			for message := range sub.Iterator() {
				assert.Equal(t, "create", message.Topic())
				payloads = append(payloads, message.Payload())
			}
			assert.Equal(t, []any{1, 2}, payloads)
		}
		assert.Empty(t, other.Iterator())
	})
	t.Run("closed stream hands out inactive subscribers", func(t *testing.T) {
		broker := New()
		broker.Close()

		sub := broker.AddSubscriber()
		assert.False(t, sub.Active())
		broker.Subscribe(sub, "create")
		assert.Zero(t, broker.SubscribersCount("create"))
	})
	t.Run("inactive subscribers receive nothing", func(t *testing.T) {
		broker := New()
		sub := broker.AddSubscriber()
		broker.Subscribe(sub, "create")
		sub.Shutdown()
		broker.Publish("create", "x")
		assert.Empty(t, sub.Iterator())
		broker.Close()
	})
}

func TestSubscriberWait(t *testing.T) {
	defer goleak.VerifyNone(t)

	broker := New()
	sub := broker.AddSubscriber()
	broker.Subscribe(sub, "create")

	var (
		wg       sync.WaitGroup
		received []any
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			message, ok := sub.Wait()
			if !ok {
				return
			}
			received = append(received, message.Payload())
			if len(received) == 3 {
				return
			}
		}
	}()

	for i := range 3 {
		broker.Publish("create", i)
	}
	wg.Wait()
	assert.Equal(t, []any{0, 1, 2}, received)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, ok := sub.Wait()
		assert.False(t, ok)
	}()
	broker.Close()
	wg.Wait()
}
