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
	goset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	"github.com/tochemey/userdir/internal/xsync"
)

// Stream is an in-process publish/subscribe broker keyed by topic. Publish
// never blocks: every subscriber buffers its own messages.
type Stream interface {
	// AddSubscriber creates a subscriber with no topic.
	AddSubscriber() Subscriber
	// RemoveSubscriber drops sub from all its topics and shuts it down.
	RemoveSubscriber(sub Subscriber)
	// SubscribersCount returns the number of subscribers of topic.
	SubscribersCount(topic string) int
	// Subscribe adds topic to sub. Inactive subscribers are ignored.
	Subscribe(sub Subscriber, topic string)
	// Unsubscribe removes topic from sub.
	Unsubscribe(sub Subscriber, topic string)
	// Publish hands payload to every active subscriber of topic.
	Publish(topic string, payload any)
	// Close shuts every subscriber down. Subscribers added afterwards are
	// created inactive.
	Close()
}

// EventsStream is the default Stream.
type EventsStream struct {
	subscribers *xsync.Map[string, Subscriber]
	// topic to subscriber ids
	topics *xsync.Map[string, goset.Set[string]]
	closed *atomic.Bool
}

var _ Stream = (*EventsStream)(nil)

// New creates an EventsStream.
func New() *EventsStream {
	return &EventsStream{
		subscribers: xsync.NewMap[string, Subscriber](),
		topics:      xsync.NewMap[string, goset.Set[string]](),
		closed:      atomic.NewBool(false),
	}
}

func (x *EventsStream) AddSubscriber() Subscriber {
	sub := newSubscriber()
	if x.closed.Load() {
		sub.Shutdown()
		return sub
	}
	x.subscribers.Set(sub.ID(), sub)
	return sub
}

func (x *EventsStream) RemoveSubscriber(sub Subscriber) {
	for _, topic := range sub.Topics() {
		x.Unsubscribe(sub, topic)
	}
	x.subscribers.Delete(sub.ID())
	sub.Shutdown()
}

func (x *EventsStream) SubscribersCount(topic string) int {
	if ids, ok := x.topics.Get(topic); ok {
		return ids.Cardinality()
	}
	return 0
}

func (x *EventsStream) Subscribe(sub Subscriber, topic string) {
	if !sub.Active() {
		return
	}
	// empty id sets are never removed, so a concurrent Unsubscribe cannot
	// drop the set this subscription lands in
	ids, _ := x.topics.GetOrSet(topic, goset.NewSet[string]())
	ids.Add(sub.ID())
	sub.subscribe(topic)
}

func (x *EventsStream) Unsubscribe(sub Subscriber, topic string) {
	sub.unsubscribe(topic)
	if ids, ok := x.topics.Get(topic); ok {
		ids.Remove(sub.ID())
	}
}

func (x *EventsStream) Publish(topic string, payload any) {
	ids, ok := x.topics.Get(topic)
	if !ok || ids.Cardinality() == 0 {
		return
	}

	message := NewMessage(topic, payload)
	for _, id := range ids.ToSlice() {
		if sub, ok := x.subscribers.Get(id); ok && sub.Active() {
			sub.signal(message)
		}
	}
}

func (x *EventsStream) Close() {
	x.closed.Store(true)
	x.subscribers.Range(func(_ string, sub Subscriber) {
		sub.Shutdown()
	})
	x.subscribers.Reset()
	x.topics.Reset()
}
