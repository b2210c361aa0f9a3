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
	"sort"
	"sync"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/tochemey/userdir/internal/queue"
)

// Subscriber buffers the messages of the topics it subscribed to.
//
// The unexported methods keep implementations inside this package:
// subscribers are created by Stream.AddSubscriber.
type Subscriber interface {
	// ID returns the unique subscriber id.
	ID() string
	// Active reports whether the subscriber still receives messages.
	Active() bool
	// Topics returns the sorted subscribed topics.
	Topics() []string
	// Iterator drains the messages buffered at the time of the call into a
	// closed channel.
	Iterator() chan *Message
	// Wait blocks until a message arrives. It returns false once the
	// subscriber is shut down.
	Wait() (*Message, bool)
	// Shutdown stops the subscriber and wakes any Wait call.
	Shutdown()

	signal(message *Message)
	subscribe(topic string)
	unsubscribe(topic string)
}

type subscriber struct {
	id       string
	topics   goset.Set[string]
	messages *queue.Queue[*Message]
	active   *atomic.Bool
	once     sync.Once
}

var _ Subscriber = (*subscriber)(nil)

func newSubscriber() *subscriber {
	return &subscriber{
		id:       uuid.NewString(),
		topics:   goset.NewSet[string](),
		messages: queue.New[*Message](),
		active:   atomic.NewBool(true),
	}
}

func (s *subscriber) ID() string {
	return s.id
}

func (s *subscriber) Active() bool {
	return s.active.Load()
}

func (s *subscriber) Topics() []string {
	topics := s.topics.ToSlice()
	sort.Strings(topics)
	return topics
}

func (s *subscriber) Iterator() chan *Message {
	messages := s.messages.PopAll()
	out := make(chan *Message, len(messages))
	for _, message := range messages {
		out <- message
	}
	close(out)
	return out
}

func (s *subscriber) Wait() (*Message, bool) {
	return s.messages.Wait()
}

func (s *subscriber) Shutdown() {
	s.once.Do(func() {
		s.active.Store(false)
		s.messages.Close()
	})
}

func (s *subscriber) signal(message *Message) {
	if s.active.Load() {
		s.messages.Push(message)
	}
}

func (s *subscriber) subscribe(topic string) {
	s.topics.Add(topic)
}

func (s *subscriber) unsubscribe(topic string) {
	s.topics.Remove(topic)
}
