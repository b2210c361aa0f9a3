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

package sink

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/tochemey/userdir/directory"
	"github.com/tochemey/userdir/eventstream"
	"github.com/tochemey/userdir/internal/ticker"
	"github.com/tochemey/userdir/log"
)

// DefaultInterval is the default delay between two deliveries.
const DefaultInterval = time.Second

// Source publishes the create events: a directory satisfies it.
type Source interface {
	Subscribe() eventstream.Subscriber
	Unsubscribe(sub eventstream.Subscriber)
}

// Forwarder drains the create events of a directory on an interval and
// publishes them to its sinks. A failing sink is logged and never affects the
// directory or the other sinks.
type Forwarder struct {
	source   Source
	sinks    []Sink
	logger   log.Logger
	interval time.Duration

	mu      sync.Mutex
	sub     eventstream.Subscriber
	ticker  *ticker.Ticker
	stopCh  chan struct{}
	wg      sync.WaitGroup
	started *atomic.Bool
}

// NewForwarder creates a Forwarder.
func NewForwarder(source Source, sinks []Sink, opts ...Option) *Forwarder {
	forwarder := &Forwarder{
		source:   source,
		sinks:    sinks,
		logger:   log.DiscardLogger,
		interval: DefaultInterval,
		started:  atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(forwarder)
	}
	return forwarder
}

// Start subscribes to the create events and starts the delivery loop.
func (x *Forwarder) Start() {
	if !x.started.CompareAndSwap(false, true) {
		return
	}

	x.mu.Lock()
	x.sub = x.source.Subscribe()
	x.ticker = ticker.New(x.interval)
	x.stopCh = make(chan struct{})
	x.mu.Unlock()

	x.ticker.Start()
	x.wg.Add(1)
	go x.loop()
}

// Forward delivers the pending events now and returns how many were pending.
func (x *Forwarder) Forward(ctx context.Context) int {
	x.mu.Lock()
	sub := x.sub
	x.mu.Unlock()
	if sub == nil {
		return 0
	}

	var events []Event
	for message := range sub.Iterator() {
		if event, ok := message.Payload().(*directory.CreateEvent); ok && event.Record != nil {
			events = append(events, NewEvent(event))
		}
	}
	if len(events) == 0 {
		return 0
	}

	for _, sink := range x.sinks {
		if err := x.publish(ctx, sink, events); err != nil {
			x.logger.Errorf("sink=(%s) failed to publish %d events: %v", sink.Name(), len(events), err)
		}
	}
	return len(events)
}

// Stop delivers the pending events, unsubscribes and closes the sinks.
func (x *Forwarder) Stop(ctx context.Context) error {
	if !x.started.CompareAndSwap(true, false) {
		return nil
	}

	close(x.stopCh)
	x.wg.Wait()
	x.ticker.Stop()
	x.Forward(ctx)

	x.mu.Lock()
	sub := x.sub
	x.sub = nil
	x.mu.Unlock()
	x.source.Unsubscribe(sub)

	var err error
	for _, sink := range x.sinks {
		if e := sink.Close(); e != nil {
			err = multierr.Append(err, fmt.Errorf("sink=(%s): %w", sink.Name(), e))
		}
	}
	return err
}

func (x *Forwarder) publish(ctx context.Context, sink Sink, events []Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return sink.Publish(ctx, events)
}

func (x *Forwarder) loop() {
	defer x.wg.Done()
	for {
		select {
		case <-x.ticker.Ticks:
			x.Forward(context.Background())
		case <-x.stopCh:
			return
		}
	}
}
