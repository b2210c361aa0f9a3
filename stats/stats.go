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

package stats

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"

	"github.com/tochemey/userdir/eventstream"
	"github.com/tochemey/userdir/log"
)

const (
	// SourceUsersTotal reports the number of stored records.
	SourceUsersTotal = "users:total"
	// SourceUsersCreated reports the number of records created since Start.
	SourceUsersCreated = "users:created"

	// TypeNumber is the type of single value sources.
	TypeNumber = "number"
)

// Source is what the collector reads: a directory satisfies it.
type Source interface {
	Count(ctx context.Context) (int64, error)
	Subscribe() eventstream.Subscriber
	Unsubscribe(sub eventstream.Subscriber)
}

// Series is one named value of a report.
type Series struct {
	Name string `json:"name"`
	Data int64  `json:"data"`
}

// Report is the value of a statistics source.
type Report struct {
	Type   string   `json:"type"`
	Series []Series `json:"series"`
}

type reporter func(ctx context.Context) (Report, error)

// Collector computes the user statistics of a directory and exports them to
// Prometheus.
type Collector struct {
	source   Source
	logger   log.Logger
	registry prometheus.Registerer

	created      *atomic.Int64
	createdTotal prometheus.Counter
	usersTotal   prometheus.GaugeFunc
	reporters    map[string]reporter

	mu      sync.Mutex
	sub     eventstream.Subscriber
	wg      sync.WaitGroup
	started *atomic.Bool
}

// New creates a Collector and registers its metrics.
func New(source Source, opts ...Option) (*Collector, error) {
	collector := &Collector{
		source:   source,
		logger:   log.DiscardLogger,
		registry: prometheus.DefaultRegisterer,
		created:  atomic.NewInt64(0),
		started:  atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(collector)
	}

	collector.createdTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "userdir_users_created_total",
		Help: "Total number of user records created since start",
	})
	collector.usersTotal = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "userdir_users_total",
		Help: "Number of stored user records",
	}, collector.gauge)

	for _, metric := range []prometheus.Collector{collector.createdTotal, collector.usersTotal} {
		if err := collector.registry.Register(metric); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	collector.reporters = map[string]reporter{
		SourceUsersTotal:   collector.usersTotalReport,
		SourceUsersCreated: collector.usersCreatedReport,
	}
	return collector, nil
}

// Start subscribes to the create events.
func (x *Collector) Start() {
	if !x.started.CompareAndSwap(false, true) {
		return
	}

	sub := x.source.Subscribe()
	x.mu.Lock()
	x.sub = sub
	x.mu.Unlock()

	x.wg.Add(1)
	go x.consume(sub)
}

// Stop unsubscribes from the create events.
func (x *Collector) Stop() {
	if !x.started.CompareAndSwap(true, false) {
		return
	}
	x.mu.Lock()
	sub := x.sub
	x.sub = nil
	x.mu.Unlock()

	x.source.Unsubscribe(sub)
	x.wg.Wait()
}

// Created returns the number of create events seen since Start.
func (x *Collector) Created() int64 {
	return x.created.Load()
}

// Total returns the number of stored records.
func (x *Collector) Total(ctx context.Context) (int64, error) {
	return x.source.Count(ctx)
}

// Sources returns the sorted names of the statistics sources.
func (x *Collector) Sources() []string {
	names := make([]string, 0, len(x.reporters))
	for name := range x.reporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Report computes a statistics source. ok is false for unknown sources.
func (x *Collector) Report(ctx context.Context, source string) (report Report, ok bool, err error) {
	fn, ok := x.reporters[source]
	if !ok {
		return Report{}, false, nil
	}
	report, err = fn(ctx)
	return report, true, err
}

func (x *Collector) usersTotalReport(ctx context.Context) (Report, error) {
	total, err := x.Total(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{Type: TypeNumber, Series: []Series{{Name: "Accounts in the bot", Data: total}}}, nil
}

func (x *Collector) usersCreatedReport(context.Context) (Report, error) {
	return Report{Type: TypeNumber, Series: []Series{{Name: "Accounts created", Data: x.Created()}}}, nil
}

func (x *Collector) gauge() float64 {
	total, err := x.Total(context.Background())
	if err != nil {
		x.logger.Warnf("failed to count users: %v", err)
		return 0
	}
	return float64(total)
}

func (x *Collector) consume(sub eventstream.Subscriber) {
	defer x.wg.Done()
	for {
		if _, ok := sub.Wait(); !ok {
			return
		}
		x.created.Inc()
		x.createdTotal.Inc()
	}
}
