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

package savecenter

import (
	"context"
	"fmt"
	"sync"
	"time"

	goset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/userdir/internal/ticker"
	"github.com/tochemey/userdir/log"
	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/store"
)

const (
	// DefaultInterval is the default periodic flush interval.
	DefaultInterval = time.Second
	// DefaultConcurrency is the default number of concurrent saves.
	DefaultConcurrency = 8
)

// SaveCenter persists changed records in the background. Records report their
// changes through MarkDirty; the save center writes them with Store.Save on an
// interval, on Flush and on Stop. A record whose save fails stays dirty and is
// retried on the next flush.
type SaveCenter struct {
	store       store.Store
	logger      log.Logger
	interval    time.Duration
	concurrency int

	mu    sync.Mutex
	dirty goset.Set[*record.Record]
	// records of the flush in progress, nil between flushes
	saving goset.Set[*record.Record]

	// serializes flushes so a record is never saved twice concurrently
	flushMu sync.Mutex

	started *atomic.Bool
	ticker  *ticker.Ticker
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

var _ record.Tracker = (*SaveCenter)(nil)

// New creates a SaveCenter writing to st.
func New(st store.Store, opts ...Option) *SaveCenter {
	center := &SaveCenter{
		store:       st,
		logger:      log.DiscardLogger,
		interval:    DefaultInterval,
		concurrency: DefaultConcurrency,
		dirty:       goset.NewThreadUnsafeSet[*record.Record](),
		started:     atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(center)
	}
	return center
}

// MarkDirty queues rec for the next flush.
func (x *SaveCenter) MarkDirty(rec *record.Record) {
	if rec == nil {
		return
	}
	x.mu.Lock()
	x.dirty.Add(rec)
	x.mu.Unlock()
}

// Pending returns the number of records waiting to be flushed.
func (x *SaveCenter) Pending() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.dirty.Cardinality()
}

// Lookup returns the unsaved record of identity: either dirty or part of the
// flush in progress.
func (x *SaveCenter) Lookup(identity int64) (*record.Record, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	var found *record.Record
	match := func(rec *record.Record) bool {
		if rec.Identity() == identity {
			found = rec
			return true
		}
		return false
	}
	x.dirty.Each(match)
	if found == nil && x.saving != nil {
		x.saving.Each(match)
	}
	return found, found != nil
}

// Start starts the periodic flush. It is a no-op when already started or
// when the interval is not positive.
func (x *SaveCenter) Start() {
	if x.interval <= 0 || !x.started.CompareAndSwap(false, true) {
		return
	}

	x.ticker = ticker.New(x.interval)
	x.stopCh = make(chan struct{})
	x.ticker.Start()

	x.wg.Add(1)
	go x.loop()
	x.logger.Debugf("save center started with interval=(%s)", x.interval)
}

// Flush saves every dirty record and returns the combined save errors.
func (x *SaveCenter) Flush(ctx context.Context) error {
	x.flushMu.Lock()
	defer x.flushMu.Unlock()

	x.mu.Lock()
	batch := x.dirty
	x.dirty = goset.NewThreadUnsafeSet[*record.Record]()
	if batch.Cardinality() == 0 {
		x.mu.Unlock()
		return nil
	}
	x.saving = batch
	x.mu.Unlock()

	var (
		errMu  sync.Mutex
		errs   error
		eg     errgroup.Group
		failed = goset.NewSet[*record.Record]()
	)
	eg.SetLimit(x.concurrency)

	for rec := range batch.Iter() {
		eg.Go(func() error {
			_, version := rec.Snapshot()
			if err := x.store.Save(ctx, rec); err != nil {
				failed.Add(rec)
				errMu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("identity=(%d): %w", rec.Identity(), err))
				errMu.Unlock()
				return nil
			}
			if !rec.MarkClean(version) {
				// changed while saving: the tracker has queued it again
				x.MarkDirty(rec)
			}
			return nil
		})
	}
	_ = eg.Wait()

	x.mu.Lock()
	for rec := range failed.Iter() {
		x.dirty.Add(rec)
	}
	x.saving = nil
	x.mu.Unlock()
	return errs
}

// Stop stops the periodic flush and flushes the remaining dirty records.
func (x *SaveCenter) Stop(ctx context.Context) error {
	if x.started.CompareAndSwap(true, false) {
		close(x.stopCh)
		x.wg.Wait()
		x.ticker.Stop()
	}
	return x.Flush(ctx)
}

func (x *SaveCenter) loop() {
	defer x.wg.Done()
	for {
		select {
		case <-x.ticker.Ticks:
			if err := x.Flush(context.Background()); err != nil {
				x.logger.Errorf("failed to save dirty records: %v", err)
			}
		case <-x.stopCh:
			return
		}
	}
}
