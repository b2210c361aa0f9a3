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

package metric

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// Observation is a point in time reading of the directory gauges.
type Observation struct {
	CacheHits   int64
	CacheMisses int64
	CacheSize   int64
}

// DirectoryMetric groups the instruments describing a user directory.
//
// Instruments:
//   - userdir.records.created (Int64Counter)
//   - userdir.cache.hits      (Int64ObservableCounter)
//   - userdir.cache.misses    (Int64ObservableCounter)
//   - userdir.cache.size      (Int64ObservableGauge)
type DirectoryMetric struct {
	meter          metric.Meter
	recordsCreated metric.Int64Counter
	cacheHits      metric.Int64ObservableCounter
	cacheMisses    metric.Int64ObservableCounter
	cacheSize      metric.Int64ObservableGauge
}

// NewDirectoryMetric creates the directory instruments on meter.
func NewDirectoryMetric(meter metric.Meter) (*DirectoryMetric, error) {
	instruments := DirectoryMetric{meter: meter}
	var err error

	if instruments.recordsCreated, err = meter.Int64Counter(
		"userdir.records.created",
		metric.WithDescription("Total number of records created by the directory"),
	); err != nil {
		return nil, err
	}

	if instruments.cacheHits, err = meter.Int64ObservableCounter(
		"userdir.cache.hits",
		metric.WithDescription("Total number of record cache hits"),
	); err != nil {
		return nil, err
	}

	if instruments.cacheMisses, err = meter.Int64ObservableCounter(
		"userdir.cache.misses",
		metric.WithDescription("Total number of record cache misses"),
	); err != nil {
		return nil, err
	}

	if instruments.cacheSize, err = meter.Int64ObservableGauge(
		"userdir.cache.size",
		metric.WithDescription("Number of records held by the record cache"),
	); err != nil {
		return nil, err
	}

	return &instruments, nil
}

// RecordCreated increments the created records counter.
func (x *DirectoryMetric) RecordCreated(ctx context.Context) {
	x.recordsCreated.Add(ctx, 1)
}

// Observe registers observe as the callback feeding the observable
// instruments. Unregister the returned registration on shutdown.
func (x *DirectoryMetric) Observe(observe func() Observation) (metric.Registration, error) {
	return x.meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		observation := observe()
		observer.ObserveInt64(x.cacheHits, observation.CacheHits)
		observer.ObserveInt64(x.cacheMisses, observation.CacheMisses)
		observer.ObserveInt64(x.cacheSize, observation.CacheSize)
		return nil
	}, x.cacheHits, x.cacheMisses, x.cacheSize)
}
