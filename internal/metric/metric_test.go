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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestProvider(t *testing.T) {
	t.Run("defaults to the global provider", func(t *testing.T) {
		previous := otel.GetMeterProvider()
		t.Cleanup(func() { otel.SetMeterProvider(previous) })

		global := noop.NewMeterProvider()
		otel.SetMeterProvider(global)

		provider := New()
		assert.Equal(t, metric.MeterProvider(global), provider.meterProvider)
		assert.NotNil(t, provider.Meter())
	})
	t.Run("custom provider and nil option", func(t *testing.T) {
		custom := noop.NewMeterProvider()
		provider := New(WithMeterProvider(custom), WithMeterProvider(nil))
		assert.Equal(t, metric.MeterProvider(custom), provider.meterProvider)
	})
}

func TestDirectoryMetric(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = meterProvider.Shutdown(ctx) })

	instruments, err := NewDirectoryMetric(New(WithMeterProvider(meterProvider)).Meter())
	require.NoError(t, err)

	registration, err := instruments.Observe(func() Observation {
		return Observation{CacheHits: 7, CacheMisses: 3, CacheSize: 4}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = registration.Unregister() })

	instruments.RecordCreated(ctx)
	instruments.RecordCreated(ctx)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	values := make(map[string]int64)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		switch data := m.Data.(type) {
		case metricdata.Sum[int64]:
			values[m.Name] = data.DataPoints[0].Value
		case metricdata.Gauge[int64]:
			values[m.Name] = data.DataPoints[0].Value
		}
	}

	assert.Equal(t, map[string]int64{
		"userdir.records.created": 2,
		"userdir.cache.hits":      7,
		"userdir.cache.misses":    3,
		"userdir.cache.size":      4,
	}, values)
}

func TestDirectoryMetricErrors(t *testing.T) {
	errBoom := errors.New("boom")
	for _, name := range []string{
		"userdir.records.created",
		"userdir.cache.hits",
		"userdir.cache.misses",
		"userdir.cache.size",
	} {
		t.Run(name, func(t *testing.T) {
			meter := failingMeter{Meter: noop.NewMeterProvider().Meter("test"), fail: name, err: errBoom}
			instruments, err := NewDirectoryMetric(meter)
			require.ErrorIs(t, err, errBoom)
			assert.Nil(t, instruments)
		})
	}
}

type failingMeter struct {
	metric.Meter
	fail string
	err  error
}

func (m failingMeter) Int64Counter(name string, opts ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	if name == m.fail {
		return nil, m.err
	}
	return m.Meter.Int64Counter(name, opts...)
}

func (m failingMeter) Int64ObservableCounter(name string, opts ...metric.Int64ObservableCounterOption) (metric.Int64ObservableCounter, error) {
	if name == m.fail {
		return nil, m.err
	}
	return m.Meter.Int64ObservableCounter(name, opts...)
}

func (m failingMeter) Int64ObservableGauge(name string, opts ...metric.Int64ObservableGaugeOption) (metric.Int64ObservableGauge, error) {
	if name == m.fail {
		return nil, m.err
	}
	return m.Meter.Int64ObservableGauge(name, opts...)
}
