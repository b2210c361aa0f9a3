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

package directory

import (
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/userdir/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a directory.
	Apply(dir *Directory)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Directory)

func (f OptionFunc) Apply(dir *Directory) {
	f(dir)
}

// WithLogger sets the directory logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(dir *Directory) {
		dir.logger = logger
	})
}

// WithCacheCapacity bounds the record cache to capacity records with a least
// recently used eviction policy. The cache is unbounded by default.
func WithCacheCapacity(capacity int) Option {
	return OptionFunc(func(dir *Directory) {
		dir.cacheCapacity = capacity
	})
}

// WithStrictGroupNames makes finalizing a method group whose name is already
// registered fail with ErrGroupNameConflict instead of logging a warning.
func WithStrictGroupNames() Option {
	return OptionFunc(func(dir *Directory) {
		dir.strictGroupNames = true
	})
}

// WithModelName sets the name the store model is defined with
func WithModelName(name string) Option {
	return OptionFunc(func(dir *Directory) {
		dir.modelName = name
	})
}

// WithFlushInterval sets how often changed records are saved.
// A non-positive interval saves only on Flush and Stop.
func WithFlushInterval(interval time.Duration) Option {
	return OptionFunc(func(dir *Directory) {
		dir.flushInterval = interval
	})
}

// WithMetrics enables the OpenTelemetry instruments. They are created from the
// global meter provider unless WithMeterProvider is set.
func WithMetrics() Option {
	return OptionFunc(func(dir *Directory) {
		dir.metricsEnabled = true
	})
}

// WithMeterProvider enables the OpenTelemetry instruments on the given provider.
func WithMeterProvider(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(dir *Directory) {
		dir.metricsEnabled = true
		dir.meterProvider = provider
	})
}

// WithProfileURL sets the base of the links returned by the url method
func WithProfileURL(base string) Option {
	return OptionFunc(func(dir *Directory) {
		dir.profileURL = base
	})
}
