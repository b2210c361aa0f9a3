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
	"time"

	"github.com/tochemey/userdir/log"
)

// Option configures a SaveCenter.
type Option interface {
	Apply(center *SaveCenter)
}

// OptionFunc implements Option.
type OptionFunc func(center *SaveCenter)

var _ Option = OptionFunc(nil)

// Apply applies the option.
func (f OptionFunc) Apply(center *SaveCenter) {
	f(center)
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(center *SaveCenter) {
		center.logger = logger
	})
}

// WithInterval sets how often dirty records are flushed.
// A non-positive interval disables the periodic flush.
func WithInterval(interval time.Duration) Option {
	return OptionFunc(func(center *SaveCenter) {
		center.interval = interval
	})
}

// WithConcurrency bounds the number of concurrent saves of a flush.
func WithConcurrency(n int) Option {
	return OptionFunc(func(center *SaveCenter) {
		if n > 0 {
			center.concurrency = n
		}
	})
}
