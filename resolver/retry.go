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

package resolver

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/flowchartsman/retry"

	"github.com/tochemey/userdir/errors"
)

// RetryConfig bounds the retries of a resolver.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultRetryConfig tries five times, from 100ms up to one second apart.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:  5,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     time.Second,
}

type retrying struct {
	underlying Resolver
	config     RetryConfig
}

var _ Resolver = (*retrying)(nil)

// WithRetry wraps r so that failed calls are retried with exponential
// backoff. ErrProfileNotFound and ErrInvalidIdentity are final.
func WithRetry(r Resolver, config RetryConfig) Resolver {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultRetryConfig.MaxAttempts
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = DefaultRetryConfig.InitialDelay
	}
	if config.MaxDelay < config.InitialDelay {
		config.MaxDelay = config.InitialDelay
	}
	return &retrying{underlying: r, config: config}
}

func (x *retrying) ResolveString(ctx context.Context, s string) (Resolution, error) {
	var out Resolution
	err := x.run(ctx, func(ctx context.Context) (err error) {
		out, err = x.underlying.ResolveString(ctx, s)
		return err
	})
	return out, err
}

func (x *retrying) FetchIndividualProfile(ctx context.Context, id int64) (Profile, error) {
	var out Profile
	err := x.run(ctx, func(ctx context.Context) (err error) {
		out, err = x.underlying.FetchIndividualProfile(ctx, id)
		return err
	})
	return out, err
}

func (x *retrying) FetchCollectiveProfile(ctx context.Context, id int64) (Profile, error) {
	var out Profile
	err := x.run(ctx, func(ctx context.Context) (err error) {
		out, err = x.underlying.FetchCollectiveProfile(ctx, id)
		return err
	})
	return out, err
}

func (x *retrying) run(ctx context.Context, fn func(context.Context) error) error {
	var last error
	retrier := retry.NewRetrier(x.config.MaxAttempts, x.config.InitialDelay, x.config.MaxDelay)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		last = fn(ctx)
		if last == nil {
			return nil
		}
		if stderrors.Is(last, errors.ErrProfileNotFound) || stderrors.Is(last, errors.ErrInvalidIdentity) {
			return retry.Stop(last)
		}
		return last
	})
	if err == nil {
		return nil
	}
	if last != nil {
		return last
	}
	return err
}
