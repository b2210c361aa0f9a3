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

package cli

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/tochemey/userdir/config"
	"github.com/tochemey/userdir/directory"
	"github.com/tochemey/userdir/log"
	"github.com/tochemey/userdir/resolver"
	"github.com/tochemey/userdir/store"
	"github.com/tochemey/userdir/store/bolt"
	"github.com/tochemey/userdir/store/memory"
	"github.com/tochemey/userdir/store/postgres"
	"github.com/tochemey/userdir/store/redis"
	"github.com/tochemey/userdir/store/sqlite"
)

type closableStore interface {
	store.Store
	Close() error
}

// app is a started directory built from the configuration.
type app struct {
	config *config.Config
	logger log.Logger
	store  closableStore
	dir    *directory.Directory
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := log.NewZap(level, os.Stderr)

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	opts := []directory.Option{
		directory.WithLogger(logger),
		directory.WithModelName(cfg.Model),
		directory.WithProfileURL(cfg.ProfileURL),
		directory.WithFlushInterval(cfg.FlushInterval.Duration),
	}
	if cfg.CacheCapacity > 0 {
		opts = append(opts, directory.WithCacheCapacity(cfg.CacheCapacity))
	}
	if cfg.Metrics {
		opts = append(opts, directory.WithMetrics())
	}

	dir, err := directory.New(st, newResolver(cfg.Profiles), opts...)
	if err == nil {
		err = dir.Start(ctx)
	}
	if err != nil {
		return nil, multierr.Append(err, st.Close())
	}

	return &app{config: cfg, logger: logger, store: st, dir: dir}, nil
}

func (a *app) close(ctx context.Context) error {
	return multierr.Combine(a.dir.Stop(ctx), a.store.Close())
}

func openStore(ctx context.Context, cfg config.Store) (closableStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendBolt:
		return bolt.New(cfg.Path)
	case config.BackendSQLite:
		return sqlite.Open(ctx, cfg.Path)
	case config.BackendPostgres:
		return postgres.Open(ctx, postgres.Config{DSN: cfg.DSN})
	case config.BackendRedis:
		return redis.Open(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported store backend=(%s)", cfg.Backend)
	}
}

// newResolver seeds a static resolver from the configured profiles. The
// retry decorator is what a remote resolver would be wrapped with.
func newResolver(profiles []config.Profile) resolver.Resolver {
	static := resolver.NewStatic()
	for _, profile := range profiles {
		resolution := resolver.Resolution{Kind: resolver.KindIndividual, ID: profile.ID}
		if profile.ID < 0 {
			resolution = resolver.Resolution{Kind: resolver.KindCollective, ID: -profile.ID}
			static.AddCollective(-profile.ID, profile.DisplayName)
		} else {
			static.AddIndividual(profile.ID, profile.DisplayName, profile.SecondaryName)
		}
		if profile.ScreenName != "" {
			static.AddScreenName(profile.ScreenName, resolution)
		}
	}
	return resolver.WithRetry(static, resolver.DefaultRetryConfig)
}
