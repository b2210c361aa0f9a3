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
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	otelmetric "go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/tochemey/userdir/cache"
	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/eventstream"
	"github.com/tochemey/userdir/group"
	"github.com/tochemey/userdir/internal/metric"
	"github.com/tochemey/userdir/log"
	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/resolver"
	"github.com/tochemey/userdir/savecenter"
	"github.com/tochemey/userdir/schema"
	"github.com/tochemey/userdir/store"
)

// Directory maps identities to user records. It caches the records it loads
// or creates for its whole lifetime, composes the registered method groups
// onto them and publishes a create event for every new record.
//
// Fields, default methods and method groups are declared before Start.
// Data operations fail with ErrDirectoryNotStarted until Start returns.
type Directory struct {
	store    store.Store
	resolver resolver.Resolver

	logger           log.Logger
	cacheCapacity    int
	strictGroupNames bool
	modelName        string
	flushInterval    time.Duration
	profileURL       string
	metricsEnabled   bool
	meterProvider    otelmetric.MeterProvider

	schema *schema.FieldSchema
	groups *group.Registry
	proto  *record.Prototype
	cache  cache.Cache
	events eventstream.Stream
	saver  *savecenter.SaveCenter

	inflight singleflight.Group
	started  *atomic.Bool
	stopped  *atomic.Bool
	model    *atomic.Pointer[schema.Model]

	metric       *metric.DirectoryMetric
	registration otelmetric.Registration
}

// New creates a Directory on top of the given store and resolver. Both are
// owned by the caller.
func New(st store.Store, res resolver.Resolver, opts ...Option) (*Directory, error) {
	if st == nil {
		return nil, errors.ErrStoreRequired
	}
	if res == nil {
		return nil, errors.ErrResolverRequired
	}

	dir := &Directory{
		store:         st,
		resolver:      res,
		logger:        log.DefaultLogger,
		modelName:     schema.DefaultModelName,
		flushInterval: savecenter.DefaultInterval,
		profileURL:    DefaultProfileURL,
		schema:        schema.New(),
		proto:         record.NewPrototype(),
		events:        eventstream.New(),
		started:       atomic.NewBool(false),
		stopped:       atomic.NewBool(false),
		model:         atomic.NewPointer[schema.Model](nil),
	}

	for _, opt := range opts {
		opt.Apply(dir)
	}

	var err error
	if dir.cacheCapacity > 0 {
		if dir.cache, err = cache.NewLRU(dir.cacheCapacity); err != nil {
			return nil, err
		}
	} else {
		dir.cache = cache.New()
	}

	groupOpts := []group.Option{group.WithLogger(dir.logger)}
	if dir.strictGroupNames {
		groupOpts = append(groupOpts, group.WithStrictNames())
	}
	dir.groups = group.NewRegistry(groupOpts...)

	dir.saver = savecenter.New(st,
		savecenter.WithLogger(dir.logger),
		savecenter.WithInterval(dir.flushInterval))

	dir.proto.Declare(MethodURL, urlMethod(dir.profileURL))
	dir.proto.Declare(MethodMention, mentionMethod)
	return dir, nil
}

// Start seals the field schema, defines and syncs the store model and starts
// the save center. A stopped directory cannot be started again.
func (x *Directory) Start(ctx context.Context) error {
	if x.stopped.Load() {
		return errors.ErrDirectoryStopped
	}
	if !x.started.CompareAndSwap(false, true) {
		return errors.ErrDirectoryAlreadyStarted
	}

	if err := x.start(ctx); err != nil {
		x.started.Store(false)
		return err
	}

	x.logger.Infof("user directory started with model=(%s) fields=(%d) groups=(%d)",
		x.modelName, x.schema.Len(), x.groups.Len())
	return nil
}

func (x *Directory) start(ctx context.Context) error {
	fields := x.schema.Seal(x.modelName).Fields()
	model, err := x.store.DefineSchema(ctx, x.modelName, fields)
	if err != nil {
		return fmt.Errorf("failed to define model=(%s): %w", x.modelName, err)
	}

	if err := x.store.EnsureSchemaSynced(ctx, model); err != nil {
		return fmt.Errorf("failed to sync model=(%s): %w", x.modelName, err)
	}
	x.model.Store(model)

	if x.metricsEnabled {
		if err := x.startMetrics(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	x.saver.Start()
	return nil
}

func (x *Directory) startMetrics() error {
	instruments, err := metric.NewDirectoryMetric(metric.New(metric.WithMeterProvider(x.meterProvider)).Meter())
	if err != nil {
		return err
	}

	registration, err := instruments.Observe(func() metric.Observation {
		stats := x.cache.Stats()
		return metric.Observation{
			CacheHits:   int64(stats.Hits),
			CacheMisses: int64(stats.Misses),
			CacheSize:   int64(x.cache.Len()),
		}
	})
	if err != nil {
		return err
	}

	x.metric = instruments
	x.registration = registration
	return nil
}

// Stop saves the changed records, stops the save center and closes the event
// stream. Start fails with ErrDirectoryStopped afterwards.
func (x *Directory) Stop(ctx context.Context) error {
	if !x.started.CompareAndSwap(true, false) {
		return errors.ErrDirectoryNotStarted
	}
	x.stopped.Store(true)

	var err error
	if e := x.saver.Stop(ctx); e != nil {
		err = multierr.Append(err, fmt.Errorf("failed to save changed records: %w", e))
	}

	if x.registration != nil {
		err = multierr.Append(err, x.registration.Unregister())
	}

	x.events.Close()
	x.logger.Info("user directory stopped")
	err = multierr.Append(err, x.logger.Flush())
	return err
}

// Started reports whether the directory is running.
func (x *Directory) Started() bool {
	return x.started.Load()
}

// Model returns the model the store was defined with. It is nil before Start.
func (x *Directory) Model() *schema.Model {
	return x.model.Load()
}

// Get returns the record of identity. It looks the cache up first, then the
// store. It returns nil and no error when the identity is unknown.
func (x *Directory) Get(ctx context.Context, identity int64) (*record.Record, error) {
	if err := x.ensureStarted(); err != nil {
		return nil, err
	}
	return x.get(ctx, identity)
}

// GetOrCreate returns the record of identity, creating it when it is neither
// cached nor stored. Concurrent GetOrCreate and Create calls for one identity
// share a single lookup and a single creation. The shared call runs with the
// context of the first caller: when that context is canceled, every waiting
// caller gets its error.
func (x *Directory) GetOrCreate(ctx context.Context, identity int64) (*record.Record, error) {
	if err := x.ensureStarted(); err != nil {
		return nil, err
	}

	return x.do("obtain", identity, func() (*record.Record, error) {
		rec, err := x.get(ctx, identity)
		if err != nil || rec != nil {
			return rec, err
		}
		return x.do("create", identity, func() (*record.Record, error) {
			return x.create(ctx, identity)
		})
	})
}

// Create fetches the profile of identity and builds a fresh record from it.
// A cached record of the same identity is replaced. The record is saved later
// by the save center. Concurrent calls for one identity share one creation.
func (x *Directory) Create(ctx context.Context, identity int64) (*record.Record, error) {
	if err := x.ensureStarted(); err != nil {
		return nil, err
	}
	return x.do("create", identity, func() (*record.Record, error) {
		return x.create(ctx, identity)
	})
}

// Resolve resolves s to an individual identity and returns its record.
// It returns nil and no error when s does not name an individual or the
// identity is unknown.
func (x *Directory) Resolve(ctx context.Context, s string) (*record.Record, error) {
	if err := x.ensureStarted(); err != nil {
		return nil, err
	}
	identity, ok, err := x.ResolveIdentity(ctx, s)
	if err != nil || !ok {
		return nil, err
	}
	return x.get(ctx, identity)
}

// ResolveOrCreate resolves s to an individual identity and returns its record,
// creating it when needed. It returns nil and no error when s does not name
// an individual.
func (x *Directory) ResolveOrCreate(ctx context.Context, s string) (*record.Record, error) {
	if err := x.ensureStarted(); err != nil {
		return nil, err
	}
	identity, ok, err := x.ResolveIdentity(ctx, s)
	if err != nil || !ok {
		return nil, err
	}
	return x.GetOrCreate(ctx, identity)
}

// ResolveIdentity resolves s with the resolver. The boolean is false unless s
// names an individual: collectives are reachable through Get and Create only.
func (x *Directory) ResolveIdentity(ctx context.Context, s string) (int64, bool, error) {
	resolution, err := x.resolver.ResolveString(ctx, s)
	if err != nil {
		return 0, false, errors.NewResolutionError(s, err)
	}
	if resolution.Kind != resolver.KindIndividual {
		return 0, false, nil
	}
	return resolution.Identity(), true, nil
}

// DeclareMethod declares a method callable on every record with
// rec.Invoke(name, args...). Records share the method set, so a method
// declared late is visible to records created earlier.
func (x *Directory) DeclareMethod(name string, fn record.Method) {
	x.proto.Declare(name, fn)
}

// DeclareField declares an extra record field. It fails with a
// DuplicateFieldError when name is already declared and with ErrSchemaSealed
// after Start.
func (x *Directory) DeclareField(name string, descriptor schema.Descriptor) error {
	return x.schema.Declare(name, descriptor)
}

// CreateGroup starts a method group. Records composed after the group is
// finalized expose it with rec.Call(group, method, args...).
func (x *Directory) CreateGroup(name string) *group.Builder {
	return x.groups.CreateGroup(name)
}

// Subscribe returns a subscriber to the create topic.
// Remove it with Unsubscribe once done.
func (x *Directory) Subscribe() eventstream.Subscriber {
	sub := x.events.AddSubscriber()
	x.events.Subscribe(sub, CreateTopic)
	return sub
}

// Unsubscribe removes a subscriber returned by Subscribe.
func (x *Directory) Unsubscribe(sub eventstream.Subscriber) {
	x.events.RemoveSubscriber(sub)
}

// Flush saves the changed records now.
func (x *Directory) Flush(ctx context.Context) error {
	if err := x.ensureStarted(); err != nil {
		return err
	}
	return x.saver.Flush(ctx)
}

// Count returns the number of stored records.
func (x *Directory) Count(ctx context.Context) (int64, error) {
	if err := x.ensureStarted(); err != nil {
		return 0, err
	}
	return x.store.Count(ctx)
}

// CacheStats returns the record cache statistics.
func (x *Directory) CacheStats() cache.Stats {
	return x.cache.Stats()
}

func (x *Directory) ensureStarted() error {
	if !x.started.Load() {
		return errors.ErrDirectoryNotStarted
	}
	return nil
}

// do runs fn once per key and identity among concurrent callers
func (x *Directory) do(key string, identity int64, fn func() (*record.Record, error)) (*record.Record, error) {
	result, err, _ := x.inflight.Do(key+":"+strconv.FormatInt(identity, 10), func() (any, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	rec, _ := result.(*record.Record)
	return rec, nil
}

func (x *Directory) get(ctx context.Context, identity int64) (*record.Record, error) {
	if rec, ok := x.cache.Get(identity); ok {
		return rec, nil
	}

	return x.do("get", identity, func() (*record.Record, error) {
		// a concurrent load may have filled the cache meanwhile
		if rec, ok := x.cache.Peek(identity); ok {
			return rec, nil
		}
		// evicted before its first save: the store does not have it yet
		if rec, ok := x.saver.Lookup(identity); ok {
			x.cache.Put(identity, rec)
			return rec, nil
		}

		rec, err := x.store.FindByIdentity(ctx, identity)
		if err != nil {
			return nil, fmt.Errorf("failed to load identity=(%d): %w", identity, err)
		}
		if rec == nil {
			return nil, nil
		}

		if err := x.adopt(rec); err != nil {
			return nil, err
		}
		return rec, nil
	})
}

func (x *Directory) create(ctx context.Context, identity int64) (*record.Record, error) {
	profile, err := x.fetchProfile(ctx, identity)
	if err != nil {
		return nil, errors.NewResolutionError(strconv.FormatInt(identity, 10), err)
	}

	rec := x.store.Materialize(record.Data{
		Identity:      identity,
		DisplayName:   profile.DisplayName,
		SecondaryName: profile.SecondaryName,
	})
	if rec == nil {
		return nil, fmt.Errorf("store returned no record for identity=(%d)", identity)
	}

	if err := x.adopt(rec); err != nil {
		return nil, err
	}
	rec.Touch()

	if x.metric != nil {
		x.metric.RecordCreated(ctx)
	}

	url, _ := rec.Invoke(MethodURL)
	x.logger.Infof("new record: %s %s (%v)", rec.DisplayName(), rec.SecondaryName(), url)

	x.events.Publish(CreateTopic, &CreateEvent{Record: rec, CreatedAt: time.Now()})
	return rec, nil
}

func (x *Directory) fetchProfile(ctx context.Context, identity int64) (resolver.Profile, error) {
	if record.IsCollective(identity) {
		profile, err := x.resolver.FetchCollectiveProfile(ctx, -identity)
		if err != nil {
			return resolver.Profile{}, err
		}
		return resolver.Profile{DisplayName: profile.DisplayName}, nil
	}
	return x.resolver.FetchIndividualProfile(ctx, identity)
}

// adopt binds, composes and caches a record before anyone else sees it
func (x *Directory) adopt(rec *record.Record) error {
	rec.Bind(x.proto, x.saver)
	if err := x.groups.Compose(rec); err != nil {
		return fmt.Errorf("failed to compose identity=(%d): %w", rec.Identity(), err)
	}
	x.cache.Put(rec.Identity(), rec)
	return nil
}
