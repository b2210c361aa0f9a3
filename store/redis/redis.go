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

package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/schema"
	"github.com/tochemey/userdir/store"
)

const (
	hashDisplayName   = "display_name"
	hashSecondaryName = "secondary_name"
	fieldPrefix       = "f:"
)

// Store persists each record as a hash under "<model>:<identity>". The
// identities are kept in the set "<model>:identities" for counting, and the
// declared fields with their kinds in the hash "<model>:schema".
type Store struct {
	store.Base

	client *redis.Client
	closed *atomic.Bool
}

var _ store.Store = (*Store)(nil)

// New creates a Store on client. The Store owns the client.
func New(client *redis.Client) *Store {
	return &Store{Base: store.NewBase(), client: client, closed: atomic.NewBool(false)}
}

// Open parses a redis:// URL, connects and pings the server.
func Open(ctx context.Context, url string) (*Store, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: failed to parse url: %w", err)
	}
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: failed to ping: %w", err)
	}
	return New(client), nil
}

// Client returns the underlying client.
func (s *Store) Client() *redis.Client {
	return s.client
}

// EnsureSchemaSynced records the declared fields. Hashes are schemaless, so
// records written before a field existed get its default when loaded.
func (s *Store) EnsureSchemaSynced(ctx context.Context, model *schema.Model) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	fields := make(map[string]any, len(model.Fields()))
	for _, field := range model.Fields() {
		fields[field.Name] = field.Descriptor.Kind.String()
	}
	if err := s.client.HSet(ctx, schemaKey(model), fields).Err(); err != nil {
		return fmt.Errorf("redis: syncing schema %s: %w", model.Name(), err)
	}
	return nil
}

// FindByIdentity implements store.Store.
func (s *Store) FindByIdentity(ctx context.Context, identity int64) (*record.Record, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	model, err := s.model()
	if err != nil {
		return nil, err
	}

	values, err := s.client.HGetAll(ctx, recordKey(model, identity)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: finding identity=(%d): %w", identity, err)
	}
	if len(values) == 0 {
		return nil, nil
	}

	data := record.Data{
		Identity:      identity,
		DisplayName:   values[hashDisplayName],
		SecondaryName: values[hashSecondaryName],
		Fields:        make(map[string]any, len(values)),
	}
	for key, raw := range values {
		name, ok := strings.CutPrefix(key, fieldPrefix)
		if !ok {
			continue
		}
		decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
		decoder.UseNumber()
		var value any
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("redis: decoding identity=(%d) field=(%s): %w", identity, name, err)
		}
		data.Fields[name] = value
	}
	return s.Rehydrate(data)
}

// Save implements store.Store.
func (s *Store) Save(ctx context.Context, rec *record.Record) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	model, err := s.model()
	if err != nil {
		return err
	}

	data := rec.Data()
	values := map[string]any{
		hashDisplayName:   data.DisplayName,
		hashSecondaryName: data.SecondaryName,
	}
	for name, value := range data.Fields {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("redis: encoding identity=(%d) field=(%s): %w", data.Identity, name, err)
		}
		values[fieldPrefix+name] = string(raw)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, recordKey(model, data.Identity), values)
		pipe.SAdd(ctx, identitiesKey(model), data.Identity)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: saving identity=(%d): %w", data.Identity, err)
	}
	return nil
}

// Count implements store.Store.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	model, err := s.model()
	if err != nil {
		return 0, err
	}
	count, err := s.client.SCard(ctx, identitiesKey(model)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: counting records: %w", err)
	}
	return count, nil
}

// Close closes the client.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.client.Close()
}

func (s *Store) ensureOpen() error {
	if s.closed.Load() {
		return errors.ErrStoreClosed
	}
	return nil
}

func (s *Store) model() (*schema.Model, error) {
	model := s.Model()
	if model == nil {
		return nil, fmt.Errorf("redis: schema is not defined")
	}
	return model, nil
}

func recordKey(model *schema.Model, identity int64) string {
	return model.Name() + ":" + strconv.FormatInt(identity, 10)
}

func identitiesKey(model *schema.Model) string {
	return model.Name() + ":identities"
}

func schemaKey(model *schema.Model) string {
	return model.Name() + ":schema"
}
