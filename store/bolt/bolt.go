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

package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/atomic"
	bbolt "go.etcd.io/bbolt"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/schema"
	"github.com/tochemey/userdir/store"
)

const (
	fileMode  os.FileMode = 0o600
	keyName               = "display_name"
	keySecond             = "secondary_name"
	keyFields             = "fields"
)

var defaultOptions = &bbolt.Options{Timeout: 5 * time.Second, NoGrowSync: true}

// Store persists records in a bbolt file, one bucket per model. Values are
// protobuf encoded structpb.Struct documents keyed by the big-endian identity.
type Store struct {
	store.Base

	db     *bbolt.DB
	path   string
	closed *atomic.Bool
}

var _ store.Store = (*Store)(nil)

// New opens or creates the database file at path.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("bolt: unable to create the database directory: %w", err)
	}

	options := *defaultOptions
	db, err := bbolt.Open(path, fileMode, &options)
	if err != nil {
		return nil, fmt.Errorf("bolt: opening %s: %w", path, err)
	}

	return &Store{
		Base:   store.NewBase(),
		db:     db,
		path:   path,
		closed: atomic.NewBool(false),
	}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchemaSynced creates the model bucket. Documents are schemaless, so
// fields added later are filled with their defaults when records are loaded.
func (s *Store) EnsureSchemaSynced(ctx context.Context, model *schema.Model) error {
	if err := s.ensureOpen(ctx); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(model.Name()))
		return err
	})
}

// FindByIdentity implements store.Store.
func (s *Store) FindByIdentity(ctx context.Context, identity int64) (*record.Record, error) {
	if err := s.ensureOpen(ctx); err != nil {
		return nil, err
	}

	var raw []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := s.bucket(tx)
		if err != nil {
			return err
		}
		if value := bucket.Get(key(identity)); value != nil {
			raw = make([]byte, len(value))
			copy(raw, value)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, err
	}

	data, err := decode(identity, raw)
	if err != nil {
		return nil, err
	}
	return s.Rehydrate(data)
}

// Save implements store.Store.
func (s *Store) Save(ctx context.Context, rec *record.Record) error {
	if err := s.ensureOpen(ctx); err != nil {
		return err
	}

	data := rec.Data()
	raw, err := encode(data)
	if err != nil {
		return fmt.Errorf("bolt: encoding identity=(%d): %w", data.Identity, err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := s.bucket(tx)
		if err != nil {
			return err
		}
		return bucket.Put(key(data.Identity), raw)
	})
}

// Count implements store.Store.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := s.ensureOpen(ctx); err != nil {
		return 0, err
	}
	var count int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := s.bucket(tx)
		if err != nil {
			return err
		}
		count = int64(bucket.Stats().KeyN)
		return nil
	})
	return count, err
}

// Close closes the database file. The file is kept.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *Store) bucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	model := s.Model()
	if model == nil {
		return nil, fmt.Errorf("bolt: schema is not defined")
	}
	bucket := tx.Bucket([]byte(model.Name()))
	if bucket == nil {
		return nil, fmt.Errorf("bolt: bucket %q missing", model.Name())
	}
	return bucket, nil
}

func (s *Store) ensureOpen(ctx context.Context) error {
	if s.closed.Load() {
		return errors.ErrStoreClosed
	}
	return ctx.Err()
}

func key(identity int64) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, uint64(identity))
	return out
}

func encode(data record.Data) ([]byte, error) {
	fields := make(map[string]*structpb.Value, len(data.Fields))
	for name, value := range data.Fields {
		pbValue, err := toValue(value)
		if err != nil {
			return nil, fmt.Errorf("field=(%s): %w", name, err)
		}
		fields[name] = pbValue
	}

	doc := &structpb.Struct{Fields: map[string]*structpb.Value{
		keyName:   structpb.NewStringValue(data.DisplayName),
		keySecond: structpb.NewStringValue(data.SecondaryName),
		keyFields: structpb.NewStructValue(&structpb.Struct{Fields: fields}),
	}}
	return proto.Marshal(doc)
}

// toValue converts value into a structpb value. Types structpb does not know
// are passed through a JSON round trip first.
func toValue(value any) (*structpb.Value, error) {
	if pbValue, err := structpb.NewValue(value); err == nil {
		return pbValue, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return structpb.NewValue(generic)
}

func decode(identity int64, raw []byte) (record.Data, error) {
	doc := new(structpb.Struct)
	if err := proto.Unmarshal(raw, doc); err != nil {
		return record.Data{}, fmt.Errorf("bolt: decoding identity=(%d): %w", identity, err)
	}
	data := record.Data{
		Identity:      identity,
		DisplayName:   doc.GetFields()[keyName].GetStringValue(),
		SecondaryName: doc.GetFields()[keySecond].GetStringValue(),
		Fields:        doc.GetFields()[keyFields].GetStructValue().AsMap(),
	}
	return data, nil
}
