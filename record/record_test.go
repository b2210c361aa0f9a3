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

package record

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/schema"
)

type countingTracker struct {
	mu    sync.Mutex
	calls int
}

func (c *countingTracker) MarkDirty(*Record) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func (c *countingTracker) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func testModel(t *testing.T) *schema.Model {
	t.Helper()
	s := schema.New()
	require.NoError(t, s.Declare("balance", schema.Integer(10)))
	require.NoError(t, s.Declare("banned", schema.Boolean(false)))
	return s.Seal("users")
}

func TestRecord(t *testing.T) {
	t.Run("new record holds data and model defaults", func(t *testing.T) {
		rec := New(Data{
			Identity:    100,
			DisplayName: "Ann",
			Fields:      map[string]any{"balance": int64(42), "unknown": "dropped"},
		}, WithModel(testModel(t)))

		assert.EqualValues(t, 100, rec.Identity())
		assert.False(t, rec.IsCollective())
		assert.Equal(t, "Ann", rec.DisplayName())
		assert.Equal(t, "", rec.SecondaryName())

		value, ok := rec.Field("balance")
		require.True(t, ok)
		assert.Equal(t, int64(42), value)
		value, ok = rec.Field("banned")
		require.True(t, ok)
		assert.Equal(t, false, value)
		_, ok = rec.Field("unknown")
		assert.False(t, ok)

		value, ok = rec.Field(schema.FieldIdentity)
		require.True(t, ok)
		assert.Equal(t, int64(100), value)
		assert.False(t, rec.IsDirty())
	})
	t.Run("setters track changes", func(t *testing.T) {
		tracker := new(countingTracker)
		rec := New(Data{Identity: 1}, WithModel(testModel(t)), WithTracker(tracker))

		rec.SetDisplayName("Ann")
		rec.SetSecondaryName("Lee")
		require.NoError(t, rec.SetField("balance", int64(7)))

		assert.True(t, rec.IsDirty())
		assert.Equal(t, []string{"balance", schema.FieldDisplayName, schema.FieldSecondaryName}, rec.Changes())
		assert.Equal(t, 3, tracker.count())
	})
	t.Run("set field validation", func(t *testing.T) {
		rec := New(Data{Identity: 1}, WithModel(testModel(t)))
		assert.ErrorIs(t, rec.SetField(schema.FieldIdentity, int64(2)), errors.ErrImmutableField)
		assert.ErrorIs(t, rec.SetField("missing", 1), errors.ErrFieldNotDeclared)
		assert.ErrorIs(t, rec.SetField(schema.FieldDisplayName, 1), errors.ErrInvalidFieldValue)
		require.NoError(t, rec.SetField(schema.FieldDisplayName, "Bob"))
		assert.Equal(t, "Bob", rec.DisplayName())
		require.NoError(t, rec.SetField(schema.FieldSecondaryName, "Ray"))
		assert.Equal(t, "Ray", rec.SecondaryName())
	})
	t.Run("without a model any field is accepted", func(t *testing.T) {
		rec := New(Data{Identity: 1})
		require.NoError(t, rec.SetField("anything", "x"))
		value, ok := rec.Field("anything")
		require.True(t, ok)
		assert.Equal(t, "x", value)
	})
	t.Run("snapshot and mark clean", func(t *testing.T) {
		rec := New(Data{Identity: 1, DisplayName: "Ann"})
		rec.Touch()
		require.True(t, rec.IsDirty())

		data, version := rec.Snapshot()
		assert.Equal(t, "Ann", data.DisplayName)

		rec.SetDisplayName("Bob")
		assert.False(t, rec.MarkClean(version))
		assert.True(t, rec.IsDirty())

		_, version = rec.Snapshot()
		assert.True(t, rec.MarkClean(version))
		assert.False(t, rec.IsDirty())
	})
	t.Run("data is a copy", func(t *testing.T) {
		rec := New(Data{Identity: -5, DisplayName: "Group5", Fields: map[string]any{"x": 1}})
		data := rec.Data()
		data.Fields["x"] = 2
		value, _ := rec.Field("x")
		assert.Equal(t, 1, value)
		assert.True(t, rec.IsCollective())
	})
}

func TestRecordMethods(t *testing.T) {
	t.Run("invoke uses the shared prototype", func(t *testing.T) {
		proto := NewPrototype()
		first := New(Data{Identity: 1, DisplayName: "Ann"}, WithPrototype(proto))
		second := New(Data{Identity: 2, DisplayName: "Bob"})
		second.Bind(proto, nil)

		_, err := first.Invoke("greet")
		assert.ErrorIs(t, err, errors.ErrMethodNotFound)

		proto.Declare("greet", func(rec *Record, args ...any) (any, error) {
			return "hi " + rec.DisplayName(), nil
		})

		out, err := first.Invoke("greet")
		require.NoError(t, err)
		assert.Equal(t, "hi Ann", out)
		out, err = second.Invoke("greet")
		require.NoError(t, err)
		assert.Equal(t, "hi Bob", out)
		assert.Equal(t, []string{"greet"}, proto.Names())

		_, err = New(Data{Identity: 3}).Invoke("greet")
		assert.ErrorIs(t, err, errors.ErrMethodNotFound)
	})
	t.Run("compose attaches namespaces once", func(t *testing.T) {
		rec := New(Data{Identity: 1})
		ping := NewNamespace("g", map[string]Bound{
			"ping": func(args ...any) (any, error) { return len(args), nil },
		})
		require.NoError(t, rec.Compose(ping))
		assert.True(t, rec.Composed())
		assert.ErrorIs(t, rec.Compose(ping), errors.ErrRecordComposed)

		out, err := rec.Call("g", "ping", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, out)

		_, err = rec.Call("missing", "ping")
		assert.ErrorIs(t, err, errors.ErrGroupNotFound)
		_, err = rec.Call("g", "missing")
		assert.ErrorIs(t, err, errors.ErrMethodNotFound)

		ns, ok := rec.Group("g")
		require.True(t, ok)
		assert.Equal(t, "g", ns.Name())
		assert.Equal(t, []string{"ping"}, ns.Methods())
		_, ok = ns.Method("ping")
		assert.True(t, ok)
		assert.Equal(t, []string{"g"}, rec.Groups())
	})
	t.Run("later namespace with the same name wins", func(t *testing.T) {
		rec := New(Data{Identity: 1})
		first := NewNamespace("g", map[string]Bound{"v": func(...any) (any, error) { return 1, nil }})
		second := NewNamespace("g", map[string]Bound{"v": func(...any) (any, error) { return 2, nil }})
		require.NoError(t, rec.Compose(first, second))
		out, err := rec.Call("g", "v")
		require.NoError(t, err)
		assert.Equal(t, 2, out)
	})
}

func TestDataClone(t *testing.T) {
	data := Data{Identity: 1, Fields: map[string]any{"a": 1}}
	clone := data.Clone()
	clone.Fields["a"] = 2
	assert.Equal(t, 1, data.Fields["a"])
	assert.Nil(t, Data{}.Clone().Fields)
	assert.True(t, IsCollective(-1))
	assert.False(t, IsCollective(0))
}
