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

package group

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/log"
	"github.com/tochemey/userdir/record"
)

func echo(rec *record.Record, args ...any) (any, error) {
	return append([]any{rec}, args...), nil
}

func TestRegistry(t *testing.T) {
	t.Run("finalized group is composed with the record first", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.CreateGroup("g").AddMethod("ping", echo).Finalize())

		rec := record.New(record.Data{Identity: 1})
		require.NoError(t, registry.Compose(rec))

		out, err := rec.Call("g", "ping", "a", 2)
		require.NoError(t, err)
		args := out.([]any)
		require.Len(t, args, 3)
		assert.Same(t, rec, args[0])
		assert.Equal(t, "a", args[1])
		assert.Equal(t, 2, args[2])
	})
	t.Run("group is not visible before finalize", func(t *testing.T) {
		registry := NewRegistry()
		builder := registry.CreateGroup("g").AddMethod("ping", echo)
		assert.Zero(t, registry.Len())

		rec := record.New(record.Data{Identity: 1})
		require.NoError(t, registry.Compose(rec))
		_, ok := rec.Group("g")
		assert.False(t, ok)

		require.NoError(t, builder.Finalize())
		assert.Equal(t, 1, registry.Len())
		assert.True(t, builder.Group().Finalized())
		assert.Equal(t, []string{"ping"}, builder.Group().Methods())
	})
	t.Run("adding to a finalized group fails", func(t *testing.T) {
		registry := NewRegistry()
		builder := registry.CreateGroup("g").AddMethod("ping", echo)
		require.NoError(t, builder.Finalize())

		err := builder.Method("late", echo)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrClosedGroup)
		var closedErr *errors.ClosedGroupError
		require.ErrorAs(t, err, &closedErr)
		assert.Equal(t, "g", closedErr.Group)
		assert.Equal(t, "late", closedErr.Method)

		builder.AddMethod("later", echo)
		assert.ErrorIs(t, builder.Err(), errors.ErrClosedGroup)
		assert.Equal(t, []string{"ping"}, builder.Group().Methods())
	})
	t.Run("second finalize fails and registers once", func(t *testing.T) {
		registry := NewRegistry()
		builder := registry.CreateGroup("g").AddMethod("ping", echo)
		require.NoError(t, builder.Finalize())
		assert.ErrorIs(t, builder.Finalize(), errors.ErrClosedGroup)
		assert.Equal(t, 1, registry.Len())
	})
	t.Run("invalid names", func(t *testing.T) {
		registry := NewRegistry()
		builder := registry.CreateGroup("")
		assert.ErrorIs(t, builder.Finalize(), errors.ErrInvalidGroupName)
		assert.ErrorIs(t, builder.Method("ping", echo), errors.ErrInvalidGroupName)
		assert.Nil(t, builder.Group())

		builder = registry.CreateGroup("g")
		assert.ErrorIs(t, builder.Method("has space", echo), errors.ErrInvalidMethodName)
		assert.ErrorIs(t, builder.Method("nil", nil), errors.ErrInvalidMethodName)
		assert.ErrorIs(t, builder.AddMethod("", echo).Finalize(), errors.ErrInvalidMethodName)
		assert.Zero(t, registry.Len())
	})
	t.Run("same name groups: the last finalized wins", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		registry := NewRegistry(WithLogger(log.NewZap(log.WarningLevel, buffer)))
		first := func(*record.Record, ...any) (any, error) { return "first", nil }
		second := func(*record.Record, ...any) (any, error) { return "second", nil }
		require.NoError(t, registry.CreateGroup("g").AddMethod("who", first).Finalize())
		require.NoError(t, registry.CreateGroup("g").AddMethod("who", second).Finalize())
		assert.Equal(t, 2, registry.Len())
		assert.Contains(t, buffer.String(), "method group=(g)")

		rec := record.New(record.Data{Identity: 1})
		require.NoError(t, registry.Compose(rec))
		out, err := rec.Call("g", "who")
		require.NoError(t, err)
		assert.Equal(t, "second", out)
	})
	t.Run("strict names reject the collision", func(t *testing.T) {
		registry := NewRegistry(WithStrictNames())
		require.NoError(t, registry.CreateGroup("g").AddMethod("a", echo).Finalize())
		builder := registry.CreateGroup("g").AddMethod("b", echo)
		assert.ErrorIs(t, builder.Finalize(), errors.ErrGroupNameConflict)
		assert.ErrorIs(t, builder.Err(), errors.ErrGroupNameConflict)
		assert.Equal(t, 1, registry.Len())
	})
	t.Run("compose twice fails", func(t *testing.T) {
		registry := NewRegistry()
		rec := record.New(record.Data{Identity: 1})
		require.NoError(t, registry.Compose(rec))
		assert.ErrorIs(t, registry.Compose(rec), errors.ErrRecordComposed)
	})
	t.Run("groups keep finalize order", func(t *testing.T) {
		registry := NewRegistry()
		a := registry.CreateGroup("a")
		b := registry.CreateGroup("b")
		require.NoError(t, b.Finalize())
		require.NoError(t, a.Finalize())
		groups := registry.Groups()
		require.Len(t, groups, 2)
		assert.Equal(t, "b", groups[0].Name())
		assert.Equal(t, "a", groups[1].Name())
	})
	t.Run("concurrent builders", func(t *testing.T) {
		registry := NewRegistry()
		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				name := string(rune('a' + i))
				assert.NoError(t, registry.CreateGroup(name).AddMethod("m", echo).Finalize())
			}()
		}
		wg.Wait()
		assert.Equal(t, 10, registry.Len())
	})
}
