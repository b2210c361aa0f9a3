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

// Package storetest holds the behavior every store.Store adapter must show.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/schema"
	"github.com/tochemey/userdir/store"
)

// Factory returns an empty store. The test owns and closes it.
type Factory func(t *testing.T) store.Store

// Fields returns the field list the suite defines its model with.
func Fields(t *testing.T) []schema.Field {
	t.Helper()
	s := schema.New()
	require.NoError(t, s.Declare("balance", schema.Integer(10)))
	require.NoError(t, s.Declare("banned", schema.Boolean(false)))
	require.NoError(t, s.Declare("rating", schema.Float(0)))
	require.NoError(t, s.Declare("nickname", schema.String(64, "")))
	require.NoError(t, s.Declare("prefs", schema.JSON()))
	return s.Fields()
}

// Run runs the suite against stores built by factory.
func Run(t *testing.T, factory Factory) {
	ctx := context.Background()

	setup := func(t *testing.T) (store.Store, *schema.Model) {
		t.Helper()
		st := factory(t)
		model, err := st.DefineSchema(ctx, "users", Fields(t))
		require.NoError(t, err)
		require.NoError(t, st.EnsureSchemaSynced(ctx, model))
		// syncing twice is a no-op
		require.NoError(t, st.EnsureSchemaSynced(ctx, model))
		return st, model
	}

	t.Run("absent identity is nil without error", func(t *testing.T) {
		st, _ := setup(t)
		rec, err := st.FindByIdentity(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, rec)

		count, err := st.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("materialize does not persist", func(t *testing.T) {
		st, _ := setup(t)
		rec := st.Materialize(record.Data{Identity: 100, DisplayName: "Ann", SecondaryName: "Lee"})
		require.NotNil(t, rec)
		assert.EqualValues(t, 100, rec.Identity())
		balance, ok := rec.Field("balance")
		require.True(t, ok)
		assert.Equal(t, int64(10), balance)

		found, err := st.FindByIdentity(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("save then find returns a fresh equal record", func(t *testing.T) {
		st, _ := setup(t)
		rec := st.Materialize(record.Data{Identity: 100, DisplayName: "Ann", SecondaryName: "Lee"})
		require.NoError(t, rec.SetField("balance", int64(42)))
		require.NoError(t, rec.SetField("banned", true))
		require.NoError(t, rec.SetField("rating", 4.5))
		require.NoError(t, rec.SetField("nickname", "annie"))
		require.NoError(t, rec.SetField("prefs", map[string]any{"lang": "en"}))
		require.NoError(t, st.Save(ctx, rec))

		found, err := st.FindByIdentity(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.NotSame(t, rec, found)
		assert.False(t, found.IsDirty())
		assert.Equal(t, "Ann", found.DisplayName())
		assert.Equal(t, "Lee", found.SecondaryName())

		expected := map[string]any{
			"balance":  int64(42),
			"banned":   true,
			"rating":   4.5,
			"nickname": "annie",
			"prefs":    map[string]any{"lang": "en"},
		}
		for name, value := range expected {
			actual, ok := found.Field(name)
			require.True(t, ok, name)
			assert.Equal(t, value, actual, name)
		}
	})

	t.Run("save upserts", func(t *testing.T) {
		st, _ := setup(t)
		rec := st.Materialize(record.Data{Identity: 7, DisplayName: "Ann"})
		require.NoError(t, st.Save(ctx, rec))
		rec.SetDisplayName("Anna")
		require.NoError(t, st.Save(ctx, rec))

		found, err := st.FindByIdentity(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Anna", found.DisplayName())

		count, err := st.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("collective identities", func(t *testing.T) {
		st, _ := setup(t)
		require.NoError(t, st.Save(ctx, st.Materialize(record.Data{Identity: -5, DisplayName: "Group5"})))
		require.NoError(t, st.Save(ctx, st.Materialize(record.Data{Identity: 5, DisplayName: "Ann", SecondaryName: "Lee"})))

		found, err := st.FindByIdentity(ctx, -5)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.IsCollective())
		assert.Equal(t, "Group5", found.DisplayName())
		assert.Equal(t, "", found.SecondaryName())

		count, err := st.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("additive migration fills defaults", func(t *testing.T) {
		st, _ := setup(t)
		require.NoError(t, st.Save(ctx, st.Materialize(record.Data{Identity: 1, DisplayName: "Ann"})))

		fields := append(Fields(t), schema.Field{Name: "level", Descriptor: schema.Integer(3)})
		model, err := st.DefineSchema(ctx, "users", fields)
		require.NoError(t, err)
		require.NoError(t, st.EnsureSchemaSynced(ctx, model))

		found, err := st.FindByIdentity(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, found)
		level, ok := found.Field("level")
		require.True(t, ok)
		assert.Equal(t, int64(3), level)
		assert.Equal(t, "Ann", found.DisplayName())
	})
}
