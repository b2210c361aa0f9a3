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

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/schema"
	"github.com/tochemey/userdir/store"
	"github.com/tochemey/userdir/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := Open(context.Background(), Memory)
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		return st
	})
}

func TestFileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "userdir.sqlite")

	st, err := Open(ctx, path)
	require.NoError(t, err)
	model, err := st.DefineSchema(ctx, "users", storetest.Fields(t))
	require.NoError(t, err)
	require.NoError(t, st.EnsureSchemaSynced(ctx, model))
	require.NoError(t, st.Save(ctx, st.Materialize(record.Data{Identity: 100, DisplayName: "O'Brien"})))
	require.NoError(t, st.Close())
	require.NoError(t, st.Close())

	_, err = st.Count(ctx)
	assert.ErrorIs(t, err, errors.ErrStoreClosed)

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	model, err = reopened.DefineSchema(ctx, "users", storetest.Fields(t))
	require.NoError(t, err)
	require.NoError(t, reopened.EnsureSchemaSynced(ctx, model))

	found, err := reopened.FindByIdentity(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "O'Brien", found.DisplayName())
}

func TestDialect(t *testing.T) {
	dialect := Dialect{}
	assert.Equal(t, "?", dialect.Placeholder(3))
	assert.Equal(t, `"we""ird"`, dialect.Quote(`we"ird`))
	assert.Equal(t, "VARCHAR(64)", dialect.ColumnType(schema.String(64, "")))
	assert.Equal(t, "TEXT", dialect.ColumnType(schema.Descriptor{Kind: schema.KindString}))
	assert.Equal(t, "INTEGER", dialect.ColumnType(schema.Integer(0)))

	literal, err := dialect.Literal(schema.Boolean(true), true)
	require.NoError(t, err)
	assert.Equal(t, "1", literal)
	literal, err = dialect.Literal(schema.String(0, ""), "it's")
	require.NoError(t, err)
	assert.Equal(t, "'it''s'", literal)
	literal, err = dialect.Literal(schema.Float(0), 1.5)
	require.NoError(t, err)
	assert.Equal(t, "1.5", literal)
}
