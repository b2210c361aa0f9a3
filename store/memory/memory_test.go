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

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/userdir/errors"
	"github.com/tochemey/userdir/record"
	"github.com/tochemey/userdir/store"
	"github.com/tochemey/userdir/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st := New()
		t.Cleanup(func() { _ = st.Close() })
		return st
	})
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	st := New()
	model, err := st.DefineSchema(ctx, "users", storetest.Fields(t))
	require.NoError(t, err)
	require.NoError(t, st.Close())

	assert.ErrorIs(t, st.EnsureSchemaSynced(ctx, model), errors.ErrStoreClosed)
	_, err = st.FindByIdentity(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrStoreClosed)
	assert.ErrorIs(t, st.Save(ctx, record.New(record.Data{Identity: 1})), errors.ErrStoreClosed)
	_, err = st.Count(ctx)
	assert.ErrorIs(t, err, errors.ErrStoreClosed)
}
