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

package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/userdir/schema"
)

func TestDialect(t *testing.T) {
	dialect := Dialect{}
	assert.Equal(t, "$3", dialect.Placeholder(3))
	assert.Equal(t, `"users"`, dialect.Quote("users"))
	assert.Equal(t, "JSONB", dialect.ColumnType(schema.JSON()))
	assert.Equal(t, "DOUBLE PRECISION", dialect.ColumnType(schema.Float(0)))
	assert.Equal(t, "VARCHAR(255)", dialect.ColumnType(schema.String(255, "")))

	literal, err := dialect.Literal(schema.Boolean(false), false)
	require.NoError(t, err)
	assert.Equal(t, "FALSE", literal)
	literal, err = dialect.Literal(schema.Integer(0), int64(-3))
	require.NoError(t, err)
	assert.Equal(t, "-3", literal)
}
