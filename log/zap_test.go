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

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLevels(t *testing.T) {
	testCases := []struct {
		name  string
		level Level
		write func(Logger)
		msg   string
	}{
		{name: "debug", level: DebugLevel, write: func(l Logger) { l.Debug("debug message") }, msg: "debug message"},
		{name: "debugf", level: DebugLevel, write: func(l Logger) { l.Debugf("debug %d", 1) }, msg: "debug 1"},
		{name: "info", level: InfoLevel, write: func(l Logger) { l.Info("info message") }, msg: "info message"},
		{name: "infof", level: InfoLevel, write: func(l Logger) { l.Infof("info %s", "x") }, msg: "info x"},
		{name: "warn", level: WarningLevel, write: func(l Logger) { l.Warn("warn message") }, msg: "warn message"},
		{name: "warnf", level: WarningLevel, write: func(l Logger) { l.Warnf("warn %v", true) }, msg: "warn true"},
		{name: "error", level: ErrorLevel, write: func(l Logger) { l.Error("error message") }, msg: "error message"},
		{name: "errorf", level: ErrorLevel, write: func(l Logger) { l.Errorf("error %d", 2) }, msg: "error 2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buffer := new(bytes.Buffer)
			logger := NewZap(tc.level, buffer)
			require.Equal(t, tc.level, logger.LogLevel())

			tc.write(logger)
			require.NoError(t, logger.Flush())

			msg, err := extractField(buffer.Bytes(), "msg")
			require.NoError(t, err)
			assert.Equal(t, tc.msg, msg)

			lvl, err := extractField(buffer.Bytes(), "level")
			require.NoError(t, err)
			assert.Equal(t, tc.level.String(), lvl)
		})
	}
}

func TestZapFiltersBelowLevel(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(ErrorLevel, buffer)
	logger.Info("dropped")
	logger.Debug("dropped")
	require.NoError(t, logger.Flush())
	assert.Empty(t, buffer.String())
	assert.False(t, logger.Enabled(InfoLevel))
	assert.True(t, logger.Enabled(ErrorLevel))
}

func TestZapPanic(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)
	assert.Panics(t, func() { logger.Panic("boom") })
	assert.Panics(t, func() { logger.Panicf("boom %d", 1) })
}

func TestZapWith(t *testing.T) {
	t.Run("adds structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("identity", int64(100), "component", "directory").Info("created")
		require.NoError(t, logger.Flush())

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		assert.Contains(t, m, "identity")
		assert.Contains(t, m, "component")
	})

	t.Run("empty pairs return the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Equal(t, Logger(logger), logger.With())
	})

	t.Run("orphan value is logged under underscore", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("a", 1, "orphan").Info("msg")
		require.NoError(t, logger.Flush())

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		assert.Contains(t, m, "a")
		assert.Contains(t, m, "_")
	})

	t.Run("non-string keys only return the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Equal(t, Logger(logger), logger.With(1, 2, 3, 4))
	})

	t.Run("many pairs and typed values", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With(
			"s", "str",
			"i", 1,
			"i32", int32(2),
			"i64", int64(3),
			"u64", uint64(4),
			"b", true,
			"f", 1.5,
			"d", time.Second,
			"err", errors.New("failed"),
			"any", []int{1},
		).Info("typed")
		require.NoError(t, logger.Flush())

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		for _, key := range []string{"s", "i", "i32", "i64", "u64", "b", "f", "d", "err", "any"} {
			assert.Contains(t, m, key)
		}
	})
}

func TestZapFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userdir.log")
	file, err := os.Create(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	logger := NewZap(InfoLevel, file)
	logger.Info("buffered entry")
	require.NoError(t, logger.Flush())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	msg, err := extractField(content, "msg")
	require.NoError(t, err)
	assert.Equal(t, "buffered entry", msg)
	assert.Equal(t, []any{file}, toAnySlice(logger.LogOutput()))
}

func TestZapStdLogger(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)
	logger.StdLogger().Print("from std")
	require.NoError(t, logger.Flush())

	msg, err := extractField(buffer.Bytes(), "msg")
	require.NoError(t, err)
	assert.Equal(t, "from std", msg)
}

func TestParseLevel(t *testing.T) {
	testCases := map[string]Level{
		"":        InfoLevel,
		"INFO":    InfoLevel,
		"warn":    WarningLevel,
		"warning": WarningLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
		"panic":   PanicLevel,
		" debug ": DebugLevel,
	}
	for text, expected := range testCases {
		level, err := ParseLevel(text)
		require.NoError(t, err)
		assert.Equal(t, expected, level, text)
	}

	level, err := ParseLevel("verbose")
	require.Error(t, err)
	assert.Equal(t, InvalidLevel, level)
	assert.Equal(t, "invalid", level.String())
}

func TestDiscardLogger(t *testing.T) {
	DiscardLogger.Info("nothing")
	DiscardLogger.Errorf("nothing %d", 1)
	assert.Equal(t, DiscardLogger, DiscardLogger.With("k", "v"))
	assert.False(t, DiscardLogger.Enabled(ErrorLevel))
	assert.True(t, DiscardLogger.Enabled(PanicLevel))
	assert.NoError(t, DiscardLogger.Flush())
	assert.NotNil(t, DiscardLogger.StdLogger())
	assert.Panics(t, func() { DiscardLogger.Panicf("boom %s", "now") })
}

func extractField(raw []byte, key string) (string, error) {
	line := bytes.TrimSpace(bytes.SplitN(raw, []byte("\n"), 2)[0])
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(line, &fields); err != nil {
		return "", err
	}
	value, ok := fields[key]
	if !ok {
		return "", nil
	}
	return strconv.Unquote(string(value))
}

func toAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
