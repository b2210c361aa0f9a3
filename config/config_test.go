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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "userdir.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	assert.Equal(t, BackendMemory, config.Store.Backend)
	assert.Equal(t, time.Second, config.FlushInterval.Duration)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
log_level = "debug"
model = "accounts"
cache_capacity = 1000
flush_interval = "250ms"
metrics = true

[store]
backend = "sqlite"
path = "/var/lib/userdir/users.db"

[http]
addr = ":9000"

[sinks]
interval = "2s"

[sinks.kafka]
brokers = ["k1:9092", "k2:9092"]
topic = "users"

[sinks.nats]
url = "nats://127.0.0.1:4222"

[[profiles]]
id = 1
display_name = "Ann"
secondary_name = "Lee"
screen_name = "ann"

[[profiles]]
id = -5
display_name = "Group5"
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "accounts", config.Model)
	assert.Equal(t, 1000, config.CacheCapacity)
	assert.Equal(t, 250*time.Millisecond, config.FlushInterval.Duration)
	assert.True(t, config.Metrics)
	assert.Equal(t, Store{Backend: BackendSQLite, Path: "/var/lib/userdir/users.db"}, config.Store)
	assert.Equal(t, ":9000", config.HTTP.Addr)
	assert.Equal(t, 2*time.Second, config.Sinks.Interval.Duration)
	assert.Equal(t, Kafka{Brokers: []string{"k1:9092", "k2:9092"}, Topic: "users"}, config.Sinks.Kafka)
	assert.Equal(t, "nats://127.0.0.1:4222", config.Sinks.NATS.URL)
	assert.Equal(t, []Profile{
		{ID: 1, DisplayName: "Ann", SecondaryName: "Lee", ScreenName: "ann"},
		{ID: -5, DisplayName: "Group5"},
	}, config.Profiles)
	// unset keys keep their defaults
	assert.Equal(t, "https://vk.com", config.ProfileURL)
}

func TestLoadErrors(t *testing.T) {
	testCases := map[string]string{
		"unknown key":          "colour = \"blue\"\n",
		"malformed toml":       "log_level = \n",
		"bad duration":         "flush_interval = \"soon\"\n",
		"unknown backend":      "[store]\nbackend = \"mongo\"\n",
		"bolt without path":    "[store]\nbackend = \"bolt\"\n",
		"postgres without dsn": "[store]\nbackend = \"postgres\"\n",
		"redis without url":    "[store]\nbackend = \"redis\"\n",
		"bad level":            "log_level = \"loud\"\n",
		"negative capacity":    "cache_capacity = -1\n",
		"zero profile":         "[[profiles]]\nid = 0\ndisplay_name = \"x\"\n",
		"anonymous profile":    "[[profiles]]\nid = 3\n",
	}
	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "[store]\nbackend = \"bolt\"\npath = \"/tmp/a.db\"\n")

	t.Setenv("USERDIR_STORE_BACKEND", "redis")
	t.Setenv("USERDIR_STORE_URL", "redis://127.0.0.1:6379/0")
	t.Setenv("USERDIR_CACHE_CAPACITY", "42")
	t.Setenv("USERDIR_FLUSH_INTERVAL", "5s")
	t.Setenv("USERDIR_KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("USERDIR_METRICS", "true")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, config.Store.Backend)
	assert.Equal(t, "redis://127.0.0.1:6379/0", config.Store.URL)
	assert.Equal(t, 42, config.CacheCapacity)
	assert.Equal(t, 5*time.Second, config.FlushInterval.Duration)
	assert.Equal(t, []string{"a:9092", "b:9092"}, config.Sinks.Kafka.Brokers)
	assert.True(t, config.Metrics)
}

func TestEnvOverrideErrors(t *testing.T) {
	for key, value := range map[string]string{
		"USERDIR_CACHE_CAPACITY": "many",
		"USERDIR_METRICS":        "sometimes",
		"USERDIR_SINKS_INTERVAL": "later",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestDurationText(t *testing.T) {
	text, err := Duration{1500 * time.Millisecond}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.5s", string(text))
}
