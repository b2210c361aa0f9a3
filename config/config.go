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
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tochemey/userdir/internal/validation"
	"github.com/tochemey/userdir/log"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendBolt     = "bolt"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// EnvPrefix prefixes the environment variables overriding the file.
const EnvPrefix = "USERDIR_"

var backends = []string{BackendMemory, BackendBolt, BackendSQLite, BackendPostgres, BackendRedis}

// Duration is a time.Duration written as a string such as "1s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = duration
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Store selects and configures the record store.
type Store struct {
	Backend string `toml:"backend"`
	// Path is the database file of the bolt and sqlite backends.
	Path string `toml:"path"`
	// DSN is the postgres connection string.
	DSN string `toml:"dsn"`
	// URL is the redis URL.
	URL string `toml:"url"`
}

// HTTP configures the admin HTTP server.
type HTTP struct {
	Addr string `toml:"addr"`
}

// Kafka configures the Kafka event sink. It is disabled without brokers.
type Kafka struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// NATS configures the NATS event sink. It is disabled without a URL.
type NATS struct {
	URL     string `toml:"url"`
	Subject string `toml:"subject"`
}

// Sinks configures the create event sinks.
type Sinks struct {
	Interval Duration `toml:"interval"`
	Kafka    Kafka    `toml:"kafka"`
	NATS     NATS     `toml:"nats"`
}

// Profile seeds the static resolver. Negative ids are collectives.
type Profile struct {
	ID            int64  `toml:"id"`
	DisplayName   string `toml:"display_name"`
	SecondaryName string `toml:"secondary_name"`
	ScreenName    string `toml:"screen_name"`
}

// Config is the configuration of the userdir binary.
type Config struct {
	LogLevel      string    `toml:"log_level"`
	Model         string    `toml:"model"`
	ProfileURL    string    `toml:"profile_url"`
	CacheCapacity int       `toml:"cache_capacity"`
	FlushInterval Duration  `toml:"flush_interval"`
	Metrics       bool      `toml:"metrics"`
	Store         Store     `toml:"store"`
	HTTP          HTTP      `toml:"http"`
	Sinks         Sinks     `toml:"sinks"`
	Profiles      []Profile `toml:"profiles"`
}

var _ validation.Validator = (*Config)(nil)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		Model:         "users",
		ProfileURL:    "https://vk.com",
		FlushInterval: Duration{time.Second},
		Store:         Store{Backend: BackendMemory},
		HTTP:          HTTP{Addr: "127.0.0.1:8080"},
		Sinks:         Sinks{Interval: Duration{time.Second}},
	}
}

// Load reads the TOML file at path over the defaults, applies the USERDIR_*
// environment overrides and validates the result. An empty path loads the
// defaults and the environment only.
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		meta, err := toml.DecodeFile(path, config)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file=(%s): %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key=(%s) in file=(%s)", undecoded[0].String(), path)
		}
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	chain := validation.New(validation.AllErrors()).
		AddValidator(validation.ValidatorFunc(func() error {
			if _, err := log.ParseLevel(c.LogLevel); err != nil {
				return fmt.Errorf("log_level: %w", err)
			}
			return nil
		})).
		AddValidator(validation.NewEmptyStringValidator("model", c.Model)).
		AddAssertion(c.CacheCapacity >= 0, "cache_capacity must not be negative").
		AddAssertion(c.FlushInterval.Duration >= 0, "flush_interval must not be negative").
		AddAssertion(c.Sinks.Interval.Duration > 0, "sinks.interval must be greater than 0").
		AddAssertion(slices.Contains(backends, c.Store.Backend),
			fmt.Sprintf("store.backend %q must be one of %s", c.Store.Backend, strings.Join(backends, ", ")))

	switch c.Store.Backend {
	case BackendBolt, BackendSQLite:
		chain.AddValidator(validation.NewEmptyStringValidator("store.path", c.Store.Path))
	case BackendPostgres:
		chain.AddValidator(validation.NewEmptyStringValidator("store.dsn", c.Store.DSN))
	case BackendRedis:
		chain.AddValidator(validation.NewEmptyStringValidator("store.url", c.Store.URL))
	}

	for i, profile := range c.Profiles {
		chain.AddAssertion(profile.ID != 0, fmt.Sprintf("profiles[%d].id must not be zero", i)).
			AddAssertion(profile.DisplayName != "", fmt.Sprintf("profiles[%d].display_name is required", i))
	}
	return chain.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LOG_LEVEL":     &c.LogLevel,
		"MODEL":         &c.Model,
		"PROFILE_URL":   &c.ProfileURL,
		"STORE_BACKEND": &c.Store.Backend,
		"STORE_PATH":    &c.Store.Path,
		"STORE_DSN":     &c.Store.DSN,
		"STORE_URL":     &c.Store.URL,
		"HTTP_ADDR":     &c.HTTP.Addr,
		"KAFKA_TOPIC":   &c.Sinks.Kafka.Topic,
		"NATS_URL":      &c.Sinks.NATS.URL,
		"NATS_SUBJECT":  &c.Sinks.NATS.Subject,
	}
	for key, target := range strs {
		if value, ok := lookup(EnvPrefix + key); ok {
			*target = value
		}
	}

	if value, ok := lookup(EnvPrefix + "KAFKA_BROKERS"); ok {
		c.Sinks.Kafka.Brokers = splitList(value)
	}

	if value, ok := lookup(EnvPrefix + "CACHE_CAPACITY"); ok {
		capacity, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %sCACHE_CAPACITY: %w", EnvPrefix, err)
		}
		c.CacheCapacity = capacity
	}

	if value, ok := lookup(EnvPrefix + "METRICS"); ok {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %sMETRICS: %w", EnvPrefix, err)
		}
		c.Metrics = enabled
	}

	for key, target := range map[string]*Duration{
		"FLUSH_INTERVAL": &c.FlushInterval,
		"SINKS_INTERVAL": &c.Sinks.Interval,
	} {
		if value, ok := lookup(EnvPrefix + key); ok {
			if err := target.UnmarshalText([]byte(value)); err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
			}
		}
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
