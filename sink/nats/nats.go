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

package nats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tochemey/userdir/internal/validation"
	"github.com/tochemey/userdir/sink"
)

const defaultSubject = "userdir.create"

// Config holds the NATS sink configuration.
type Config struct {
	// URL is the NATS server URL (e.g. nats://127.0.0.1:4222).
	URL string
	// Subject receives the create events. Defaults to userdir.create.
	Subject string
	// ConnectTimeout bounds the connection. Defaults to 5s.
	ConnectTimeout time.Duration
	// FlushTimeout bounds the wait for the server to acknowledge a batch.
	// Defaults to 5s.
	FlushTimeout time.Duration
}

var _ validation.Validator = (*Config)(nil)

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	return validation.New(validation.FailFast()).
		AddAssertion(strings.TrimSpace(c.URL) != "", "URL must not be empty").
		AddAssertion(strings.TrimSpace(c.Subject) != "", "Subject must not be empty").
		AddAssertion(c.ConnectTimeout > 0, "ConnectTimeout must be greater than 0").
		AddAssertion(c.FlushTimeout > 0, "FlushTimeout must be greater than 0").
		Validate()
}

// Sanitize sets defaults for empty fields.
func (c *Config) Sanitize() {
	if strings.TrimSpace(c.Subject) == "" {
		c.Subject = defaultSubject
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 5 * time.Second
	}
	if c.FlushTimeout == 0 {
		c.FlushTimeout = 5 * time.Second
	}
}

// Sink publishes create events on a NATS subject.
type Sink struct {
	config *Config
	conn   *nats.Conn
}

var _ sink.Sink = (*Sink)(nil)

// New connects to the NATS server.
func New(config *Config) (*Sink, error) {
	if config == nil {
		return nil, fmt.Errorf("sink/nats: config is nil")
	}
	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("sink/nats: %w", err)
	}

	conn, err := nats.Connect(config.URL,
		nats.Name("userdir"),
		nats.Timeout(config.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("sink/nats: failed to connect: %w", err)
	}
	return &Sink{config: config, conn: conn}, nil
}

// Name implements sink.Sink.
func (s *Sink) Name() string {
	return "nats"
}

// Publish implements sink.Sink.
func (s *Sink) Publish(ctx context.Context, events []sink.Event) error {
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := sink.Encode(event)
		if err != nil {
			return err
		}
		if err := s.conn.Publish(s.config.Subject, payload); err != nil {
			return fmt.Errorf("identity=(%d): %w", event.Identity, err)
		}
	}
	return s.conn.FlushTimeout(s.config.FlushTimeout)
}

// Close implements sink.Sink.
func (s *Sink) Close() error {
	s.conn.Close()
	return nil
}
