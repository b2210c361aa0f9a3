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

package kafka

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/tochemey/userdir/internal/validation"
	"github.com/tochemey/userdir/sink"
)

const (
	defaultTopic    = "userdir.create"
	defaultClientID = "userdir"
)

// Config holds the Kafka sink configuration.
type Config struct {
	// Brokers are the seed brokers, host:port.
	Brokers []string
	// Topic receives the create events. Defaults to userdir.create.
	Topic string
	// ClientID identifies the producer. Defaults to userdir.
	ClientID string
	// Timeout bounds one delivery. Defaults to 10s.
	Timeout time.Duration
}

var _ validation.Validator = (*Config)(nil)

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	chain := validation.New(validation.FailFast()).
		AddAssertion(len(c.Brokers) > 0, "at least one broker is required")
	for _, broker := range c.Brokers {
		chain.AddAssertion(strings.TrimSpace(broker) != "", "broker address must not be empty")
	}
	return chain.
		AddValidator(validation.NewEmptyStringValidator("Topic", c.Topic)).
		AddAssertion(c.Timeout > 0, "Timeout must be greater than 0").
		Validate()
}

// Sanitize sets defaults for empty fields.
func (c *Config) Sanitize() {
	if strings.TrimSpace(c.Topic) == "" {
		c.Topic = defaultTopic
	}
	if strings.TrimSpace(c.ClientID) == "" {
		c.ClientID = defaultClientID
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
}

// producer is the part of *kgo.Client the sink uses.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// Sink publishes create events to a Kafka topic, keyed by identity.
type Sink struct {
	config *Config
	client producer
}

var _ sink.Sink = (*Sink)(nil)

// New creates a Sink. The client connects lazily on the first publish.
func New(config *Config) (*Sink, error) {
	if config == nil {
		return nil, fmt.Errorf("sink/kafka: config is nil")
	}
	config.Sanitize()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("sink/kafka: %w", err)
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(config.Brokers...),
		kgo.ClientID(config.ClientID),
		kgo.DefaultProduceTopic(config.Topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("sink/kafka: failed to create client: %w", err)
	}
	return &Sink{config: config, client: client}, nil
}

// Name implements sink.Sink.
func (s *Sink) Name() string {
	return "kafka"
}

// Publish implements sink.Sink.
func (s *Sink) Publish(ctx context.Context, events []sink.Event) error {
	records := make([]*kgo.Record, 0, len(events))
	for _, event := range events {
		value, err := sink.Encode(event)
		if err != nil {
			return err
		}
		records = append(records, &kgo.Record{
			Topic: s.config.Topic,
			Key:   []byte(strconv.FormatInt(event.Identity, 10)),
			Value: value,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	return s.client.ProduceSync(ctx, records...).FirstErr()
}

// Close implements sink.Sink.
func (s *Sink) Close() error {
	s.client.Close()
	return nil
}
