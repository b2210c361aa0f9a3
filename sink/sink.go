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

package sink

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tochemey/userdir/directory"
)

// Event is the wire form of a create event.
type Event struct {
	Identity      int64     `json:"identity"`
	DisplayName   string    `json:"display_name"`
	SecondaryName string    `json:"secondary_name"`
	Collective    bool      `json:"collective"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewEvent converts a directory create event.
func NewEvent(event *directory.CreateEvent) Event {
	rec := event.Record
	return Event{
		Identity:      rec.Identity(),
		DisplayName:   rec.DisplayName(),
		SecondaryName: rec.SecondaryName(),
		Collective:    rec.IsCollective(),
		CreatedAt:     event.CreatedAt.UTC(),
	}
}

// Encode returns the JSON encoding of event.
func Encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}

// Sink receives the create events of a directory.
type Sink interface {
	// Name identifies the sink in logs.
	Name() string
	// Publish delivers a batch of events.
	Publish(ctx context.Context, events []Event) error
	// Close releases the sink connection.
	Close() error
}
