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

package record

import "github.com/tochemey/userdir/schema"

// Option configures a Record at construction.
type Option interface {
	// Apply sets the Option value of a record.
	Apply(rec *Record)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(rec *Record)

// Apply applies the record's option
func (f OptionFunc) Apply(rec *Record) {
	f(rec)
}

// WithModel restricts the record fields to the model and fills the model
// defaults for fields the data does not carry.
func WithModel(model *schema.Model) Option {
	return OptionFunc(func(rec *Record) {
		rec.model = model
	})
}

// WithPrototype sets the default method set the record dispatches Invoke to.
func WithPrototype(proto *Prototype) Option {
	return OptionFunc(func(rec *Record) {
		rec.proto = proto
	})
}

// WithTracker sets the hook notified when the record changes.
func WithTracker(tracker Tracker) Option {
	return OptionFunc(func(rec *Record) {
		rec.tracker = tracker
	})
}
