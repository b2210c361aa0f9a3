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

package validation

import (
	"go.uber.org/multierr"
)

// Validator checks a value.
type Validator interface {
	Validate() error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func() error

// Validate implements Validator.
func (f ValidatorFunc) Validate() error {
	return f()
}

// Chain is an ordered list of validators. It either stops at the first
// violation or reports them all, combined with multierr.
type Chain struct {
	stopEarly bool
	steps     []Validator
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// FailFast makes the chain return the first violation only.
func FailFast() ChainOption {
	return func(chain *Chain) { chain.stopEarly = true }
}

// AllErrors makes the chain run every validator. This is the default.
func AllErrors() ChainOption {
	return func(chain *Chain) { chain.stopEarly = false }
}

// New creates an empty Chain.
func New(opts ...ChainOption) *Chain {
	chain := new(Chain)
	for _, opt := range opts {
		opt(chain)
	}
	return chain
}

// AddValidator appends validators.
func (c *Chain) AddValidator(validators ...Validator) *Chain {
	c.steps = append(c.steps, validators...)
	return c
}

// AddAssertion appends a check that fails with message when ok is false.
func (c *Chain) AddAssertion(ok bool, message string) *Chain {
	return c.AddValidator(NewBooleanValidator(ok, message))
}

// Validate runs the chain.
func (c *Chain) Validate() (err error) {
	for _, step := range c.steps {
		if stepErr := step.Validate(); stepErr != nil {
			if c.stopEarly {
				return stepErr
			}
			multierr.AppendInto(&err, stepErr)
		}
	}
	return err
}
