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
	"fmt"
	"strings"
)

type emptyStringValidator struct {
	field string
	value string
}

// NewEmptyStringValidator fails when value is blank.
func NewEmptyStringValidator(field, value string) Validator {
	return emptyStringValidator{field: field, value: value}
}

// Validate implements Validator.
func (v emptyStringValidator) Validate() error {
	if strings.TrimSpace(v.value) == "" {
		return fmt.Errorf("the [%s] is required", v.field)
	}
	return nil
}

const namePattern = `^[A-Za-z][A-Za-z0-9_.\-]*$`

type nameValidator struct {
	kind  string
	name  string
	limit int
}

// NewNameValidator checks a method or group name: a letter followed by
// letters, digits, '_', '.' or '-', at most 255 characters.
func NewNameValidator(kind, name string) Validator {
	return nameValidator{kind: kind, name: name, limit: 255}
}

// Validate implements Validator.
func (v nameValidator) Validate() error {
	return New(FailFast()).
		AddValidator(NewEmptyStringValidator(v.kind, v.name)).
		AddAssertion(len(v.name) <= v.limit, fmt.Sprintf("the [%s] exceeds %d characters", v.kind, v.limit)).
		AddValidator(NewPatternValidator(namePattern, v.name, fmt.Errorf("the [%s] %q contains invalid characters", v.kind, v.name))).
		Validate()
}
