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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateField is returned when a field name is declared twice on the
	// record schema.
	ErrDuplicateField = errors.New("field is already declared")

	// ErrInvalidFieldName is returned when a field name is empty or contains
	// characters other than [a-z0-9_] after a leading letter.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrInvalidFieldKind is returned when a field descriptor has no valid kind.
	ErrInvalidFieldKind = errors.New("invalid field kind")

	// ErrFieldNotDeclared is returned when a record field is not part of the model.
	ErrFieldNotDeclared = errors.New("field is not declared")

	// ErrInvalidFieldValue is returned when a value does not fit the field kind.
	ErrInvalidFieldValue = errors.New("invalid field value")

	// ErrImmutableField is returned when the identity field is written.
	ErrImmutableField = errors.New("field is immutable")

	// ErrSchemaSealed is returned when a field is declared after the schema has
	// been handed to the store.
	ErrSchemaSealed = errors.New("schema is sealed")

	// ErrClosedGroup is returned when a method is added to a finalized group.
	ErrClosedGroup = errors.New("method group is closed")

	// ErrInvalidGroupName is returned when a method group name is empty or malformed.
	ErrInvalidGroupName = errors.New("invalid method group name")

	// ErrInvalidMethodName is returned when a method name is empty or malformed.
	ErrInvalidMethodName = errors.New("invalid method name")

	// ErrGroupNameConflict is returned in strict mode when two finalized groups share a name.
	ErrGroupNameConflict = errors.New("method group name is already registered")

	// ErrGroupNotFound is returned when a record has no namespace with the requested name.
	ErrGroupNotFound = errors.New("method group not found")

	// ErrMethodNotFound is returned when a namespace or the default method set
	// has no method with the requested name.
	ErrMethodNotFound = errors.New("method not found")

	// ErrRecordComposed is returned when method groups are composed twice on a record.
	ErrRecordComposed = errors.New("record is already composed")

	// ErrResolution is returned when an identity string or profile cannot be resolved.
	ErrResolution = errors.New("identity resolution failed")

	// ErrProfileNotFound is returned by resolvers when an identity has no profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidIdentity is returned when an identity cannot be parsed or is zero.
	ErrInvalidIdentity = errors.New("invalid identity")

	// ErrDirectoryNotStarted is returned when the directory is used before Start.
	ErrDirectoryNotStarted = errors.New("directory is not started")

	// ErrDirectoryAlreadyStarted is returned when Start is called twice.
	ErrDirectoryAlreadyStarted = errors.New("directory has already started")

	// ErrDirectoryStopped is returned when Start is called after Stop.
	ErrDirectoryStopped = errors.New("directory is stopped")

	// ErrStoreClosed is returned by stores used after Close.
	ErrStoreClosed = errors.New("store is closed")

	// ErrStoreRequired is returned when a directory is built without a store.
	ErrStoreRequired = errors.New("store is required")

	// ErrResolverRequired is returned when a directory is built without a resolver.
	ErrResolverRequired = errors.New("resolver is required")
)

// DuplicateFieldError reports a field declared twice.
type DuplicateFieldError struct {
	Field string
}

var _ error = (*DuplicateFieldError)(nil)

// NewDuplicateFieldError creates an instance of DuplicateFieldError
func NewDuplicateFieldError(field string) *DuplicateFieldError {
	return &DuplicateFieldError{Field: field}
}

// Error implements the standard error interface
func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("field=(%s) %s", e.Field, ErrDuplicateField.Error())
}

// Is makes errors.Is(err, ErrDuplicateField) hold.
func (e *DuplicateFieldError) Is(target error) bool {
	return target == ErrDuplicateField
}

// ClosedGroupError reports a method added to a group after Finalize.
type ClosedGroupError struct {
	Group  string
	Method string
}

var _ error = (*ClosedGroupError)(nil)

// NewClosedGroupError creates an instance of ClosedGroupError
func NewClosedGroupError(group, method string) *ClosedGroupError {
	return &ClosedGroupError{Group: group, Method: method}
}

// Error implements the standard error interface
func (e *ClosedGroupError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("group=(%s) %s", e.Group, ErrClosedGroup.Error())
	}
	return fmt.Sprintf("group=(%s) method=(%s) %s", e.Group, e.Method, ErrClosedGroup.Error())
}

// Is makes errors.Is(err, ErrClosedGroup) hold.
func (e *ClosedGroupError) Is(target error) bool {
	return target == ErrClosedGroup
}

// ResolutionError wraps the failure of the identity resolver.
type ResolutionError struct {
	// Input is the identity string or the numeric identity being resolved.
	Input string
	err   error
}

var _ error = (*ResolutionError)(nil)

// NewResolutionError creates an instance of ResolutionError
func NewResolutionError(input string, err error) *ResolutionError {
	return &ResolutionError{Input: input, err: err}
}

// Error implements the standard error interface
func (e *ResolutionError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("input=(%s) %s", e.Input, ErrResolution.Error())
	}
	return fmt.Sprintf("input=(%s) %s: %v", e.Input, ErrResolution.Error(), e.err)
}

// Is makes errors.Is(err, ErrResolution) hold.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

func (e *ResolutionError) Unwrap() error {
	return e.err
}

// NewErrGroupNameConflict formats an ErrGroupNameConflict with the given group name.
func NewErrGroupNameConflict(name string) error {
	return fmt.Errorf("group=(%s) %w", name, ErrGroupNameConflict)
}

// NewErrGroupNotFound formats an ErrGroupNotFound with the given group name.
func NewErrGroupNotFound(name string) error {
	return fmt.Errorf("group=(%s) %w", name, ErrGroupNotFound)
}

// NewErrMethodNotFound formats an ErrMethodNotFound with the given method name.
func NewErrMethodNotFound(name string) error {
	return fmt.Errorf("method=(%s) %w", name, ErrMethodNotFound)
}

// NewErrInvalidFieldName formats an ErrInvalidFieldName with the given name.
func NewErrInvalidFieldName(name string) error {
	return fmt.Errorf("field=(%s) %w", name, ErrInvalidFieldName)
}

// NewErrFieldNotDeclared formats an ErrFieldNotDeclared with the given name.
func NewErrFieldNotDeclared(name string) error {
	return fmt.Errorf("field=(%s) %w", name, ErrFieldNotDeclared)
}

// NewErrInvalidFieldValue formats an ErrInvalidFieldValue with the given name.
func NewErrInvalidFieldValue(name string) error {
	return fmt.Errorf("field=(%s) %w", name, ErrInvalidFieldValue)
}

// NewErrInvalidIdentity joins the parsing failure with ErrInvalidIdentity.
func NewErrInvalidIdentity(err error) error {
	return errors.Join(ErrInvalidIdentity, err)
}
