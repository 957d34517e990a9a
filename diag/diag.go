// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
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

// Package diag defines the error taxonomy shared by the type-checker packages.
//
// Three classes of failures are distinguished:
//
//   * User errors stem from invalid programs and are returned as *Error values.
//   * Resource errors are returned as *Error values with a resource code (e.g. a type which does
//     not reach a normal form within the configured number of reduction steps).
//   * Internal invariant violations are raised with panic(*InvariantViolation) and indicate a
//     precondition which a prior stage failed to enforce.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// Class of a failure.
type Class uint8

const (
	// User type error (recoverable/reportable)
	User Class = iota
	// Internal invariant violation (compiler bug or unchecked precondition)
	Internal
	// Resource exhaustion (reduction step ceiling)
	Resource
)

func (c Class) String() string {
	switch c {
	case User:
		return "user"
	case Internal:
		return "internal"
	case Resource:
		return "resource"
	}
	return "unknown"
}

// Code identifies the kind of a user-facing error.
type Code string

const (
	CodeTypeMismatch       Code = "TYPE_MISMATCH"
	CodeUndefinedVariable  Code = "UNDEFINED_VARIABLE"
	CodeUndefinedType      Code = "UNDEFINED_TYPE"
	CodeUndefinedModule    Code = "UNDEFINED_MODULE"
	CodeUndefinedMember    Code = "UNDEFINED_MEMBER"
	CodePrivateAccess      Code = "PRIVATE_ACCESS"
	CodeMissingField       Code = "MISSING_FIELD"
	CodeExtraField         Code = "EXTRA_FIELD"
	CodeArityMismatch      Code = "ARITY_MISMATCH"
	CodeNoExtension        Code = "NO_EXTENSION"
	CodeAmbiguousExtension Code = "AMBIGUOUS_EXTENSION"
	CodeNonExhaustiveMatch Code = "NON_EXHAUSTIVE_MATCH"
	CodeInvalidPattern     Code = "INVALID_PATTERN"
	CodeImmutableAssign    Code = "IMMUTABLE_ASSIGNMENT"
	CodeInvalidTypeRule    Code = "INVALID_TYPE_RULE"
	CodeUnknownExternal    Code = "UNKNOWN_EXTERNAL"
	CodeInvalidStatement   Code = "INVALID_STATEMENT"
	CodeImportFailed       Code = "IMPORT_FAILED"
	CodeDuplicateBinding   Code = "DUPLICATE_BINDING"
	CodeUnknownOperator    Code = "UNKNOWN_OPERATOR"
	CodeAmbiguousVariant   Code = "AMBIGUOUS_VARIANT"

	// Resource exhaustion
	CodeNoNormalForm Code = "NO_NORMAL_FORM"
)

// Error is a user-facing (or resource) error with a human-readable message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// Class returns Resource for reduction-limit errors and User otherwise.
func (e *Error) Class() Class {
	if e.Code == CodeNoNormalForm {
		return Resource
	}
	return User
}

// Errorf creates a user error with a formatted message.
func Errorf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// InvariantViolation is raised (through panic) when an internal invariant is broken.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.Message }

// Violation panics with an *InvariantViolation carrying a stack trace.
func Violation(format string, args ...interface{}) {
	panic(errors.WithStack(&InvariantViolation{Message: fmt.Sprintf(format, args...)}))
}

// AsViolation reports whether a recovered panic value is an invariant violation, returning it as an error.
func AsViolation(r interface{}) (error, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var iv *InvariantViolation
	if !errors.As(err, &iv) {
		return nil, false
	}
	return err, true
}

// ClassOf returns the class of an error produced by the type-checker. Errors of unknown origin
// are reported as internal.
func ClassOf(err error) Class {
	var iv *InvariantViolation
	if errors.As(err, &iv) {
		return Internal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Class()
	}
	return Internal
}

// CodeOf returns the code of a user or resource error, or the empty code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
