// Licensed under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package binutil

import "fmt"

// ErrorKind represents categories of codec errors for fast dispatch.
// Using an enum allows for efficient error checking on the hot path.
type ErrorKind uint8

const (
	// ErrKindOK indicates no error occurred
	ErrKindOK ErrorKind = iota
	// ErrKindUnexpectedEof indicates a read past the end of the buffer
	ErrKindUnexpectedEof
	// ErrKindVarIntOverflow indicates a varint exceeded its maximum group count
	ErrKindVarIntOverflow
	// ErrKindRangeOverflow indicates a fixed-width extension value out of range
	ErrKindRangeOverflow
	// ErrKindInvalidUtf8 indicates a string payload that is not valid UTF-8
	ErrKindInvalidUtf8
	// ErrKindUnknownVariant indicates an enum discriminant matching no variant
	ErrKindUnknownVariant
	// ErrKindRequiredFieldMissing indicates an absent dependency of a required field
	ErrKindRequiredFieldMissing
	// ErrKindPredicateFailed indicates a false field predicate
	ErrKindPredicateFailed
	// ErrKindInvalidSchema indicates a malformed field policy table
	ErrKindInvalidSchema
	// ErrKindCodecFailed indicates a general codec failure wrapped from a
	// foreign error
	ErrKindCodecFailed
)

// Error is a lightweight error type optimized for hot path performance.
// It stores error details without allocating until Error() is called.
// The zero value means no error.
type Error struct {
	kind    ErrorKind
	message string // pre-formatted message or empty for lazy formatting
	// For out-of-bound reads
	offset int
	need   int
	size   int
	// For enum dispatch failures
	tag uint64
	// For field policy failures
	field string
}

// Ok returns true if no error occurred
func (e Error) Ok() bool {
	return e.kind == ErrKindOK
}

// HasError returns true if an error occurred
func (e Error) HasError() bool {
	return e.kind != ErrKindOK
}

// Kind returns the error kind for fast dispatch
func (e Error) Kind() ErrorKind {
	return e.kind
}

// Error implements the error interface with lazy formatting
func (e Error) Error() string {
	switch e.kind {
	case ErrKindOK:
		return ""
	case ErrKindUnexpectedEof:
		if e.message != "" {
			return e.message
		}
		return fmt.Sprintf("unexpected eof: offset=%d, need=%d, size=%d", e.offset, e.need, e.size)
	case ErrKindUnknownVariant:
		if e.message != "" {
			return e.message
		}
		return fmt.Sprintf("unknown variant: discriminant=%d", e.tag)
	case ErrKindRequiredFieldMissing:
		if e.message != "" {
			return e.message
		}
		return fmt.Sprintf("required field missing: %s", e.field)
	case ErrKindPredicateFailed:
		if e.message != "" {
			return e.message
		}
		return fmt.Sprintf("predicate failed for field: %s", e.field)
	default:
		if e.message != "" {
			return e.message
		}
		return fmt.Sprintf("binutil error: kind=%d", e.kind)
	}
}

// UnexpectedEofError creates an error for a read past the end of the buffer
func UnexpectedEofError(offset, need, size int) Error {
	return Error{
		kind:   ErrKindUnexpectedEof,
		offset: offset,
		need:   need,
		size:   size,
	}
}

// VarIntOverflowError creates an error for a varint with too many groups
func VarIntOverflowError(bits int) Error {
	return Error{
		kind:    ErrKindVarIntOverflow,
		message: fmt.Sprintf("varint overflows %d-bit integer", bits),
	}
}

// RangeOverflowError creates an error for an out-of-range fixed-width value
func RangeOverflowError(msg string) Error {
	return Error{
		kind:    ErrKindRangeOverflow,
		message: msg,
	}
}

// RangeOverflowErrorf creates a formatted range overflow error
func RangeOverflowErrorf(format string, args ...any) Error {
	return Error{
		kind:    ErrKindRangeOverflow,
		message: fmt.Sprintf(format, args...),
	}
}

// InvalidUtf8Error creates an error for a non-UTF-8 string payload
func InvalidUtf8Error(offset int) Error {
	return Error{
		kind:    ErrKindInvalidUtf8,
		message: fmt.Sprintf("invalid utf-8 sequence in string payload at offset %d", offset),
	}
}

// UnknownVariantError creates an error for an unmatched enum discriminant
func UnknownVariantError(tag uint64) Error {
	return Error{
		kind: ErrKindUnknownVariant,
		tag:  tag,
	}
}

// RequiredFieldMissingError creates an error for a required field whose
// dependency is absent
func RequiredFieldMissingError(field, dependsOn string) Error {
	return Error{
		kind:    ErrKindRequiredFieldMissing,
		field:   field,
		message: fmt.Sprintf("field %s requires %s, which is not present", field, dependsOn),
	}
}

// PredicateFailedError creates an error for a field whose predicate was false
func PredicateFailedError(field string) Error {
	return Error{
		kind:  ErrKindPredicateFailed,
		field: field,
	}
}

// InvalidSchemaError creates an error for a malformed field policy table
func InvalidSchemaError(msg string) Error {
	return Error{
		kind:    ErrKindInvalidSchema,
		message: msg,
	}
}

// InvalidSchemaErrorf creates a formatted invalid schema error
func InvalidSchemaErrorf(format string, args ...any) Error {
	return Error{
		kind:    ErrKindInvalidSchema,
		message: fmt.Sprintf(format, args...),
	}
}

// Pointer receiver methods for *Error (used for error accumulation)

// SetError sets the error if no error has occurred yet (first-error-wins)
func (e *Error) SetError(err error) {
	if e == nil || e.kind != ErrKindOK {
		return
	}
	if bErr, ok := err.(Error); ok {
		*e = bErr
	} else if err != nil {
		*e = Error{
			kind:    ErrKindCodecFailed,
			message: err.Error(),
		}
	}
}

// TakeError returns the error and clears it
func (e *Error) TakeError() error {
	if e == nil || e.kind == ErrKindOK {
		return nil
	}
	result := *e
	*e = Error{kind: ErrKindOK}
	return result
}

// CheckError returns the error if one occurred, nil otherwise
func (e *Error) CheckError() error {
	if e == nil || e.kind == ErrKindOK {
		return nil
	}
	return *e
}
