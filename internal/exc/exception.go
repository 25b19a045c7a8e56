// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"fmt"

	"github.com/ifcstep/ifcstep/internal/idl"
)

// Exception is an error with a stable code and the place it was found.
type Exception interface {
	error
	Code() string
	Message() string
	Location() Location
}

// Location is a position inside the file named by URI. A zero line means
// the whole file.
type Location struct {
	idl.Location
	URI string
}

func (l Location) String() string {
	if l.Line == 0 {
		return l.URI
	}
	return fmt.Sprintf("%s:%d:%d", l.URI, l.Line, l.Column)
}

type entry struct {
	code     string
	message  string
	location Location
	cause    error
}

func (e *entry) Error() string {
	return fmt.Sprintf("%s -- %s: %s", e.location, e.code, e.message)
}

func (e *entry) Code() string       { return e.code }
func (e *entry) Message() string    { return e.message }
func (e *entry) Location() Location { return e.location }
func (e *entry) Unwrap() error      { return e.cause }

func New(location Location, code string, message string) Exception {
	return &entry{code: code, message: message, location: location}
}

func Errorf(location Location, code string, format string, args ...any) Exception {
	return New(location, code, fmt.Sprintf(format, args...))
}

// Wrap gives err a code and location. The message of a wrapped Exception
// is kept without its own location prefix.
func Wrap(location Location, code string, err error) Exception {
	if err == nil {
		return nil
	}
	message := err.Error()
	if e, ok := err.(Exception); ok {
		message = e.Message()
	}
	return &entry{code: code, message: message, location: location, cause: err}
}

func WrapUnknown(location Location, err error) Exception {
	return Wrap(location, CodeUnknownFatal, err)
}
