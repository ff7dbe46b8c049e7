// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"fmt"
	"reflect"
	"unicode"

	"github.com/pkg/errors"
)

const (
	InternalErrorClass   = "InternalError"
	InternalErrorMessage = "internal error"

	// UnknownErrorClass is used when the root cause of an error has no exported type name
	UnknownErrorClass = "Error"
)

// Error is the document returned to the client in place of a result when a call fails
type Error struct {
	Class     string `json:"error_class"`
	Message   string `json:"error_message"`
	Traceback string `json:"error_traceback"`
}

// Classer is implemented by errors that know their own class name
type Classer interface {
	ErrorClass() string
}

// RootCause unwraps err as far as it will go
func RootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}

		err = next
	}
}

// ClassOf names the class of an error: the first ErrorClass() in the chain, otherwise the
// type name of the root cause
func ClassOf(err error) string {
	var c Classer
	if errors.As(err, &c) {
		return c.ErrorClass()
	}

	t := reflect.TypeOf(RootCause(err))
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || len(t.Name()) == 0 || !unicode.IsUpper([]rune(t.Name())[0]) {
		return UnknownErrorClass
	}

	return t.Name()
}

// panicError carries a recovered panic along with the stack at the point of recovery
type panicError struct {
	value interface{}
	stack []byte
}

func (pe *panicError) Error() string {
	return fmt.Sprintf("panic: %v", pe.value)
}

func (pe *panicError) traceback() string {
	return fmt.Sprintf("%s\n\n%s", pe.Error(), pe.stack)
}

// Traceback renders the full diagnostic text of an error, including stack frames when available
func Traceback(err error) string {
	var pe *panicError
	if errors.As(err, &pe) {
		return pe.traceback()
	}

	return fmt.Sprintf("%+v", err)
}

// NewError produces the client-facing document for a failed call.  Panics never disclose
// their value; they are reported as InternalError.
func NewError(err error, exposeTraceback bool) Error {
	var e Error
	var pe *panicError
	if errors.As(err, &pe) {
		e = Error{Class: InternalErrorClass, Message: InternalErrorMessage}
	} else {
		e = Error{Class: ClassOf(err), Message: err.Error()}
	}

	if exposeTraceback {
		e.Traceback = Traceback(err)
	}

	return e
}
