// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides easy, context-wrapped error handling, in the
// manner of the rest of this module: construct with [New] or [Wrap], and
// log a non-nil error in place with [Log] or [Log1] without having to
// break the flow of the calling function into an if-statement.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// Is is a shorthand for the standard library [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a shorthand for the standard library [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Error wraps a base error together with the call stack frame at the
// point [Wrap] was called, so that an error logged far from where it
// originated still points back at its source.
type Error struct {
	Base  error
	Frame runtime.Frame
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s:%d)", e.Base.Error(), e.Frame.File, e.Frame.Line)
}

// Unwrap returns the underlying base error.
func (e *Error) Unwrap() error {
	return e.Base
}

// Wrap wraps err with the caller's source location. It returns nil if err
// is nil, so it is safe to call unconditionally on a function's error
// return. If err is already of type [*Error], it is returned unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if As(err, &e) {
		return err
	}
	frame := callerFrame(2)
	return &Error{Base: err, Frame: frame}
}

// New returns a new error with the given text, wrapped with a source
// location via [Wrap]. It is the package equivalent of [errors.New].
func New(text string) error {
	return Wrap(errors.New(text))
}

// Errorf returns a new error with the given format and arguments, wrapped
// with a source location via [Wrap]. It is the package equivalent of
// [fmt.Errorf].
func Errorf(format string, a ...any) error {
	return Wrap(fmt.Errorf(format, a...))
}

// Log logs the given error at [slog.LevelError] if it is non-nil, and
// returns it unchanged. This allows a fallible call's error to be logged
// without breaking the calling function's control flow:
//
//	errors.Log(doSomething())
func Log(err error) error {
	if err == nil {
		return nil
	}
	slog.Error(err.Error())
	return err
}

// Log1 is the one-result-plus-error form of [Log], for calls that return
// a value alongside an error:
//
//	v := errors.Log1(doSomethingWithResult())
func Log1[T any](v T, err error) T {
	Log(err)
	return v
}

// Warn logs the given error at [slog.LevelWarn] if it is non-nil, and
// returns it unchanged. Used for the "configuration failure" and
// "<auto> resolution failure" categories, which are never fatal.
func Warn(err error) error {
	if err == nil {
		return nil
	}
	slog.Warn(err.Error())
	return err
}

func callerFrame(skip int) runtime.Frame {
	pc := make([]uintptr, 1)
	n := runtime.Callers(skip+1, pc)
	if n == 0 {
		return runtime.Frame{}
	}
	frames := runtime.CallersFrames(pc)
	frame, _ := frames.Next()
	return frame
}
