// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of error functions that extend
// the standard library errors package, most notably [Log] and [Log1],
// which log an error and pass it through to the caller.
package errors

import (
	"errors"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
)

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	errors.Log(MyFunc(v))
//	// or
//	return errors.Log(MyFunc(v))
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 takes the given value and error and returns the value if
// the error is nil, and logs the error and returns a zero value
// if the error is non-nil. The intended usage is:
//
//	a := errors.Log1(MyFunc(v))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// CallerInfo returns string information about the caller
// of the function that called CallerInfo.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name() + " " + filepath.Base(file) + ":" + strconv.Itoa(line)
}

// New is a wrapper around the standard library [errors.New].
func New(text string) error { return errors.New(text) }

// Is is a wrapper around the standard library [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// As is a wrapper around the standard library [errors.As].
func As(err error, target any) bool { return errors.As(err, target) }

// Join is a wrapper around the standard library [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }

// Unwrap is a wrapper around the standard library [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
