package main

import (
	"errors"
	"fmt"
)

const (
	exitFailure      = 1 // a scenario or guest failed
	exitCommandError = 2 // bad flags, unreadable files, invalid configuration
)

// exitError carries the process exit code out of a command.
type exitError struct {
	err  error
	msg  string
	code int
}

func (e *exitError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *exitError) Unwrap() error { return e.err }

func failure(msg string) error { return &exitError{code: exitFailure, msg: msg} }

func commandError(msg string, err error) error {
	return &exitError{code: exitCommandError, msg: msg, err: err}
}

func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitFailure
}
