package cli

import (
	"errors"
	"io/fs"
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// inputError classifies a failure to read an input file: a missing file
// is the user's mistake, anything else is a system error.
func inputError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return userError(err)
	}
	return sysError(err)
}

// exitCode maps err to a process exit code. Errors without a code, such
// as cobra's argument and flag errors, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
