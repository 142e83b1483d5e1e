package cmd

import "errors"

// Exit statuses by failure stage.
const (
	ExitInput = 2 // input path missing or unreadable
	ExitParse = 3 // input is not valid JSON or JSON Lines
	ExitWrite = 4 // CSV target could not be written
)

// exitError carries the exit status for a failure stage.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
