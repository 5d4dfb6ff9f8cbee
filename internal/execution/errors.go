package execution

import (
	"errors"
	"fmt"
)

var (
	// ErrCaseNotFound reports an unknown case id.
	ErrCaseNotFound = errors.New("case not found")

	// ErrAdapterUnavailable reports an adapter whose tool cannot currently
	// be invoked.
	ErrAdapterUnavailable = errors.New("adapter is not available")

	// ErrTimeout reports an adapter call that exceeded the configured
	// deadline. The underlying call is not aborted; the engine just stops
	// waiting for it.
	ErrTimeout = errors.New("execution timed out")

	// ErrExecutionNotTracked reports a stop request for an execution that is
	// not currently in flight.
	ErrExecutionNotTracked = errors.New("execution is not tracked as in-flight")

	// ErrExecutionCancelled reports an execution that was cancelled while
	// its adapter call was still in flight.
	ErrExecutionCancelled = errors.New("execution was cancelled")
)

// AdapterExecutionError wraps any failure returned by an adapter's Execute
// call, other than a timeout.
type AdapterExecutionError struct {
	Tool string
	Err  error
}

func (e *AdapterExecutionError) Error() string {
	return fmt.Sprintf("adapter %q failed: %v", e.Tool, e.Err)
}

func (e *AdapterExecutionError) Unwrap() error { return e.Err }
