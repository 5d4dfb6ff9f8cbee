package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // All cases passed
	ExitCaseFailed = 1 // One or more cases failed their pass threshold
	ExitError      = 2 // Configuration or runtime error
)

// CaseFailureError indicates that the run itself succeeded, but one or more
// executions scored below their case's pass threshold.
type CaseFailureError struct {
	Message string
}

func (e *CaseFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var caseFailure *CaseFailureError
		if errors.As(err, &caseFailure) {
			os.Exit(ExitCaseFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
