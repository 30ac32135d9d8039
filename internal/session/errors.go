package session

import (
	"fmt"
	"strings"
)

// LaunchError means the proxy tool could not be started at all, as opposed to
// running and exiting non-zero.
type LaunchError struct {
	Tool string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s (is mitmproxy installed?): %v", e.Tool, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// TeardownError aggregates the failures of a teardown pass. Setup mutations
// it describes may still be in effect; `start-proxy restore` can recover the
// pinned certificate from its backup.
type TeardownError struct {
	Failures []error
}

func (e *TeardownError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("teardown left %d step(s) unfinished: %s", len(e.Failures), strings.Join(msgs, "; "))
}

func (e *TeardownError) Unwrap() []error {
	return e.Failures
}
