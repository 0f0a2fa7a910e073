package service

import (
	"fmt"
	"time"

	"github.com/harmonia-project/midi-contract-tests/framework"
)

// LaunchError means the service binary could not be started at all: missing
// executable, permission denied, and so on. There is no process to clean up.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("could not launch service (%s): %s", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// NotReadyError means the service's output stream closed before the readiness
// line appeared: the process exited or crashed during startup. Output holds
// whatever the service printed before that, for diagnostics.
type NotReadyError struct {
	Address Address
	Output  framework.CapturedOutput
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("service exited before announcing readiness on %s", e.Address)
}

// ReadinessTimeoutError means the service was still running but had not
// announced readiness within the allowed time. Without this bound a hung
// service would block the test run forever.
type ReadinessTimeoutError struct {
	Address Address
	Timeout time.Duration
	Output  framework.CapturedOutput
}

func (e *ReadinessTimeoutError) Error() string {
	return fmt.Sprintf("service did not announce readiness on %s within %s", e.Address, e.Timeout)
}

// VerificationError means the one verification request failed, either at the
// transport level (Err is set) or with a non-200 status (Status is set).
type VerificationError struct {
	URL    string
	Status int
	Body   []byte
	Err    error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s returned HTTP %d", e.URL, e.Status)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// TerminationError means the harness could not guarantee that the service
// process is gone. This is worse than an ordinary test failure: the process
// may still hold the port and poison later runs, so it is always reported
// distinctly rather than folded into whatever else went wrong.
type TerminationError struct {
	Stage string // "interrupt", "kill", or "reap"
	Err   error
}

func (e *TerminationError) Error() string {
	return fmt.Sprintf("could not terminate service (%s): %s", e.Stage, e.Err)
}

func (e *TerminationError) Unwrap() error { return e.Err }
