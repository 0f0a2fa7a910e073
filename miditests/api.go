// Package miditests contains the test suite that the harness runs against the
// MIDI service: one full service lifecycle per run, from launch through
// readiness and verification to deterministic teardown.
package miditests

import (
	"time"

	"github.com/stretchr/testify/require"

	"github.com/harmonia-project/midi-contract-tests/framework"
	"github.com/harmonia-project/midi-contract-tests/service"
)

const verifyRequestTimeout = 5 * time.Second

// SuiteParams configures one run of the test suite.
type SuiteParams struct {
	// ServiceBinary is the path of the service executable under test.
	ServiceBinary string
	// ServiceArgs are extra arguments passed to the service after the address
	// flags.
	ServiceArgs []string
	// Address is the single source of truth for where the service listens:
	// it is used for the launch arguments, the readiness match, and the
	// verification URL.
	Address service.Address
	// ReadyTimeout bounds how long the suite waits for the readiness line.
	ReadyTimeout time.Duration
	// ShutdownGrace is how long an interrupted service gets to exit before it
	// is killed.
	ShutdownGrace time.Duration
}

type environment struct {
	params  SuiteParams
	runner  *service.Runner
	process *service.Process
}

// T represents a test or subtest in the suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner. To make test assertions,
// use the assert and require packages, passing the *T as if it were a
// *testing.T.
//
// Subtests share the suite's environment: there is exactly one service
// process per run, owned by the environment's runner, and every subtest
// operates on that process.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test. The output will be passed to the
// test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// StartService launches the service and waits for it to announce readiness on
// the configured address. The test fails and immediately exits if either
// stage fails; the process, if one was started, is still cleaned up by the
// suite's runner.
func (t *T) StartService() *service.Process {
	p, err := t.env.runner.Launch(
		t.env.params.ServiceBinary,
		t.env.params.Address,
		t.env.params.ServiceArgs,
		t.context.DebugLogger(),
	)
	require.NoError(t, err)
	t.env.process = p

	if err := p.AwaitReady(t.env.params.ReadyTimeout); err != nil {
		for _, m := range p.Output() {
			t.Debug("service output: %s", m.Message)
		}
		require.NoError(t, err)
	}
	return p
}

// RequirePortsEndpoint makes the one verification request to the service's
// MIDI port listing endpoint and fails the test unless it returns 200.
func (t *T) RequirePortsEndpoint() service.VerifyResult {
	t.requireServiceStarted()
	result, err := service.VerifyPorts(t.env.params.Address, verifyRequestTimeout, t.context.DebugLogger())
	require.NoError(t, err)
	return result
}

// RequireCleanShutdown stops the service and fails the test if termination
// could not be guaranteed.
func (t *T) RequireCleanShutdown() {
	t.requireServiceStarted()
	require.NoError(t, t.env.process.Stop(t.env.params.ShutdownGrace))
}

func (t *T) requireServiceStarted() {
	require.NotNil(t, t.env.process, "test tried to use the service before starting it")
}
