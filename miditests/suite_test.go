package miditests

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonia-project/midi-contract-tests/framework"
	"github.com/harmonia-project/midi-contract-tests/internal/fakeservice"
	"github.com/harmonia-project/midi-contract-tests/service"
)

func TestMain(m *testing.M) {
	fakeservice.RunIfRequested()
	os.Exit(m.Run())
}

func suiteParamsForFake(t *testing.T, mode string) SuiteParams {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	return SuiteParams{
		ServiceBinary: os.Args[0],
		ServiceArgs:   []string{"-fake.mode=" + mode},
		Address:       service.Address{Host: "127.0.0.1", Port: port},
		ReadyTimeout:  5 * time.Second,
		ShutdownGrace: 5 * time.Second,
	}
}

func failureNames(results framework.Results) []string {
	var names []string
	for _, f := range results.Failures {
		names = append(names, f.TestID.String())
	}
	return names
}

func TestSuitePassesAgainstAServingService(t *testing.T) {
	params := suiteParamsForFake(t, fakeservice.ModeServe)
	results := RunTestSuite(params, nil, nil)
	assert.True(t, results.OK(), "suite failed: %v", failureNames(results))
}

func TestSuiteReportsVerificationFailureButStillCleansUp(t *testing.T) {
	// The fake announces readiness but never listens, so the verification
	// request gets a transport error. The shutdown subtest and the runner's
	// cleanup must still succeed.
	params := suiteParamsForFake(t, fakeservice.ModeAnnounce)
	results := RunTestSuite(params, nil, nil)

	require.False(t, results.OK())
	names := failureNames(results)
	require.Equal(t, 1, len(names))
	assert.Equal(t, "service lifecycle/midi ports endpoint", names[0])
}

func TestSuiteReportsStartupFailure(t *testing.T) {
	params := suiteParamsForFake(t, fakeservice.ModeExit)
	results := RunTestSuite(params, nil, nil)

	require.False(t, results.OK())
	// The lifecycle test fails at startup; the dependent subtests never run.
	names := failureNames(results)
	require.Equal(t, 1, len(names))
	assert.Equal(t, "service lifecycle", names[0])
}

func TestSuiteRespectsFilters(t *testing.T) {
	params := suiteParamsForFake(t, fakeservice.ModeServe)
	filter := func(id framework.TestID) bool { return id.String() != "service lifecycle" }
	results := RunTestSuite(params, filter, nil)

	assert.True(t, results.OK())
	for _, result := range results.Tests {
		assert.NotEqual(t, "service lifecycle", result.TestID.String())
	}
}
