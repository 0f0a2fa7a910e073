// Command midi-contract-tests is an integration-test harness for the MIDI
// network service. It launches the service binary as a child process, waits
// for it to announce readiness on its stdout, verifies the service's MIDI
// port listing endpoint over HTTP, and shuts the service down, killing it if
// it will not exit. The process exit code is 0 only if every test passed.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harmonia-project/midi-contract-tests/framework"
	"github.com/harmonia-project/midi-contract-tests/miditests"
	"github.com/harmonia-project/midi-contract-tests/service"
)

const defaultHost = "127.0.0.1"
const defaultPort = 8888
const defaultReadyTimeout = 10 * time.Second
const defaultShutdownTimeout = 10 * time.Second

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	suiteParams := miditests.SuiteParams{
		ServiceBinary: params.serviceBinary,
		ServiceArgs:   params.serviceArgs,
		Address:       service.Address{Host: params.host, Port: params.port},
		ReadyTimeout:  params.readyTimeout,
		ShutdownGrace: params.shutdownTimeout,
	}

	framework.PrintFilterDescription(params.filters)
	fmt.Println("Running test suite")

	testLogger := &framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := miditests.RunTestSuite(suiteParams, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		os.Exit(1)
	}
}
