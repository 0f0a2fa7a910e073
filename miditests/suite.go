package miditests

import (
	"github.com/harmonia-project/midi-contract-tests/framework"
	"github.com/harmonia-project/midi-contract-tests/service"
)

// RunTestSuite runs the whole suite against the service described by params.
// Whatever the tests did, every process started during the run is stopped
// before this returns; a termination failure is reported as its own test
// failure rather than being silently ignored.
func RunTestSuite(
	params SuiteParams,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		env := &environment{
			params: params,
			runner: service.NewRunner(params.ShutdownGrace),
		}
		defer func() {
			if err := env.runner.StopAll(); err != nil {
				c.Errorf("service cleanup failed: %s", err)
			}
		}()

		t := &T{context: c, env: env}
		t.Run("service lifecycle", DoLifecycleTests)
	})
}
