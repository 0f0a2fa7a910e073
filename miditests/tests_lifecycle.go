package miditests

// DoLifecycleTests runs the service through one complete lifecycle: launch,
// readiness, verification of the MIDI ports endpoint, and graceful shutdown.
// The stages are deliberately sequential; if startup fails there is nothing
// to verify, and teardown still happens through the suite's runner.
func DoLifecycleTests(t *T) {
	p := t.StartService()
	t.Debug("service is ready at %s (pid %d)", p.Address(), p.PID())

	t.Run("midi ports endpoint", func(t *T) {
		result := t.RequirePortsEndpoint()
		t.Debug("ports endpoint returned: %s", string(result.Body))
	})

	t.Run("graceful shutdown", func(t *T) {
		t.RequireCleanShutdown()
	})
}
