// Package framework contains the low-level test harness infrastructure that is
// not specific to the service being tested.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to
// accumulate success/failure results, outside of the Go test runner.
//
// 2. Output from tests and from the process under test is captured through the
// Logger types, so that it can be dumped after a failure rather than
// interleaved with the console report.
//
// The domain-specific code that knows how to start, verify, and stop the
// service lives in the service and miditests packages.
package framework
