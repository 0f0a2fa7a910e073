// Package service manages the lifecycle of the MIDI service under test: it
// launches the service binary as a child process, watches its output for the
// readiness announcement, makes the one verification request against its HTTP
// interface, and guarantees that the process is terminated and reaped on every
// exit path.
package service
