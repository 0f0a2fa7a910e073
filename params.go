package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/harmonia-project/midi-contract-tests/framework"
)

type commandParams struct {
	serviceBinary   string
	serviceArgs     []string
	host            string
	port            int
	readyTimeout    time.Duration
	shutdownTimeout time.Duration
	filters         framework.RegexFilters
	debug           bool
	debugAll        bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceBinary, "service", "", "path of the service binary under test")
	fs.StringVar(&c.host, "host", defaultHost, "host address the service will listen on")
	fs.IntVar(&c.port, "port", defaultPort, "port the service will listen on")
	fs.DurationVar(&c.readyTimeout, "ready-timeout", defaultReadyTimeout,
		"how long to wait for the service to announce readiness")
	fs.DurationVar(&c.shutdownTimeout, "shutdown-timeout", defaultShutdownTimeout,
		"how long an interrupted service gets to exit before being killed")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.serviceBinary == "" {
		fmt.Fprintln(os.Stderr, "-service is required")
		fs.Usage()
		return false
	}
	// Anything after a "--" terminator is passed through to the service.
	c.serviceArgs = fs.Args()
	return true
}
