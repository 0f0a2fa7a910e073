package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harmonia-project/midi-contract-tests/framework"
)

// Runner tracks every service process started during a harness run so that
// they can all be stopped at the end, whatever state the run finished in.
// No two tracked processes may share an Address; the port is exclusive to one
// process for the duration of a run.
type Runner struct {
	grace time.Duration

	mu        sync.Mutex
	processes []*Process
}

func NewRunner(grace time.Duration) *Runner {
	return &Runner{grace: grace}
}

// Launch starts a service process and tracks it for cleanup.
func (r *Runner) Launch(binary string, addr Address, extraArgs []string, logger framework.Logger) (*Process, error) {
	p, err := Launch(binary, addr, extraArgs, logger)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.processes = append(r.processes, p)
	r.mu.Unlock()
	return p, nil
}

// StopAll stops every tracked process and returns the first termination
// failure, if any. It is safe to call when some or all of the processes have
// already been stopped or have exited on their own.
func (r *Runner) StopAll() error {
	r.mu.Lock()
	processes := r.processes
	r.processes = nil
	r.mu.Unlock()

	g, _ := errgroup.WithContext(context.Background())
	for _, p := range processes {
		p := p
		g.Go(func() error {
			return p.Stop(r.grace)
		})
	}
	return g.Wait()
}
