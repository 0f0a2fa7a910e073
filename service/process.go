package service

import (
	"bufio"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/alessio/shellescape"

	"github.com/harmonia-project/midi-contract-tests/framework"
	"github.com/harmonia-project/midi-contract-tests/servicedef"
)

// How long to wait for the OS to reap the process after a forced kill. This is
// separate from the grace period given to an interrupted process.
const killReapTimeout = 5 * time.Second

// Process is a running instance of the service, owned by the harness for the
// duration of one test run. Its lifecycle is:
//
//	Launch -> AwaitReady -> (verification happens over HTTP) -> Stop
//
// Stop must be called on every exit path, whichever earlier stage failed.
type Process struct {
	addr    Address
	cmd     *exec.Cmd
	logger  framework.Logger
	output  *framework.CapturingLogger
	stderr  *framework.LineWriter
	isReady func(string) bool

	lines    chan string
	scanDone chan struct{}
	exited   chan struct{}
	exitErr  error // valid after exited is closed

	drainOnce sync.Once
	stopOnce  sync.Once
	stopErr   error
}

// Launch starts the service binary listening on addr, with its output streams
// captured by the harness. extraArgs are passed through to the service after
// the address flags. The returned Process must be stopped with Stop even if a
// later stage fails.
func Launch(binary string, addr Address, extraArgs []string, logger framework.Logger) (*Process, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}

	args := append(servicedef.LaunchArgs(addr.Host, addr.Port), extraArgs...)
	command := describeCommand(binary, args)

	p := &Process{
		addr:     addr,
		cmd:      exec.Command(binary, args...),
		logger:   logger,
		output:   &framework.CapturingLogger{},
		isReady:  servicedef.ReadyMatcher(addr.HostPort()),
		lines:    make(chan string),
		scanDone: make(chan struct{}),
		exited:   make(chan struct{}),
	}
	p.stderr = framework.NewLineWriter(p.output)
	p.cmd.Stderr = p.stderr

	stdout, err := p.cmd.StdoutPipe()
	if err != nil {
		return nil, &LaunchError{Command: command, Err: err}
	}

	logger.Printf("Launching service: %s", command)
	if err := p.cmd.Start(); err != nil {
		return nil, &LaunchError{Command: command, Err: err}
	}
	logger.Printf("Service started with pid %d", p.cmd.Process.Pid)

	go p.scan(stdout)
	go func() {
		// Wait closes the stdout pipe, so it must not run until the scanner
		// has hit EOF; otherwise lines the service wrote just before exiting
		// could be thrown away unread.
		<-p.scanDone
		err := p.cmd.Wait()
		p.stderr.Flush()
		p.exitErr = err
		close(p.exited)
	}()

	return p, nil
}

// scan reads the service's stdout line by line, capturing every line and
// forwarding it to AwaitReady. The channel is closed when the stream closes,
// which is how a crashed or exited service is distinguished from a slow one.
func (p *Process) scan(stdout io.Reader) {
	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		line := sc.Text()
		p.output.Printf("%s", line)
		p.lines <- line
	}
	close(p.lines)
	close(p.scanDone)
}

// AwaitReady consumes the service's output until it announces that it is
// accepting connections on the launch address. It returns a NotReadyError if
// the output stream closes first, or a ReadinessTimeoutError if the deadline
// passes; in both cases the caller still owns the process and must stop it.
func (p *Process) AwaitReady(timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		select {
		case line, ok := <-p.lines:
			if !ok {
				return &NotReadyError{Address: p.addr, Output: p.output.Output()}
			}
			if p.isReady(line) {
				p.logger.Printf("Service is ready at %s", p.addr)
				p.startDraining()
				return nil
			}
		case <-deadline.C:
			p.startDraining()
			return &ReadinessTimeoutError{Address: p.addr, Timeout: timeout, Output: p.output.Output()}
		}
	}
}

// startDraining keeps consuming stdout once readiness scanning is over, so
// that a chatty service never blocks on a full pipe. Lines still end up in the
// captured output.
func (p *Process) startDraining() {
	p.drainOnce.Do(func() {
		go func() {
			for range p.lines {
			}
		}()
	})
}

// Stop terminates the service: an interrupt first, then a forced kill if the
// process has not exited within grace. The exit status is always collected.
// Stop is safe to call more than once and on an already-exited process; later
// calls return the first call's result.
func (p *Process) Stop(grace time.Duration) error {
	p.stopOnce.Do(func() {
		p.startDraining()
		p.stopErr = p.stop(grace)
	})
	return p.stopErr
}

func (p *Process) stop(grace time.Duration) error {
	select {
	case <-p.exited:
		p.logger.Printf("Service already exited (%s)", exitDescription(p.exitErr))
		return nil
	default:
	}

	if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			<-p.exited
			return nil
		}
		// Could not deliver the interrupt for some other reason; go straight
		// to the kill path rather than giving up on cleanup.
		p.logger.Printf("Interrupt failed (%s), escalating to kill", err)
	} else {
		p.logger.Printf("Sent interrupt to pid %d", p.cmd.Process.Pid)
		select {
		case <-p.exited:
			p.logger.Printf("Service exited (%s)", exitDescription(p.exitErr))
			return nil
		case <-time.After(grace):
			p.logger.Printf("Service did not exit within %s, killing pid %d", grace, p.cmd.Process.Pid)
		}
	}

	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return &TerminationError{Stage: "kill", Err: err}
	}
	select {
	case <-p.exited:
		p.logger.Printf("Service exited after kill (%s)", exitDescription(p.exitErr))
		return nil
	case <-time.After(killReapTimeout):
		return &TerminationError{Stage: "reap", Err: errors.New("process still running after kill")}
	}
}

// PID returns the operating system process ID of the service.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Address returns the address the service was launched with.
func (p *Process) Address() Address {
	return p.addr
}

// Output returns everything the service has written to stdout and stderr so
// far.
func (p *Process) Output() framework.CapturedOutput {
	return p.output.Output()
}

func exitDescription(waitErr error) string {
	if waitErr == nil {
		return "exit status 0"
	}
	return waitErr.Error()
}

// describeCommand renders the launch command the way it would be typed in a
// shell, for logs and error messages.
func describeCommand(binary string, args []string) string {
	quoted := []string{shellescape.Quote(binary)}
	for _, a := range args {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}
