// Package fakeservice lets a test binary stand in for the real MIDI service.
// Tests re-execute their own binary with a "-fake.mode=..." argument; when
// RunIfRequested sees that argument it acts out the requested service behavior
// instead of running tests. This is the same re-exec technique used by the
// standard library's os/exec tests, without needing a separate binary to be
// built.
package fakeservice

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"
)

const modeArgPrefix = "-fake.mode="

// Modes understood by RunIfRequested. Each one models a service behavior the
// harness has to cope with.
const (
	// ModeAnnounce prints the readiness line and waits for an interrupt.
	ModeAnnounce = "announce"
	// ModeServe actually listens on the requested address, prints the
	// readiness line, and serves 200 on the MIDI ports endpoint.
	ModeServe = "serve"
	// ModeAnnounceAndExit prints the readiness line and exits right away,
	// like a service that crashes the moment it comes up.
	ModeAnnounceAndExit = "announce-exit"
	// ModeSilent prints nothing and waits for an interrupt.
	ModeSilent = "silent"
	// ModeExit prints an unrelated line and exits with a failure status.
	ModeExit = "exit"
	// ModeWrongAddress announces readiness on an address other than the one
	// it was launched with.
	ModeWrongAddress = "wrong-address"
	// ModeIgnoreInterrupt announces readiness but never reacts to an
	// interrupt, forcing the harness to kill it.
	ModeIgnoreInterrupt = "ignore-interrupt"
)

// RunIfRequested checks whether the current process was re-executed as a fake
// service. If so it runs the requested behavior and never returns; otherwise
// it does nothing. Call it from TestMain before m.Run.
func RunIfRequested() {
	mode := ""
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, modeArgPrefix) {
			mode = strings.TrimPrefix(arg, modeArgPrefix)
		}
	}
	if mode == "" {
		return
	}
	host, port := parseAddress()
	run(mode, host, port)
	os.Exit(0)
}

func run(mode string, host string, port int) {
	hostPort := net.JoinHostPort(host, strconv.Itoa(port))
	switch mode {
	case ModeAnnounce:
		fmt.Printf("listening on http://%s\n", hostPort)
		awaitInterrupt()
	case ModeServe:
		serve(hostPort)
	case ModeAnnounceAndExit:
		fmt.Printf("listening on http://%s\n", hostPort)
	case ModeSilent:
		awaitInterrupt()
	case ModeExit:
		fmt.Println("fatal: could not open MIDI sequencer")
		os.Exit(1)
	case ModeWrongAddress:
		fmt.Printf("listening on http://%s\n", net.JoinHostPort(host, strconv.Itoa(port+1)))
		awaitInterrupt()
	case ModeIgnoreInterrupt:
		signal.Ignore(os.Interrupt)
		fmt.Printf("listening on http://%s\n", hostPort)
		time.Sleep(10 * time.Minute)
	default:
		fmt.Fprintf(os.Stderr, "unknown fake service mode %q\n", mode)
		os.Exit(2)
	}
}

func serve(hostPort string) {
	listener, err := net.Listen("tcp", hostPort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "listen failed: %s\n", err)
		os.Exit(1)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/midi/ports", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<ol><li>Midi Through Port-0</li></ol>")
	})
	server := &http.Server{Handler: mux}
	go func() {
		_ = server.Serve(listener)
	}()

	// The listener is open, so this is honest: connections are accepted now.
	fmt.Printf("listening on http://%s\n", hostPort)
	awaitInterrupt()
}

func awaitInterrupt() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	<-ch
}

// parseAddress recovers the --ip and --port flags the harness launched us
// with. They are positional pairs, the way the real service takes them.
func parseAddress() (string, int) {
	host := "127.0.0.1"
	port := 0
	args := os.Args[1:]
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "--ip":
			host = args[i+1]
		case "--port":
			port, _ = strconv.Atoi(args[i+1])
		}
	}
	return host, port
}
