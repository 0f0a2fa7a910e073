// Package servicedef describes the externally agreed contract between the
// harness and the MIDI service: the command-line flags the service accepts,
// the output line it prints once it is accepting connections, and the one HTTP
// endpoint the harness verifies.
//
// Changes to the service that break any of these break the harness, so they
// are collected here rather than spread through the harness code.
package servicedef

import (
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	FlagIP   = "--ip"
	FlagPort = "--port"

	// PortsPath is the endpoint used for the verification request. The service
	// responds with a listing of the MIDI ports available on its host; the
	// harness only requires a 200 status, not any particular body.
	PortsPath = "/midi/ports"
)

// LaunchArgs returns the arguments that make the service listen on the given
// host and port.
func LaunchArgs(host string, port int) []string {
	return []string{FlagIP, host, FlagPort, strconv.Itoa(port)}
}

// PortsResponse is the JSON form of the port listing that the service can
// return from PortsPath. The harness never requires it, since older builds
// return an HTML listing instead, but when the body does parse as JSON it is
// decoded so the debug output can say more than a byte count.
type PortsResponse struct {
	Ports []MidiPort `json:"ports"`
}

// MidiPort describes one entry in a PortsResponse. Only the name is always
// present; what else the service reports depends on its MIDI backend.
type MidiPort struct {
	Name   string                 `json:"name"`
	Client ldvalue.OptionalString `json:"client,omitempty"`
	Number ldvalue.OptionalInt    `json:"number,omitempty"`
}

// ParsePortsResponse decodes body as a PortsResponse if it is JSON of that
// shape. It reports false for any other body, such as the HTML listing.
func ParsePortsResponse(body []byte) (PortsResponse, bool) {
	var resp PortsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return PortsResponse{}, false
	}
	return resp, true
}

// ReadyMatcher returns a predicate that reports whether a line of the
// service's output announces readiness on the given "host:port" address.
//
// The service prints a line containing its listen address once it is accepting
// connections. Matching is deliberately address-specific: a bare marker such
// as "listening" could also be emitted by a stale process bound to some other
// port, which must not be mistaken for readiness of this one.
func ReadyMatcher(hostPort string) func(line string) bool {
	return func(line string) bool {
		return strings.Contains(line, hostPort)
	}
}
