package service

import (
	"net"
	"strconv"
)

// Address is the host and port the service is told to listen on. The same
// value drives the launch arguments, the readiness match, and the verification
// URL, so that the three can never drift apart.
type Address struct {
	Host string
	Port int
}

// HostPort returns the address in "host:port" form. This is also the substring
// the service is expected to print once it is accepting connections.
func (a Address) HostPort() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// BaseURL returns the root URL of the service's HTTP interface.
func (a Address) BaseURL() string {
	return "http://" + a.HostPort()
}

func (a Address) String() string {
	return a.HostPort()
}
