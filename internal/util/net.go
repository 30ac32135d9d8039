package util

import (
	"fmt"
	"net"
)

// PortInUse reports whether something is already listening on host:port.
// Used to warn before mitmproxy fails to bind its listen address.
func PortInUse(host string, port int) bool {
	addr := fmt.Sprintf("%s:%d", host, port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return true
	}
	_ = l.Close()
	return false
}
