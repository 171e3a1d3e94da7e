package rebinder

import (
	"fmt"
	"net"
)

// Listener is an interface for a DNS listener.
type Listener interface {
	Start() error
	Stop() error
	fmt.Stringer
}

// ClientInfo carries information about the client making the request.
type ClientInfo struct {
	SourceIP net.IP
	Listener string
}

func clientInfo(id string, addr net.Addr) ClientInfo {
	ci := ClientInfo{Listener: id}
	switch addr := addr.(type) {
	case *net.TCPAddr:
		ci.SourceIP = addr.IP
	case *net.UDPAddr:
		ci.SourceIP = addr.IP
	}
	return ci
}
