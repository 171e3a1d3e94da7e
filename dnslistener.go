package rebinder

import (
	"io"
	"net"
	"sync"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tevino/abool"
)

// DNSListener is a standard DNS listener built on dns.Server, used for DNS
// over TCP. Queries are answered the same way as on the UDP listener.
type DNSListener struct {
	*dns.Server
	id string

	mu      sync.Mutex
	socket  io.Closer
	stopped *abool.AtomicBool
}

var _ Listener = &DNSListener{}

// NewDNSListener returns an instance of either a UDP or TCP DNS listener.
func NewDNSListener(id, addr, network string, resolver Resolver) *DNSListener {
	return &DNSListener{
		id: id,
		Server: &dns.Server{
			Addr:    addr,
			Net:     network,
			Handler: listenHandler(id, network, resolver),
		},
		stopped: abool.New(),
	}
}

// Start binds the socket and serves until Stop is called. A listener that
// was stopped before it started returns immediately without binding.
func (s *DNSListener) Start() error {
	s.mu.Lock()
	if s.stopped.IsSet() {
		s.mu.Unlock()
		return nil
	}
	if err := s.bind(); err != nil {
		s.mu.Unlock()
		return errors.Wrapf(err, "failed to listen on %s", s.Addr)
	}
	s.mu.Unlock()

	Log.WithFields(logrus.Fields{
		"id":       s.id,
		"protocol": s.Net,
		"addr":     s.Addr,
	}).Info("starting listener")
	err := s.ActivateAndServe()
	if s.stopped.IsSet() {
		return nil
	}
	return err
}

func (s *DNSListener) bind() error {
	switch s.Net {
	case "udp", "udp4", "udp6":
		pc, err := net.ListenPacket(s.Net, s.Addr)
		if err != nil {
			return err
		}
		s.PacketConn, s.socket = pc, pc
	default:
		l, err := net.Listen(s.Net, s.Addr)
		if err != nil {
			return err
		}
		s.Listener, s.socket = l, l
	}
	return nil
}

// Stop the listener. Safe to call before Start.
func (s *DNSListener) Stop() error {
	s.mu.Lock()
	s.stopped.Set()
	socket := s.socket
	s.mu.Unlock()
	if socket == nil {
		return nil
	}
	// Shutdown fails if the server isn't activated yet, closing the socket
	// makes a pending ActivateAndServe return instead.
	if err := s.Shutdown(); err != nil {
		_ = socket.Close()
	}
	return nil
}

func (s *DNSListener) String() string {
	return s.id
}

// DNS handler to answer all incoming requests with the given resolver.
func listenHandler(id, protocol string, r Resolver) dns.HandlerFunc {
	metrics := NewListenerMetrics("listener", id)
	return func(w dns.ResponseWriter, req *dns.Msg) {
		ci := clientInfo(id, w.RemoteAddr())
		log := exchangeLogger(id, protocol, ci).WithField("qname", qName(req))
		log.Debug("received query")
		metrics.query.Add(1)

		a := respond(r, req, ci)

		// Check the response actually fits if the query was sent over UDP. If not, respond with TC flag.
		if protocol == "udp" {
			a.Truncate(maxUDPSize(req))
		}

		if err := w.WriteMsg(a); err != nil {
			metrics.err.Add("write", 1)
			log.WithError(err).Error("failed to send response")
			return
		}
		metrics.response.Add(rCode(a), 1)
	}
}
