package rebinder

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tevino/abool"
	"golang.org/x/sync/semaphore"
)

// Default number of exchanges that can be in flight on a UDP listener.
const DefaultWorkers = 256

// Bounds of the pause after a failed read, doubled on every consecutive failure.
const (
	minReadBackoff = 5 * time.Millisecond
	maxReadBackoff = time.Second
)

// UDPListener serves plain DNS over UDP from a single socket. Every datagram
// is handled in its own goroutine, the number of in-flight exchanges is bounded
// by the Workers option. The read loop only waits for a free worker, never for
// a particular exchange to complete.
type UDPListener struct {
	id       string
	addr     string
	resolver Resolver
	opt      UDPListenerOptions

	sem     *semaphore.Weighted
	buffers sync.Pool
	stopped *abool.AtomicBool
	metrics *ListenerMetrics

	mu     sync.Mutex
	conn   net.PacketConn
	cancel context.CancelFunc
}

var _ Listener = &UDPListener{}

// UDPListenerOptions contains settings for a UDP listener.
type UDPListenerOptions struct {
	// Maximum number of exchanges handled concurrently. Defaults to 256.
	Workers int64

	// Size of the receive buffer, defaults to dns.DefaultMsgSize.
	BufferSize int
}

// NewUDPListener returns a UDP listener that sends all questions to resolver.
func NewUDPListener(id, addr string, opt UDPListenerOptions, resolver Resolver) *UDPListener {
	if opt.Workers <= 0 {
		opt.Workers = DefaultWorkers
	}
	if opt.BufferSize <= 0 {
		opt.BufferSize = dns.DefaultMsgSize
	}
	l := &UDPListener{
		id:       id,
		addr:     addr,
		resolver: resolver,
		opt:      opt,
		sem:      semaphore.NewWeighted(opt.Workers),
		stopped:  abool.New(),
		metrics:  NewListenerMetrics("listener", id),
	}
	l.buffers.New = func() interface{} {
		b := make([]byte, opt.BufferSize)
		return &b
	}
	return l
}

// Start binds the socket and serves until Stop is called. Failure to bind is
// returned immediately.
func (l *UDPListener) Start() error {
	conn, err := net.ListenPacket("udp", l.addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", l.addr)
	}
	return l.Serve(conn)
}

// Serve handles queries on an already bound socket until Stop is called.
func (l *UDPListener) Serve(conn net.PacketConn) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.mu.Lock()
	l.conn = conn
	l.cancel = cancel
	l.mu.Unlock()
	if l.stopped.IsSet() {
		conn.Close()
		return nil
	}

	Log.WithFields(logrus.Fields{
		"id":       l.id,
		"protocol": "udp",
		"addr":     conn.LocalAddr().String(),
		"workers":  l.opt.Workers,
	}).Info("starting listener")

	var backoff time.Duration
	for {
		if !l.sem.TryAcquire(1) {
			l.metrics.busy.Add(1)
			if err := l.sem.Acquire(ctx, 1); err != nil {
				return nil // stopped
			}
		}
		buf := l.buffers.Get().(*[]byte)
		n, addr, err := conn.ReadFrom(*buf)
		if err != nil {
			l.buffers.Put(buf)
			l.sem.Release(1)
			if l.stopped.IsSet() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return errors.Wrap(err, "udp listener socket closed")
			}
			l.metrics.err.Add("read", 1)
			if backoff == 0 {
				backoff = minReadBackoff
			} else if backoff *= 2; backoff > maxReadBackoff {
				backoff = maxReadBackoff
			}
			Log.WithFields(logrus.Fields{"id": l.id, "protocol": "udp", "retry-in": backoff}).WithError(err).Error("failed to receive datagram")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil
			}
			continue
		}
		backoff = 0
		go l.exchange(conn, buf, n, addr)
	}
}

// Handle one datagram, from parsing the query to sending the response. Any
// failure only affects this exchange.
func (l *UDPListener) exchange(conn net.PacketConn, buf *[]byte, n int, addr net.Addr) {
	ci := clientInfo(l.id, addr)
	log := exchangeLogger(l.id, "udp", ci)
	defer l.sem.Release(1)
	defer l.buffers.Put(buf)
	defer func() {
		if r := recover(); r != nil {
			l.metrics.err.Add("panic", 1)
			log.WithField("panic", r).Error("exchange failed")
		}
	}()

	l.metrics.query.Add(1)
	req := new(dns.Msg)
	if err := req.Unpack((*buf)[:n]); err != nil {
		l.metrics.err.Add("unpack", 1)
		log.WithError(err).Error("failed to parse query")
		return
	}
	log.WithField("qname", qName(req)).Debug("received query")

	a := respond(l.resolver, req, ci)
	a.Truncate(maxUDPSize(req))

	out, err := a.Pack()
	if err != nil {
		l.metrics.err.Add("pack", 1)
		log.WithError(err).Error("failed to encode response")
		return
	}
	if _, err := conn.WriteTo(out, addr); err != nil {
		l.metrics.err.Add("write", 1)
		log.WithError(err).Error("failed to send response")
		return
	}
	l.metrics.response.Add(rCode(a), 1)
}

// Stop closes the socket and waits for in-flight exchanges to complete.
func (l *UDPListener) Stop() error {
	l.stopped.Set()
	l.mu.Lock()
	conn, cancel := l.conn, l.cancel
	l.mu.Unlock()
	var err error
	if cancel != nil {
		cancel()
	}
	if conn != nil {
		err = conn.Close()
	}

	// Holding every worker slot means no exchange is still running
	_ = l.sem.Acquire(context.Background(), l.opt.Workers)
	l.sem.Release(l.opt.Workers)
	return err
}

func (l *UDPListener) String() string {
	return l.id
}
