package rebinder

import (
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestDNSListenerTCP(t *testing.T) {
	cfg, err := NewServerConfig(ServerConfigOptions{
		RootDomain:  "rebnd.icu",
		NSHostnames: []string{"ns1.rebnd.icu"},
	})
	require.NoError(t, err)
	svc := NewService("test-tcp", cfg, ServiceOptions{Coin: CoinFunc(func() bool { return false })})

	// Find a free port for the listener
	addr, err := getLnAddress()
	require.NoError(t, err)

	s := NewDNSListener("test-tcp", addr, "tcp", svc)
	started := make(chan struct{})
	s.NotifyStartedFunc = func() { close(started) }
	go func() {
		_ = s.Start()
	}()
	defer s.Stop()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not start")
	}

	c := dns.Client{Net: "tcp", Timeout: 2 * time.Second}
	q := new(dns.Msg)
	q.SetQuestion("7f000001.c0a80101.rebnd.icu.", dns.TypeA)
	a, _, err := c.Exchange(q, addr)
	require.NoError(t, err)
	require.Len(t, a.Answer, 1)
	require.Equal(t, "192.168.1.1", a.Answer[0].(*dns.A).A.String())
	require.False(t, a.RecursionAvailable)

	q.SetQuestion("rebnd.icu.", dns.TypeSOA)
	a, _, err = c.Exchange(q, addr)
	require.NoError(t, err)
	require.Len(t, a.Answer, 1)
	require.Equal(t, "ns1.rebnd.icu.", a.Answer[0].(*dns.SOA).Ns)

	// Foreign domain gets an empty success, not REFUSED or NXDOMAIN
	q.SetQuestion("example.com.", dns.TypeA)
	a, _, err = c.Exchange(q, addr)
	require.NoError(t, err)
	require.Equal(t, dns.RcodeSuccess, a.Rcode)
	require.Empty(t, a.Answer)
}

func TestDNSListenerStopBeforeStart(t *testing.T) {
	addr, err := getLnAddress()
	require.NoError(t, err)

	s := NewDNSListener("test-tcp-stop", addr, "tcp", new(TestResolver))
	require.NoError(t, s.Stop())

	done := make(chan error)
	go func() { done <- s.Start() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener still serving after Stop")
	}

	// Nothing was bound
	l, err := net.Listen("tcp", addr)
	require.NoError(t, err)
	l.Close()
}

func TestDNSListenerStop(t *testing.T) {
	addr, err := getLnAddress()
	require.NoError(t, err)

	s := NewDNSListener("test-tcp-stop2", addr, "tcp", new(TestResolver))
	started := make(chan struct{})
	s.NotifyStartedFunc = func() { close(started) }
	done := make(chan error)
	go func() { done <- s.Start() }()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not start")
	}

	require.NoError(t, s.Stop())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestDNSListenerBindFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	s := NewDNSListener("test-tcp-bind", l.Addr().String(), "tcp", new(TestResolver))
	require.Error(t, s.Start())
}

func getLnAddress() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	return l.Addr().String(), nil
}
