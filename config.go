package rebinder

import (
	"net"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// Default port to listen on.
const DefaultPort = 53

// ServerConfig holds the settings the server was started with. It is built
// once with NewServerConfig and never changed afterwards, so it can be shared
// by any number of concurrent handlers without locking.
type ServerConfig struct {
	rootDomain  string
	rootLabels  []string
	nsHostnames []string
	nsPublicIP  net.IP
	bindAddress net.IP
	bindPort    int
}

// ServerConfigOptions are the raw startup values used to build a ServerConfig.
type ServerConfigOptions struct {
	// Zone the server is authoritative for, for example "rebnd.icu".
	RootDomain string

	// Name servers returned for NS queries, in order. The first one is
	// used as primary in the SOA record.
	NSHostnames []string

	// Optional public address returned for A queries of names starting
	// with "ns".
	NSPublicAddress net.IP

	// Address and port to listen on. Default to 0.0.0.0:53.
	BindAddress net.IP
	BindPort    int
}

// NewServerConfig validates and normalizes the options.
func NewServerConfig(opt ServerConfigOptions) (*ServerConfig, error) {
	root := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(opt.RootDomain), "."))
	if root == "" {
		return nil, ConfigError{Field: "domain", Reason: "root domain is required"}
	}
	if _, ok := dns.IsDomainName(root); !ok {
		return nil, ConfigError{Field: "domain", Reason: "'" + root + "' is not a valid domain name"}
	}
	c := &ServerConfig{
		rootDomain: root,
		rootLabels: dns.SplitDomainName(root),
		bindPort:   opt.BindPort,
	}

	for _, h := range opt.NSHostnames {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if _, ok := dns.IsDomainName(h); !ok {
			return nil, ConfigError{Field: "ns-records", Reason: "'" + h + "' is not a valid hostname"}
		}
		c.nsHostnames = append(c.nsHostnames, dns.Fqdn(h))
	}

	if opt.NSPublicAddress != nil {
		ip4 := opt.NSPublicAddress.To4()
		if ip4 == nil {
			return nil, ConfigError{Field: "ns-public-ip", Reason: "must be an IPv4 address"}
		}
		c.nsPublicIP = ip4
	}

	c.bindAddress = opt.BindAddress
	if c.bindAddress == nil {
		c.bindAddress = net.IPv4zero
	}
	if c.bindPort == 0 {
		c.bindPort = DefaultPort
	}
	if c.bindPort < 1 || c.bindPort > 0xFFFF {
		return nil, ConfigError{Field: "port", Reason: "port not in range 1-65535"}
	}
	return c, nil
}

// RootDomain returns the lower-case zone name without trailing dot.
func (c *ServerConfig) RootDomain() string { return c.rootDomain }

// NSHostnames returns a copy of the configured name servers in FQDN form.
func (c *ServerConfig) NSHostnames() []string {
	return append([]string(nil), c.nsHostnames...)
}

// NSPublicAddress returns the address for ns* names, or nil.
func (c *ServerConfig) NSPublicAddress() net.IP {
	if c.nsPublicIP == nil {
		return nil
	}
	return append(net.IP(nil), c.nsPublicIP...)
}

// Addr returns the host:port to listen on.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.bindAddress.String(), strconv.Itoa(c.bindPort))
}
