package rebinder

import (
	"net"

	"github.com/miekg/dns"
)

// TTLs and SOA timers of synthesized records.
const (
	rebindTTL = 1 // Forces resolvers to come back on every lookup
	nsTTL     = 600
	soaTTL    = 600

	soaSerial  = 1
	soaRefresh = 86400
	soaRetry   = 7200
	soaExpire  = 4000000
	soaMinTTL  = 600
)

func aRecord(owner string, ip net.IP, ttl uint32) *dns.A {
	return &dns.A{
		Hdr: dns.RR_Header{
			Name:   owner,
			Rrtype: dns.TypeA,
			Class:  dns.ClassINET,
			Ttl:    ttl,
		},
		A: ip.To4(),
	}
}

// One NS record per hostname, in the given order.
func nsRecords(owner string, hostnames []string) []dns.RR {
	rrs := make([]dns.RR, 0, len(hostnames))
	for _, h := range hostnames {
		rrs = append(rrs, &dns.NS{
			Hdr: dns.RR_Header{
				Name:   owner,
				Rrtype: dns.TypeNS,
				Class:  dns.ClassINET,
				Ttl:    nsTTL,
			},
			Ns: dns.Fqdn(h),
		})
	}
	return rrs
}

// SOA record with primary as the master server and an empty (root) mailbox.
func soaRecord(owner, primary string) *dns.SOA {
	return &dns.SOA{
		Hdr: dns.RR_Header{
			Name:   owner,
			Rrtype: dns.TypeSOA,
			Class:  dns.ClassINET,
			Ttl:    soaTTL,
		},
		Ns:      dns.Fqdn(primary),
		Mbox:    ".",
		Serial:  soaSerial,
		Refresh: soaRefresh,
		Retry:   soaRetry,
		Expire:  soaExpire,
		Minttl:  soaMinTTL,
	}
}
