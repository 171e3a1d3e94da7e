package rebinder

import (
	"math/rand/v2"
	"net"
	"strings"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// The only address allowed to be encoded twice. Used for deterministic testing.
var loopback = net.IPv4(127, 0, 0, 1)

// Coin picks between the primary (heads) and secondary address. It is called
// concurrently from many handlers.
type Coin interface {
	Heads() bool
}

// CoinFunc adapts a function to the Coin interface.
type CoinFunc func() bool

func (f CoinFunc) Heads() bool { return f() }

// The default coin uses the top-level math/rand/v2 functions which draw from
// per-thread state and need no locking.
type randomCoin struct{}

func (randomCoin) Heads() bool { return rand.IntN(2) == 0 }

// Answer an A query for a name inside the root domain.
func (s *Service) resolveA(q dns.Question, ci ClientInfo, name string) Outcome {
	log := logger(s.id, q, ci)
	labels := dns.SplitDomainName(name)

	// Let the advertised name servers resolve to our own address
	if nsIP := s.cfg.nsPublicIP; nsIP != nil && strings.HasPrefix(labels[0], "ns") {
		return answered(aRecord(q.Name, nsIP, nsTTL))
	}

	if name == s.cfg.rootDomain {
		return rejected(NoData, nil)
	}

	// Accepting exactly <primary>.<secondary>.<root domain>
	if len(labels) != len(s.cfg.rootLabels)+2 {
		log.Debug("unexpected number of labels")
		return rejected(Malformed, &DecodeError{Kind: MalformedLabelCount, Input: name})
	}
	for _, label := range labels[:2] {
		if !ValidLabel(label) {
			log.Debug("invalid address label")
			return rejected(Malformed, &DecodeError{Kind: MalformedHex, Input: label})
		}
	}
	primary, secondary, err := DecodeName(name)
	if err != nil {
		log.WithError(err).Debug("failed to decode")
		return rejected(Malformed, err)
	}

	log = log.WithFields(logrus.Fields{
		"primary":   primary,
		"secondary": secondary,
	})
	log.Debug("parsed targets")

	if primary.Equal(secondary) && !primary.Equal(loopback) {
		s.metrics.abuse.Add(1)
		log.Warn("primary and secondary are identical, possibly an abuse")
		return rejected(Refused, nil)
	}

	ip := secondary
	if s.coin.Heads() {
		ip = primary
	}
	return answered(aRecord(q.Name, ip, rebindTTL))
}
