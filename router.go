package rebinder

import (
	"strings"

	"github.com/miekg/dns"
)

// Returns the query name lower-cased and without the trailing root label.
// Names that aren't fully qualified are not routable.
func normalizeName(name string) (string, bool) {
	if !strings.HasSuffix(name, ".") {
		return "", false
	}
	return strings.ToLower(strings.TrimSuffix(name, ".")), true
}

// Returns true if name is the root domain or one of its subdomains. Labels
// are compared one by one so evilrebnd.icu is not part of rebnd.icu.
func (c *ServerConfig) owns(name string) bool {
	labels := dns.SplitDomainName(name)
	if len(labels) < len(c.rootLabels) {
		return false
	}
	offset := len(labels) - len(c.rootLabels)
	for i, l := range c.rootLabels {
		if labels[offset+i] != l {
			return false
		}
	}
	return true
}

// Route a question to the handler for its type.
func (s *Service) route(q dns.Question, ci ClientInfo) Outcome {
	log := logger(s.id, q, ci)
	name, ok := normalizeName(q.Name)
	if !ok || name == "" {
		log.Debug("query name is not fully qualified")
		return rejected(Malformed, nil)
	}
	if !s.cfg.owns(name) {
		log.Debug("not authoritative for query name")
		return rejected(NotAuthoritative, nil)
	}

	switch q.Qtype {
	case dns.TypeA:
		return s.resolveA(q, ci, name)
	case dns.TypeNS:
		return s.resolveNS(name)
	case dns.TypeSOA:
		return s.resolveSOA(q, ci, name)
	default:
		// AAAA, ANY, AXFR, CNAME and everything else get an empty answer
		return rejected(NoData, nil)
	}
}
