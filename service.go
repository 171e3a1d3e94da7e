package rebinder

import (
	"github.com/miekg/dns"
)

// Service resolves questions for the rebinding zone. It holds no state other
// than the immutable configuration and can be used by any number of listeners
// concurrently.
type Service struct {
	id      string
	cfg     *ServerConfig
	coin    Coin
	metrics *ServiceMetrics
}

var _ Resolver = &Service{}

// ServiceOptions contains settings for the resolution service.
type ServiceOptions struct {
	// Source of the primary/secondary decision. Defaults to a fair
	// random coin.
	Coin Coin
}

// NewService returns a new resolution service for the given configuration.
func NewService(id string, cfg *ServerConfig, opt ServiceOptions) *Service {
	if opt.Coin == nil {
		opt.Coin = randomCoin{}
	}
	return &Service{
		id:      id,
		cfg:     cfg,
		coin:    opt.Coin,
		metrics: NewServiceMetrics(id),
	}
}

// Resolve a single question. Answers are only set if the outcome is Answered.
func (s *Service) Resolve(q dns.Question, ci ClientInfo) Outcome {
	o := s.route(q, ci)
	s.metrics.outcome.Add(o.Kind.String(), 1)
	return o
}

func (s *Service) resolveNS(name string) Outcome {
	if len(s.cfg.nsHostnames) == 0 {
		return rejected(NoData, nil)
	}
	return answered(nsRecords(dns.Fqdn(name), s.cfg.nsHostnames)...)
}

func (s *Service) resolveSOA(q dns.Question, ci ClientInfo, name string) Outcome {
	if len(s.cfg.nsHostnames) == 0 {
		logger(s.id, q, ci).WithError(ErrMissingNSForSOA).Error("configuration fault, unable to build SOA record")
		return rejected(Misconfigured, ErrMissingNSForSOA)
	}
	return answered(soaRecord(dns.Fqdn(name), s.cfg.nsHostnames[0]))
}

func (s *Service) String() string {
	return s.id
}
