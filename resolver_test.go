package rebinder

import (
	"sync"

	"github.com/miekg/dns"
)

// TestResolver is a configurable resolver used for testing. It counts the
// number of times it was called.
type TestResolver struct {
	ResolveFunc func(dns.Question, ClientInfo) Outcome

	mu       sync.Mutex
	hitCount int
}

func (r *TestResolver) Resolve(q dns.Question, ci ClientInfo) Outcome {
	r.mu.Lock()
	r.hitCount++
	r.mu.Unlock()
	if r.ResolveFunc != nil {
		return r.ResolveFunc(q, ci)
	}
	return answered(aRecord(q.Name, loopback, rebindTTL))
}

func (r *TestResolver) HitCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hitCount
}

func (r *TestResolver) String() string {
	return "TestResolver()"
}
