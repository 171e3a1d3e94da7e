package rebinder

import (
	"fmt"

	"github.com/miekg/dns"
)

// Resolver answers a single DNS question. Implementations must be safe for
// concurrent use.
type Resolver interface {
	Resolve(dns.Question, ClientInfo) Outcome
	fmt.Stringer
}
