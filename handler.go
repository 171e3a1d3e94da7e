package rebinder

import (
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// Build the response to a query. The header always echoes the ID and RD flag,
// never offers recursion and is NOERROR, no matter what the outcome is. A
// query that doesn't have exactly one question gets a reply without question
// or answers.
func respond(r Resolver, req *dns.Msg, ci ClientInfo) *dns.Msg {
	a := new(dns.Msg)
	a.Id = req.Id
	a.Response = true
	a.Opcode = req.Opcode
	a.RecursionDesired = req.RecursionDesired
	a.RecursionAvailable = false
	a.Rcode = dns.RcodeSuccess

	if len(req.Question) != 1 {
		return a
	}
	q := req.Question[0]
	a.Question = []dns.Question{q}

	o := r.Resolve(q, ci)
	log := logger(ci.Listener, q, ci).WithField("outcome", o.Kind.String())
	if o.Kind == Answered {
		a.Answer = o.Answer
		log.WithField("answer", o.Answer).Info("responding")
	} else {
		log.Debug("responding without answer")
	}
	return a
}

// Logger for an exchange before the query has been parsed.
func exchangeLogger(id, protocol string, ci ClientInfo) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"id":       id,
		"client":   ci.SourceIP,
		"protocol": protocol,
	})
}
