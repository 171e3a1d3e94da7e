package rebinder

import (
	"fmt"
	"io"
	"strings"

	syslog "github.com/RackSec/srslog"
	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

// QueryLog passes every question to a resolver unmodified and logs the
// question, outcome and answers to syslog.
type QueryLog struct {
	id       string
	writer   io.Writer
	resolver Resolver
	opt      QueryLogOptions
}

var _ Resolver = &QueryLog{}

// QueryLogOptions contains settings for the syslog query log.
type QueryLogOptions struct {
	// "udp", "tcp", "unix". Empty connects to the local syslog server.
	Network string

	// Remote address, defaults to local syslog server
	Address string

	// Priority value as per https://pkg.go.dev/log/syslog#Priority
	Priority int

	// Syslog tag
	Tag string

	// Log every answer record as well
	LogAnswers bool
}

// NewQueryLog returns a resolver that logs queries to syslog.
func NewQueryLog(id string, resolver Resolver, opt QueryLogOptions) (*QueryLog, error) {
	if opt.Tag == "" {
		opt.Tag = "rebinder"
	}
	writer, err := syslog.Dial(opt.Network, opt.Address, syslog.Priority(opt.Priority), opt.Tag)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize syslog")
	}
	return newQueryLog(id, resolver, writer, opt), nil
}

func newQueryLog(id string, resolver Resolver, w io.Writer, opt QueryLogOptions) *QueryLog {
	return &QueryLog{
		id:       id,
		writer:   w,
		resolver: resolver,
		opt:      opt,
	}
}

// Resolve the question with the wrapped resolver and log the result.
func (r *QueryLog) Resolve(q dns.Question, ci ClientInfo) Outcome {
	o := r.resolver.Resolve(q, ci)

	r.write(q, ci, fmt.Sprintf("id=%s type=query client=%s qtype=%s qname=%s outcome=%s",
		r.id, ci.SourceIP, dns.Type(q.Qtype), q.Name, o.Kind))
	if r.opt.LogAnswers {
		for i, rr := range o.Answer {
			s := strings.ReplaceAll(rr.String(), "\t", " ")
			r.write(q, ci, fmt.Sprintf("id=%s type=answer answer-num=%d/%d qname=%s answer=%q",
				r.id, i+1, len(o.Answer), q.Name, s))
		}
	}
	return o
}

func (r *QueryLog) write(q dns.Question, ci ClientInfo, msg string) {
	if _, err := r.writer.Write([]byte(msg)); err != nil {
		logger(r.id, q, ci).WithError(err).Error("failed to send syslog")
	}
}

func (r *QueryLog) String() string {
	return r.id
}
