package rebinder

import (
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestRespondHeader(t *testing.T) {
	r := new(TestResolver)
	for _, rd := range []bool{true, false} {
		q := new(dns.Msg)
		q.SetQuestion("7f000001.c0a80101.rebnd.icu.", dns.TypeA)
		q.Id = 4242
		q.RecursionDesired = rd

		a := respond(r, q, ClientInfo{})
		require.Equal(t, uint16(4242), a.Id)
		require.True(t, a.Response)
		require.Equal(t, rd, a.RecursionDesired)
		require.False(t, a.RecursionAvailable)
		require.Equal(t, dns.RcodeSuccess, a.Rcode)
		require.Equal(t, q.Question, a.Question)
		require.Len(t, a.Answer, 1)
	}
}

func TestRespondQuestionCount(t *testing.T) {
	r := new(TestResolver)

	// No question
	q := new(dns.Msg)
	q.Id = 7
	q.RecursionDesired = true
	a := respond(r, q, ClientInfo{})
	require.Equal(t, uint16(7), a.Id)
	require.True(t, a.Response)
	require.True(t, a.RecursionDesired)
	require.False(t, a.RecursionAvailable)
	require.Empty(t, a.Question)
	require.Empty(t, a.Answer)

	// Two questions
	q = new(dns.Msg)
	q.Id = 8
	q.Question = []dns.Question{
		{Name: "a.rebnd.icu.", Qtype: dns.TypeA, Qclass: dns.ClassINET},
		{Name: "b.rebnd.icu.", Qtype: dns.TypeA, Qclass: dns.ClassINET},
	}
	a = respond(r, q, ClientInfo{})
	require.Equal(t, uint16(8), a.Id)
	require.False(t, a.RecursionDesired)
	require.Empty(t, a.Question)
	require.Empty(t, a.Answer)

	// The resolver must not have been called
	require.Equal(t, 0, r.HitCount())
}

func TestRespondWithoutAnswer(t *testing.T) {
	// Every kind of rejection looks the same on the wire
	for _, kind := range []OutcomeKind{NoData, Refused, NotAuthoritative, Malformed, Misconfigured} {
		r := &TestResolver{
			ResolveFunc: func(q dns.Question, ci ClientInfo) Outcome {
				return rejected(kind, nil)
			},
		}
		q := new(dns.Msg)
		q.SetQuestion("example.com.", dns.TypeA)
		a := respond(r, q, ClientInfo{})
		require.Equal(t, dns.RcodeSuccess, a.Rcode, kind.String())
		require.Empty(t, a.Answer)
		require.Len(t, a.Question, 1)
	}
}
