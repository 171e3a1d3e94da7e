package rebinder

import "github.com/miekg/dns"

// OutcomeKind tells why a question was or wasn't answered. Only Answered
// carries records; every other kind is sent to the client as the same empty
// NOERROR response so scanners can't tell them apart.
type OutcomeKind int

const (
	// Answered carries one or more records.
	Answered OutcomeKind = iota
	// NoData means nothing matched, for example an unsupported type.
	NoData
	// Refused is used for identical address pairs.
	Refused
	// NotAuthoritative means the name is outside the root domain.
	NotAuthoritative
	// Malformed is used for names that don't follow the label grammar.
	Malformed
	// Misconfigured means the server config can't answer the question.
	Misconfigured
)

var outcomeNames = map[OutcomeKind]string{
	Answered:         "answered",
	NoData:           "nodata",
	Refused:          "refused",
	NotAuthoritative: "notauth",
	Malformed:        "malformed",
	Misconfigured:    "misconfigured",
}

func (k OutcomeKind) String() string {
	if s, ok := outcomeNames[k]; ok {
		return s
	}
	return "unknown"
}

// Outcome is the result of resolving one question.
type Outcome struct {
	Kind   OutcomeKind
	Answer []dns.RR
	Err    error // Set for Malformed and Misconfigured
}

func answered(rrs ...dns.RR) Outcome {
	return Outcome{Kind: Answered, Answer: rrs}
}

func rejected(kind OutcomeKind, err error) Outcome {
	return Outcome{Kind: kind, Err: err}
}
