package rebinder

import (
	"strconv"

	"github.com/miekg/dns"
)

// Return the query name from a DNS query.
func qName(q *dns.Msg) string {
	if len(q.Question) == 0 {
		return ""
	}
	return q.Question[0].Name
}

// Return the result code name from a DNS response.
func rCode(r *dns.Msg) string {
	if result, ok := dns.RcodeToString[r.Rcode]; ok {
		return result
	}
	return strconv.Itoa(r.Rcode)
}

// Maximum response size for a UDP query, taking EDNS0 into account.
func maxUDPSize(q *dns.Msg) int {
	maxSize := dns.MinMsgSize
	if edns0 := q.IsEdns0(); edns0 != nil && int(edns0.UDPSize()) > maxSize {
		maxSize = int(edns0.UDPSize())
	}
	return maxSize
}
