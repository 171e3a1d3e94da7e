/*
Package rebinder implements an authoritative DNS server for DNS rebinding. The
server owns a root domain and answers A queries for names that carry two IPv4
addresses, hex-encoded in the first two labels:

	7f000001.c0a80101.rebnd.icu

Every answer picks one of the two addresses at random and comes with a TTL of
one second, so a client resolving the same name repeatedly sees the address
flip between 127.0.0.1 and 192.168.1.1.

Service

The Service resolves single questions. It checks the name belongs to the root
domain, answers A queries from the encoded pair, NS and SOA queries from the
configured name servers, and returns an empty answer for everything else.
Names the server doesn't like (foreign, malformed, identical addresses) are
answered with an empty NOERROR response as well, the reason is only visible in
logs and metrics.

Listeners

Listeners receive queries and pass the question to a Resolver, usually the
Service or a QueryLog wrapping it. The UDPListener handles datagrams
concurrently with a bounded number of workers, the DNSListener serves TCP.
*/
package rebinder
