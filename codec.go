package rebinder

import (
	"encoding/binary"
	"encoding/hex"
	"net"
	"strconv"
	"strings"
)

// Number of hex digits used to encode one IPv4 address in a label.
const labelWidth = 2 * net.IPv4len

// EncodeLabel returns the lower-case hex label for an IPv4 address,
// for example 7f000001 for 127.0.0.1. Returns an empty string if ip
// isn't an IPv4 address.
func EncodeLabel(ip net.IP) string {
	ip4 := ip.To4()
	if ip4 == nil {
		return ""
	}
	return hex.EncodeToString(ip4)
}

// EncodeName builds the rebinding name <primary>.<secondary>.<domain> for two
// IPv4 addresses.
func EncodeName(primary, secondary net.IP, domain string) string {
	domain = strings.TrimSuffix(domain, ".")
	return EncodeLabel(primary) + "." + EncodeLabel(secondary) + "." + domain
}

// DecodeName extracts the address pair from the first two labels of name.
// Labels are parsed as base-16 32-bit values in network byte order and are
// case-insensitive. The label width is not enforced here, use ValidLabel for
// that.
func DecodeName(name string) (net.IP, net.IP, error) {
	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return nil, nil, &DecodeError{Kind: MalformedLabelCount, Input: name}
	}
	primary, err := decodeLabel(labels[0])
	if err != nil {
		return nil, nil, err
	}
	secondary, err := decodeLabel(labels[1])
	if err != nil {
		return nil, nil, err
	}
	return primary, secondary, nil
}

// ValidLabel returns true if label is exactly one encoded IPv4 address.
func ValidLabel(label string) bool {
	if len(label) != labelWidth {
		return false
	}
	_, err := hex.DecodeString(label)
	return err == nil
}

func decodeLabel(label string) (net.IP, error) {
	v, err := strconv.ParseUint(label, 16, 32)
	if err != nil {
		return nil, &DecodeError{Kind: MalformedHex, Input: label}
	}
	ip := make(net.IP, net.IPv4len)
	binary.BigEndian.PutUint32(ip, uint32(v))
	return ip, nil
}
