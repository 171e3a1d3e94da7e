package rebinder

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	name := EncodeName(net.ParseIP("127.0.0.1"), net.ParseIP("192.168.1.1"), "rebnd.icu")
	require.Equal(t, "7f000001.c0a80101.rebnd.icu", name)

	// Trailing dot of the domain is dropped
	name = EncodeName(net.IPv4(10, 0, 0, 255), net.IPv4(1, 2, 3, 4), "rebnd.icu.")
	require.Equal(t, "0a0000ff.01020304.rebnd.icu", name)
}

func TestDecodeName(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		secondary string
		kind      DecodeErrorKind
	}{
		{name: "7f000001.c0a80101.rebnd.icu", primary: "127.0.0.1", secondary: "192.168.1.1"},
		{name: "7F000001.C0A80101.rebnd.icu", primary: "127.0.0.1", secondary: "192.168.1.1"},
		{name: "ffffffff.00000000", primary: "255.255.255.255", secondary: "0.0.0.0"},
		{name: "7f000001", kind: MalformedLabelCount},
		{name: "", kind: MalformedLabelCount},
		{name: "7f00000g.c0a80101.rebnd.icu", kind: MalformedHex},
		{name: "7f000001.rebnd.icu", kind: MalformedHex},
		{name: "17f000001.c0a80101.rebnd.icu", kind: MalformedHex},
		{name: ".c0a80101.rebnd.icu", kind: MalformedHex},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, s, err := DecodeName(test.name)
			if test.kind != 0 {
				require.Error(t, err)
				require.ErrorIs(t, err, &DecodeError{Kind: test.kind})
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.primary, p.String())
			require.Equal(t, test.secondary, s.String())
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ips := []net.IP{
		net.IPv4(0, 0, 0, 0),
		net.IPv4(127, 0, 0, 1),
		net.IPv4(192, 168, 1, 1),
		net.IPv4(10, 255, 0, 16),
		net.IPv4(255, 255, 255, 255),
		net.IPv4(1, 2, 3, 4),
	}
	for _, p := range ips {
		for _, s := range ips {
			dp, ds, err := DecodeName(EncodeName(p, s, "rebnd.icu"))
			require.NoError(t, err)
			require.True(t, p.Equal(dp), "primary %s != %s", p, dp)
			require.True(t, s.Equal(ds), "secondary %s != %s", s, ds)
		}
	}
}

func TestValidLabel(t *testing.T) {
	require.True(t, ValidLabel("7f000001"))
	require.True(t, ValidLabel("C0A80101"))
	require.False(t, ValidLabel("7f00001"))
	require.False(t, ValidLabel("7f0000011"))
	require.False(t, ValidLabel("ns000001"))
	require.False(t, ValidLabel(""))
}
