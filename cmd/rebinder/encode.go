package main

import (
	"fmt"
	"net"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	rebinder "github.com/rbndns/rebinder"
	"github.com/spf13/cobra"
)

func encodeCmd(domain *string) *cobra.Command {
	var primary, secondary string
	cmd := &cobra.Command{
		Use:     "encode",
		Short:   "Encode two IPv4 addresses into a name for the domain",
		Example: `  rebinder -d rebnd.icu encode -p 127.0.0.1 -s 192.168.1.1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if *domain == "" {
				return errors.New("root domain is required")
			}
			p, err := parseIPv4(primary)
			if err != nil {
				return errors.Wrap(err, "primary")
			}
			s, err := parseIPv4(secondary)
			if err != nil {
				return errors.Wrap(err, "secondary")
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Domain: %s, Primary: %s, Secondary: %s\n", *domain, p, s)
			fmt.Fprintf(w, "Encoded: %s\n", color.GreenString(rebinder.EncodeName(p, s, *domain)))
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&primary, "primary", "p", "", "primary IP address to encode")
	cmd.Flags().StringVarP(&secondary, "secondary", "s", "", "secondary IP address to encode")
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("secondary")
	return cmd
}

func parseIPv4(s string) (net.IP, error) {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return nil, errors.Errorf("'%s' is not an IPv4 address", s)
	}
	return ip.To4(), nil
}
