package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	rebinder "github.com/rbndns/rebinder"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type options struct {
	configFile  string
	domain      string
	interfaceIP string
	port        int
	nsRecords   []string
	nsPublicIP  string
	workers     int64
	tcp         bool
	admin       string
	syslog      bool
	logLevel    string
	logFormat   string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opt options
	cmd := &cobra.Command{
		Use:   "rebinder",
		Short: "DNS rebinding server",
		Long: `DNS rebinding server.

Authoritative DNS server for one root domain. A queries for
names of the form <primary>.<secondary>.<domain>, with both
addresses hex-encoded, are answered with either one of the
two addresses, picked at random, with a TTL of 1 second.

Use the encode command to build such a name.
`,
		Example: `  rebinder -d rebnd.icu -n ns1.rebnd.icu,ns2.rebnd.icu --ns-public-ip 49.12.76.13
  rebinder -c rebinder.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(cmd, opt)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opt.domain, "domain", "d", "", "Root domain")

	flags := cmd.Flags()
	flags.StringVarP(&opt.configFile, "config", "c", "", "Config file, TOML or YAML")
	flags.StringVarP(&opt.interfaceIP, "interface-ip", "i", "0.0.0.0", "Network interface")
	flags.IntVarP(&opt.port, "port", "p", rebinder.DefaultPort, "Port to listen on")
	flags.StringSliceVarP(&opt.nsRecords, "ns-records", "n", nil, "NS records (SOA record also points here)")
	flags.StringVar(&opt.nsPublicIP, "ns-public-ip", "", "Public IP address of the name servers")
	flags.Int64Var(&opt.workers, "workers", rebinder.DefaultWorkers, "Maximum number of queries handled concurrently")
	flags.BoolVar(&opt.tcp, "tcp", false, "Listen on TCP as well")
	flags.StringVar(&opt.admin, "admin", "", "Address of the HTTP metrics listener, disabled if empty")
	flags.BoolVar(&opt.syslog, "syslog", false, "Log queries to the local syslog server")
	flags.StringVar(&opt.logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.StringVar(&opt.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(encodeCmd(&opt.domain))
	return cmd
}

func start(cmd *cobra.Command, opt options) error {
	c := defaultConfig()
	if opt.configFile != "" {
		var err error
		c, err = loadConfig(opt.configFile)
		if err != nil {
			return err
		}
	}
	c.override(cmd, opt)

	if err := setupLogging(c.Log); err != nil {
		return err
	}

	serverOpt := rebinder.ServerConfigOptions{
		RootDomain:  c.Domain,
		NSHostnames: c.NSRecords,
		BindPort:    c.Port,
	}
	if c.InterfaceIP != "" {
		if serverOpt.BindAddress = net.ParseIP(c.InterfaceIP); serverOpt.BindAddress == nil {
			return errors.Errorf("invalid interface ip '%s'", c.InterfaceIP)
		}
	}
	if c.NSPublicIP != "" {
		if serverOpt.NSPublicAddress = net.ParseIP(c.NSPublicIP); serverOpt.NSPublicAddress == nil {
			return errors.Errorf("invalid ns public ip '%s'", c.NSPublicIP)
		}
	}
	cfg, err := rebinder.NewServerConfig(serverOpt)
	if err != nil {
		return err
	}

	rebinder.Log.WithFields(logrus.Fields{
		"domain":     cfg.RootDomain(),
		"addr":       cfg.Addr(),
		"ns-records": cfg.NSHostnames(),
	}).Info("starting")

	var resolver rebinder.Resolver = rebinder.NewService("rebinder", cfg, rebinder.ServiceOptions{})
	if c.Syslog.Enabled {
		resolver, err = rebinder.NewQueryLog("syslog", resolver, rebinder.QueryLogOptions{
			Network:    c.Syslog.Network,
			Address:    c.Syslog.Address,
			Priority:   c.Syslog.Priority,
			Tag:        c.Syslog.Tag,
			LogAnswers: c.Syslog.LogAnswers,
		})
		if err != nil {
			return err
		}
	}

	listeners := []rebinder.Listener{
		rebinder.NewUDPListener("udp", cfg.Addr(), rebinder.UDPListenerOptions{Workers: c.Workers}, resolver),
	}
	if c.TCP {
		listeners = append(listeners, rebinder.NewDNSListener("tcp", cfg.Addr(), "tcp", resolver))
	}
	if c.Admin != "" {
		listeners = append(listeners, rebinder.NewAdminListener("admin", c.Admin))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	for _, l := range listeners {
		l := l
		g.Go(func() error {
			if err := l.Start(); err != nil {
				return errors.Wrapf(err, "listener '%s' failed", l)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		for _, l := range listeners {
			if err := l.Stop(); err != nil {
				rebinder.Log.WithField("id", l.String()).WithError(err).Debug("failed to stop listener")
			}
		}
		return nil
	})
	err = g.Wait()
	if err != nil {
		rebinder.Log.WithError(err).Error("shutting down")
	}
	return err
}

func setupLogging(c logConfig) error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	rebinder.Log.SetLevel(level)
	switch c.Format {
	case "json":
		rebinder.Log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		rebinder.Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return errors.Errorf("unsupported log format '%s'", c.Format)
	}
	return nil
}
