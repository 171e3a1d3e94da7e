package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	rebinder "github.com/rbndns/rebinder"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type config struct {
	Domain      string       `toml:"domain" yaml:"domain"`
	NSRecords   []string     `toml:"ns-records" yaml:"ns-records"`
	NSPublicIP  string       `toml:"ns-public-ip" yaml:"ns-public-ip"`
	InterfaceIP string       `toml:"interface-ip" yaml:"interface-ip"`
	Port        int          `toml:"port" yaml:"port"`
	Workers     int64        `toml:"workers" yaml:"workers"`
	TCP         bool         `toml:"tcp" yaml:"tcp"`
	Admin       string       `toml:"admin" yaml:"admin"`
	Syslog      syslogConfig `toml:"syslog" yaml:"syslog"`
	Log         logConfig    `toml:"log" yaml:"log"`
}

type syslogConfig struct {
	Enabled    bool   `toml:"enabled" yaml:"enabled"`
	Network    string `toml:"network" yaml:"network"`
	Address    string `toml:"address" yaml:"address"`
	Priority   int    `toml:"priority" yaml:"priority"`
	Tag        string `toml:"tag" yaml:"tag"`
	LogAnswers bool   `toml:"log-answers" yaml:"log-answers"`
}

type logConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

func defaultConfig() config {
	return config{
		InterfaceIP: "0.0.0.0",
		Port:        rebinder.DefaultPort,
		Workers:     rebinder.DefaultWorkers,
		Log: logConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// loadConfig reads a config file and returns the decoded structure. The
// format is picked by file extension, TOML unless it's .yaml or .yml.
func loadConfig(name string) (config, error) {
	c := defaultConfig()
	b, err := os.ReadFile(name)
	if err != nil {
		return c, errors.Wrap(err, "failed to read configuration")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &c)
	default:
		var md toml.MetaData
		md, err = toml.Decode(string(b), &c)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = errors.Errorf("unknown keys %v", undecoded)
			}
		}
	}
	if err != nil {
		return c, errors.Wrapf(err, "failed to parse %s", name)
	}
	return c, nil
}

// Command line flags take precedence over the config file, but only if they
// were actually given.
func (c *config) override(cmd *cobra.Command, opt options) {
	flags := cmd.Flags()
	set := func(name string) bool { return flags.Changed(name) }
	if set("domain") {
		c.Domain = opt.domain
	}
	if set("interface-ip") {
		c.InterfaceIP = opt.interfaceIP
	}
	if set("port") {
		c.Port = opt.port
	}
	if set("ns-records") {
		c.NSRecords = opt.nsRecords
	}
	if set("ns-public-ip") {
		c.NSPublicIP = opt.nsPublicIP
	}
	if set("workers") {
		c.Workers = opt.workers
	}
	if set("tcp") {
		c.TCP = opt.tcp
	}
	if set("admin") {
		c.Admin = opt.admin
	}
	if set("syslog") {
		c.Syslog.Enabled = opt.syslog
	}
	if set("log-level") {
		c.Log.Level = opt.logLevel
	}
	if set("log-format") {
		c.Log.Format = opt.logFormat
	}
}
