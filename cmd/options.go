package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/tonhe/zgraph/internal/config"
	"github.com/tonhe/zgraph/internal/graph"
	"github.com/tonhe/zgraph/internal/logger"
)

// logOptions are shared by every command that talks to the inventory tool.
type logOptions struct {
	Verbose bool   `short:"v" long:"verbose" description:"log progress"`
	Debug   bool   `short:"d" long:"debug" description:"log debug details, including the inventory command line"`
	Syslog  string `long:"syslog" value-name:"FACILITY" description:"also log to syslog with this facility"`
	Logfile string `long:"logfile" value-name:"PATH" description:"also append log records to this file"`
}

func (o logOptions) loggerConfig() logger.Config {
	return logger.Config{
		Verbose: o.Verbose,
		Debug:   o.Debug,
		Syslog:  o.Syslog,
		Logfile: o.Logfile,
	}
}

// sourceOptions select the credentials and inventory tool.
type sourceOptions struct {
	Config            string        `short:"c" long:"config" value-name:"PATH" description:"tool config file"`
	CredentialFile    string        `long:"credential-file" value-name:"PATH" description:"credential file"`
	CredentialSection string        `long:"credential-section" value-name:"NAME" description:"credential file section"`
	Resolver          string        `long:"resolver" value-name:"BINARY" description:"inventory tool used to resolve items"`
	ResolverTimeout   time.Duration `long:"resolver-timeout" value-name:"DURATION" description:"give up on the inventory tool after this long (0 waits forever)"`
	Preview           bool          `long:"preview" description:"print the item/color table to stderr"`
}

type graphOptions struct {
	Period       int    `long:"period" value-name:"SECONDS" description:"time span shown by the graph"`
	Width        int    `long:"width" value-name:"PIXELS" description:"graph width"`
	Height       int    `long:"height" value-name:"PIXELS" description:"graph height"`
	Legend       bool   `long:"legend" description:"draw the legend"`
	ShowTriggers bool   `long:"show-triggers" description:"draw trigger lines"`
	GraphName    string `long:"graph-name" value-name:"NAME" description:"graph title (default: item name)"`
	Hostgroup    string `long:"hostgroup" value-name:"NAME" description:"only plot items of hosts in this hostgroup"`

	Source sourceOptions `group:"Source Options"`
	Log    logOptions    `group:"Logging Options"`

	Args struct {
		Item string `positional-arg-name:"item" description:"item name to plot"`
	} `positional-args:"yes" required:"yes"`
}

func (o *graphOptions) displayOptions() graph.DisplayOptions {
	return graph.DisplayOptions{
		Period:       o.Period,
		Width:        o.Width,
		Height:       o.Height,
		Legend:       o.Legend,
		ShowTriggers: o.ShowTriggers,
		GraphName:    o.GraphName,
	}
}

func (o *graphOptions) query() graph.Query {
	return graph.Query{Item: o.Args.Item, Hostgroup: o.Hostgroup}
}

type dashboardOptions struct {
	Source sourceOptions `group:"Source Options"`
	Log    logOptions    `group:"Logging Options"`

	Args struct {
		Dashboard string `positional-arg-name:"dashboard" description:"dashboard name or TOML file"`
	} `positional-args:"yes" required:"yes"`

	// sectionFlag is set when --credential-section was given explicitly.
	sectionFlag bool
}

// seed copies tool config values into the source options so flags given
// on the command line override them.
func (o *sourceOptions) seed(cfg *config.Config) {
	o.CredentialFile = cfg.CredentialFile
	o.CredentialSection = cfg.CredentialSection
	o.Resolver = cfg.Resolver
	o.ResolverTimeout = cfg.ResolverTimeout
}

func (o *graphOptions) seed(cfg *config.Config) {
	o.Period = cfg.Period
	o.Width = cfg.Width
	o.Height = cfg.Height
	o.Source.seed(cfg)
}

// toolConfig loads the tool config named by -c/--config in args, or the
// default one. Only a missing default config falls back to defaults.
func toolConfig(args []string) (*config.Config, error) {
	var pre struct {
		Config string `short:"c" long:"config"`
	}
	// syntax errors are reported by the full parser
	_, _ = flags.NewParser(&pre, flags.IgnoreUnknown).ParseArgs(args)

	if pre.Config != "" {
		if _, err := os.Stat(pre.Config); err != nil {
			return nil, err
		}
		return config.LoadConfig(pre.Config)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// parseGraphArgs parses the graph command line on top of the tool config.
func parseGraphArgs(args []string) (*graphOptions, error) {
	cfg, err := toolConfig(args)
	if err != nil {
		return nil, err
	}

	opts := &graphOptions{}
	opts.seed(cfg)

	p := flags.NewParser(opts, flags.Default)
	p.Name = "zgraph"
	p.Usage = "[OPTIONS] item"
	rest, err := p.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if err := noExtraArgs(rest); err != nil {
		return nil, err
	}
	return opts, nil
}

func parseDashboardArgs(args []string) (*dashboardOptions, *config.Config, error) {
	cfg, err := toolConfig(args)
	if err != nil {
		return nil, nil, err
	}

	opts := &dashboardOptions{}
	opts.Source.seed(cfg)

	p := flags.NewParser(opts, flags.Default)
	p.Name = "zgraph dashboard"
	p.Usage = "[OPTIONS] dashboard"
	rest, err := p.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}
	if err := noExtraArgs(rest); err != nil {
		return nil, nil, err
	}
	if o := p.FindOptionByLongName("credential-section"); o != nil {
		opts.sectionFlag = o.IsSet()
	}
	return opts, cfg, nil
}

func noExtraArgs(rest []string) error {
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	return nil
}

// exitParse exits after a failed parse. go-flags has already printed its
// own errors and the help text.
func exitParse(err error) {
	if flags.WroteHelp(err) {
		os.Exit(0)
	}
	var ferr *flags.Error
	if !errors.As(err, &ferr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
