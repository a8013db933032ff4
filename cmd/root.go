package cmd

import (
	"fmt"
	"os"

	"github.com/tonhe/zgraph/internal/logger"
)

const version = "zgraph v0.1.0"

// knownSubcommands is the set of CLI subcommands. Anything else is an item.
var knownSubcommands = map[string]bool{
	"dashboard": true,
	"palette":   true,
	"config":    true,
	"version":   true,
	"help":      true,
}

// IsSubcommand returns true if the argument is a known CLI subcommand.
func IsSubcommand(arg string) bool {
	return knownSubcommands[arg]
}

// Execute dispatches to the subcommand named by args[0], or builds a graph
// URL for the item named on the command line.
func Execute(args []string) {
	if len(args) == 0 || !IsSubcommand(args[0]) {
		graphCmd(args)
		return
	}

	switch args[0] {
	case "dashboard":
		dashboardCmd(args[1:])
	case "palette":
		paletteCmd()
	case "config":
		configCmd(args[1:])
	case "version":
		fmt.Println(version)
	case "help":
		printUsage()
	}
}

// setupLogging configures the process logger once, before any work is done.
func setupLogging(o logOptions) {
	if err := logger.Setup(o.loggerConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func fatal(err error) {
	logger.Debugf("fatal: %+v", err)
	_ = logger.Close()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`zgraph - chart URL builder for Zabbix dashboards

Usage:
  zgraph [OPTIONS] ITEM            Print the chart URL for ITEM
  zgraph dashboard NAME|FILE       Print chart URLs for every graph of a dashboard
  zgraph dashboard list            List dashboards in the config directory
  zgraph dashboard init NAME       Write a starter dashboard
  zgraph palette                   Show the series color palette
  zgraph config <cmd>              Manage configuration
  zgraph version                   Show version
  zgraph help                      Show this help

Graph Options:
  --period SECONDS                 Time span of the graph (default 3600)
  --width PIXELS, --height PIXELS  Graph size (default 600x600)
  --legend                         Draw the legend
  --show-triggers                  Draw trigger lines
  --graph-name NAME                Graph title (default: item name)
  --hostgroup NAME                 Only plot items of hosts in this hostgroup

Source Options:
  -c, --config PATH                Tool config file
  --credential-file PATH           Credential file (default ~/.zabbix)
  --credential-section NAME        Credential file section (default zabbix)
  --resolver BINARY                Inventory tool (default zabbix-inventory)
  --resolver-timeout DURATION      Give up on the inventory tool after DURATION
  --preview                        Print the item/color table to stderr

Logging Options:
  -v, --verbose                    Log progress
  -d, --debug                      Log debug details
  --syslog FACILITY                Also log to syslog
  --logfile PATH                   Also log to PATH

Config Commands:
  zgraph config path               Show config file path
  zgraph config show               Show effective configuration
  zgraph config init               Write a default config file`)
}
