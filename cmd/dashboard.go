package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tonhe/zgraph/internal/config"
	"github.com/tonhe/zgraph/internal/dashboard"
	"github.com/tonhe/zgraph/internal/graph"
	"github.com/tonhe/zgraph/internal/logger"
	"github.com/tonhe/zgraph/internal/render"
)

func dashboardCmd(args []string) {
	if len(args) > 0 {
		switch args[0] {
		case "list":
			dashboardList()
			return
		case "init":
			if len(args) != 2 {
				fmt.Fprintln(os.Stderr, "Usage: zgraph dashboard init NAME")
				os.Exit(1)
			}
			path, err := dashboardInit(args[1])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote dashboard %q to %s.\n", args[1], path)
			return
		}
	}

	opts, cfg, err := parseDashboardArgs(args)
	if err != nil {
		exitParse(err)
	}

	setupLogging(opts.Log)

	if err := runDashboard(context.Background(), opts, cfg, os.Stdout, os.Stderr); err != nil {
		fatal(err)
	}
	_ = logger.Close()
}

// runDashboard prints one chart URL per graph of the dashboard, in file
// order.
func runDashboard(ctx context.Context, opts *dashboardOptions, cfg *config.Config, stdout, stderr io.Writer) error {
	dir, err := config.GetDashboardsDir()
	if err != nil {
		return err
	}
	path := dashboard.Resolve(dir, opts.Args.Dashboard)

	defaults := graph.DisplayOptions{Period: cfg.Period, Width: cfg.Width, Height: cfg.Height}
	dash, err := dashboard.LoadDashboard(path, defaults)
	if err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}

	src := opts.Source
	if dash.CredentialSection != "" && !opts.sectionFlag {
		src.CredentialSection = dash.CredentialSection
	}

	creds, credPath, err := loadCredentials(src)
	if err != nil {
		return err
	}
	b := graph.NewBuilder(creds.URL(), newResolver(src, credPath))

	logger.Infof("dashboard %q: %d graph(s)", dash.Name, len(dash.Graphs))

	var styles *render.Styles
	if src.Preview {
		styles = render.NewStyles(stderr)
	}

	for _, g := range dash.Graphs {
		url, assigned, err := b.Build(ctx, g.Query(), g.Options())
		if err != nil {
			return fmt.Errorf("graph %q: %w", g.Name, err)
		}
		if styles != nil {
			fmt.Fprint(stderr, render.Assignments(styles, g.Name, assigned))
		}
		fmt.Fprintln(stdout, url)
	}
	return nil
}

func dashboardList() {
	dir, err := config.GetDashboardsDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	names, err := dashboard.ListDashboards(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error listing dashboards: %v\n", err)
		os.Exit(1)
	}

	if len(names) == 0 {
		fmt.Printf("No dashboards in %s.\n", dir)
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

// dashboardInit writes a starter dashboard called name into the dashboards
// directory. An existing dashboard is never overwritten.
func dashboardInit(name string) (string, error) {
	if err := config.EnsureDirs(); err != nil {
		return "", err
	}
	dir, err := config.GetDashboardsDir()
	if err != nil {
		return "", err
	}
	path := dashboard.Resolve(dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("dashboard already exists at %s", path)
	}

	dash := &dashboard.Dashboard{
		Name: name,
		Graphs: []dashboard.Graph{
			{Name: "CPU load", Item: "system.cpu.load", Legend: true},
			{Name: "Free memory", Item: "vm.memory.size[available]"},
		},
	}
	if err := dashboard.SaveDashboard(dash, path); err != nil {
		return "", fmt.Errorf("save dashboard: %w", err)
	}
	return path, nil
}
