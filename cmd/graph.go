package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tonhe/zgraph/internal/config"
	"github.com/tonhe/zgraph/internal/credential"
	"github.com/tonhe/zgraph/internal/graph"
	"github.com/tonhe/zgraph/internal/logger"
	"github.com/tonhe/zgraph/internal/render"
	"github.com/tonhe/zgraph/internal/resolver"
)

// newResolver builds the item resolver; tests swap it for a fake.
var newResolver = func(src sourceOptions, credPath string) graph.Resolver {
	r := resolver.NewExec(src.Resolver, credPath, src.CredentialSection)
	r.Timeout = src.ResolverTimeout
	return r
}

func graphCmd(args []string) {
	opts, err := parseGraphArgs(args)
	if err != nil {
		exitParse(err)
	}

	setupLogging(opts.Log)

	if err := runGraph(context.Background(), opts, os.Stdout, os.Stderr); err != nil {
		fatal(err)
	}
	_ = logger.Close()
}

// runGraph prints the chart URL for one item.
func runGraph(ctx context.Context, opts *graphOptions, stdout, stderr io.Writer) error {
	creds, credPath, err := loadCredentials(opts.Source)
	if err != nil {
		return err
	}

	b := graph.NewBuilder(creds.URL(), newResolver(opts.Source, credPath))

	q := opts.query()
	logger.Infof("building graph for %q (hostgroup %q) on %s", q.Item, q.Hostgroup, creds.URL())

	url, assigned, err := b.Build(ctx, q, opts.displayOptions())
	if err != nil {
		return err
	}

	if opts.Source.Preview {
		title := opts.displayOptions().Name(q.Item)
		fmt.Fprint(stderr, render.Assignments(render.NewStyles(stderr), title, assigned))
	}
	fmt.Fprintln(stdout, url)
	return nil
}

// loadCredentials expands and reads the credential file. It runs before any
// item is resolved so a bad section never reaches the inventory tool.
func loadCredentials(src sourceOptions) (credential.Credentials, string, error) {
	path, err := config.ExpandPath(src.CredentialFile)
	if err != nil {
		return credential.Credentials{}, "", fmt.Errorf("credential file: %w", err)
	}
	creds, err := credential.Load(path, src.CredentialSection)
	if err != nil {
		return credential.Credentials{}, "", err
	}
	logger.Debugf("loaded credentials from %s [%s]", path, creds.Section())
	return creds, path, nil
}
