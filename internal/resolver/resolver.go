// Package resolver looks up item identifiers by running the external
// inventory tool.
package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tonhe/zgraph/internal/graph"
	"github.com/tonhe/zgraph/internal/logger"
)

// DefaultBinary is the inventory tool looked up in PATH.
const DefaultBinary = "zabbix-inventory"

const stderrLimit = 8 << 10 // 8 KiB

var ErrUnparseable = errors.New("unparseable inventory output")

// ResolverError reports a failed or misbehaving inventory tool run.
type ResolverError struct {
	Cmd    string
	Stderr string
	Err    error
}

func (e *ResolverError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
	}
	return fmt.Sprintf("%s: %v (stderr: %s)", e.Cmd, e.Err, e.Stderr)
}

func (e *ResolverError) Unwrap() error { return e.Err }

// Exec resolves items through the inventory tool, authenticating with the
// same credential file and section zgraph reads.
type Exec struct {
	*logger.Logger

	Binary         string
	CredentialFile string
	Section        string
	// Timeout bounds a single run. Zero waits for the tool to finish.
	Timeout time.Duration

	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewExec returns an Exec running binary, or DefaultBinary if empty.
func NewExec(binary, credentialFile, section string) *Exec {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Exec{
		Logger:         logger.New().With("component", "resolver"),
		Binary:         binary,
		CredentialFile: credentialFile,
		Section:        section,
		command:        exec.CommandContext,
	}
}

// Args returns the inventory tool arguments for q.
func (e *Exec) Args(q graph.Query) []string {
	args := []string{"--filter", "itemid", "-s", e.Section, "-c", e.CredentialFile}
	if q.Hostgroup != "" {
		return append(args, "get_hostgroup_item", q.Item, q.Hostgroup)
	}
	return append(args, "get_item", q.Item)
}

// Resolve runs the inventory tool and returns the distinct item
// identifiers it printed, in output order.
func (e *Exec) Resolve(ctx context.Context, q graph.Query) ([]string, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	command := e.command
	if command == nil {
		command = exec.CommandContext
	}
	cmd := command(ctx, e.Binary, e.Args(q)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.Debugf("executing '%s'", cmd)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, &ResolverError{Cmd: cmd.String(), Stderr: trimStderr(stderr.String()), Err: err}
	}

	ids, err := ParseIDs(out)
	if err != nil {
		return nil, &ResolverError{Cmd: cmd.String(), Stderr: trimStderr(stderr.String()), Err: err}
	}
	return ids, nil
}

// ParseIDs splits inventory output on whitespace. Every token must be a
// decimal item id; duplicates are dropped.
func ParseIDs(out []byte) ([]string, error) {
	fields := strings.Fields(string(out))
	seen := make(map[string]bool, len(fields))
	ids := make([]string, 0, len(fields))

	for _, f := range fields {
		if !isDigits(f) {
			return nil, fmt.Errorf("%w: token %q is not an item id", ErrUnparseable, f)
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		ids = append(ids, f)
	}
	return ids, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrLimit {
		n := stderrLimit
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n] + "… (truncated)"
	}
	return s
}
