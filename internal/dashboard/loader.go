package dashboard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tonhe/zgraph/internal/graph"
)

var ErrNoItem = errors.New("graph has no item")

// LoadDashboard reads a TOML file at path and returns a populated Dashboard.
// Missing period and size fall back to defaults, graph values fall back to
// the dashboard's, and graph names fall back to the item name.
func LoadDashboard(path string, defaults graph.DisplayOptions) (*Dashboard, error) {
	var dash Dashboard
	if _, err := toml.DecodeFile(path, &dash); err != nil {
		return nil, err
	}
	if dash.Name == "" {
		dash.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if dash.Period == 0 {
		dash.Period = defaults.Period
	}
	if dash.Width == 0 {
		dash.Width = defaults.Width
	}
	if dash.Height == 0 {
		dash.Height = defaults.Height
	}
	for i := range dash.Graphs {
		g := &dash.Graphs[i]
		if g.Item == "" {
			return nil, fmt.Errorf("%s: graph %d: %w", path, i+1, ErrNoItem)
		}
		if g.Name == "" {
			g.Name = g.Item
		}
		if g.Period == 0 {
			g.Period = dash.Period
		}
		if g.Width == 0 {
			g.Width = dash.Width
		}
		if g.Height == 0 {
			g.Height = dash.Height
		}
	}
	return &dash, nil
}

// SaveDashboard writes a Dashboard to a TOML file at path.
func SaveDashboard(dash *Dashboard, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(dash)
}

// ListDashboards returns the base names (without .toml extension) of all TOML
// files found in dir.
func ListDashboards(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".toml") {
			name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			names = append(names, name)
		}
	}
	return names, nil
}

// Resolve maps a dashboard argument to a file. Anything that looks like a
// path is used as is; otherwise name.toml is looked up in dir.
func Resolve(dir, arg string) string {
	if strings.ContainsRune(arg, os.PathSeparator) || strings.HasSuffix(arg, ".toml") {
		return arg
	}
	return filepath.Join(dir, arg+".toml")
}
