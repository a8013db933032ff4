package dashboard

import "github.com/tonhe/zgraph/internal/graph"

// Dashboard is a named set of graphs loaded from TOML.
type Dashboard struct {
	Name              string  `toml:"name"`
	CredentialSection string  `toml:"credential_section,omitempty"`
	Period            int     `toml:"period,omitempty"`
	Width             int     `toml:"width,omitempty"`
	Height            int     `toml:"height,omitempty"`
	Graphs            []Graph `toml:"graphs"`
}

// Graph is a single chart. Zero period or size inherits the dashboard value.
type Graph struct {
	Name         string `toml:"name,omitempty"`
	Item         string `toml:"item"`
	Hostgroup    string `toml:"hostgroup,omitempty"`
	Period       int    `toml:"period,omitempty"`
	Width        int    `toml:"width,omitempty"`
	Height       int    `toml:"height,omitempty"`
	Legend       bool   `toml:"legend"`
	ShowTriggers bool   `toml:"show_triggers"`
}

// Query returns the item lookup for g.
func (g Graph) Query() graph.Query {
	return graph.Query{Item: g.Item, Hostgroup: g.Hostgroup}
}

// Options returns the display options for g.
func (g Graph) Options() graph.DisplayOptions {
	return graph.DisplayOptions{
		Period:       g.Period,
		Width:        g.Width,
		Height:       g.Height,
		Legend:       g.Legend,
		ShowTriggers: g.ShowTriggers,
		GraphName:    g.Name,
	}
}
