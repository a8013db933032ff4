// Package render draws palette and item assignment tables for the terminal.
package render

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tonhe/zgraph/internal/graph"
)

// swatches approximates how the chart endpoint draws each palette color.
var swatches = map[string]lipgloss.Color{
	"Red":           "#FF0000",
	"Dark%20Green":  "#006400",
	"Blue":          "#0000FF",
	"Dark%20Yellow": "#9B870C",
	"Cyan":          "#00FFFF",
	"Gray":          "#808080",
	"Dark%20Red":    "#8B0000",
	"Green":         "#00FF00",
	"Dark%20Blue":   "#00008B",
	"Yellow":        "#FFFF00",
	"Black":         "#000000",
}

// Styles holds the lipgloss styles used by the tables.
type Styles struct {
	Header lipgloss.Style
	Title  lipgloss.Style
	Index  lipgloss.Style
	Dim    lipgloss.Style

	r *lipgloss.Renderer
}

// NewStyles creates styles for output written to w. Colors are dropped
// when w is not a color terminal.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#268BD2")),
		Title:  r.NewStyle().Bold(true),
		Index:  r.NewStyle().Foreground(lipgloss.Color("#586E75")).Align(lipgloss.Right),
		Dim:    r.NewStyle().Foreground(lipgloss.Color("#586E75")),
		r:      r,
	}
}

// Swatch renders a small block in the given palette color.
func (s *Styles) Swatch(color string) string {
	c, ok := swatches[color]
	if !ok {
		return "  "
	}
	return s.r.NewStyle().Background(c).Render("  ")
}

// DisplayName returns the human readable form of a palette color.
func DisplayName(color string) string {
	name, err := url.PathUnescape(color)
	if err != nil {
		return color
	}
	return name
}

// Palette renders every palette color with its index and encoded name.
func Palette(s *Styles) string {
	var sb strings.Builder
	sb.WriteString(s.Header.Render(fmt.Sprintf("%-3s  %-2s  %-12s  %s", "#", "", "Color", "Encoded")))
	sb.WriteByte('\n')
	for i, c := range graph.Palette {
		fmt.Fprintf(&sb, "%s  %s  %-12s  %s\n",
			s.Index.Width(3).Render(fmt.Sprint(i)),
			s.Swatch(c),
			DisplayName(c),
			s.Dim.Render(c),
		)
	}
	return sb.String()
}

// Assignments renders the item to color table for one graph.
func Assignments(s *Styles, title string, assigned []graph.Assignment) string {
	var sb strings.Builder
	sb.WriteString(s.Title.Render(title))
	sb.WriteByte('\n')
	if len(assigned) == 0 {
		sb.WriteString(s.Dim.Render("no items matched"))
		sb.WriteByte('\n')
		return sb.String()
	}

	idWidth := len("Item ID")
	for _, a := range assigned {
		idWidth = max(idWidth, len(a.ItemID))
	}

	sb.WriteString(s.Header.Render(fmt.Sprintf("%-3s  %-*s  %-2s  %s", "#", idWidth, "Item ID", "", "Color")))
	sb.WriteByte('\n')
	for _, a := range assigned {
		fmt.Fprintf(&sb, "%s  %-*s  %s  %s\n",
			s.Index.Width(3).Render(fmt.Sprint(a.Index)),
			idWidth, a.ItemID,
			s.Swatch(a.Color),
			DisplayName(a.Color),
		)
	}
	return sb.String()
}
