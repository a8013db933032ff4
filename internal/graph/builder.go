package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tonhe/zgraph/internal/logger"
)

// Query names the item to plot, optionally narrowed to one hostgroup.
type Query struct {
	Item      string
	Hostgroup string
}

// Resolver turns an item query into the identifiers of every matching item.
type Resolver interface {
	Resolve(ctx context.Context, q Query) ([]string, error)
}

// Assignment is one plotted series: the item at position Index in sorted
// order and the color it is drawn with.
type Assignment struct {
	Index  int
	ItemID string
	Color  string
}

// Builder produces chart URLs for a single dashboard.
type Builder struct {
	*logger.Logger

	BaseURL  string
	Resolver Resolver
}

// NewBuilder returns a Builder for the dashboard at baseURL.
func NewBuilder(baseURL string, r Resolver) *Builder {
	return &Builder{
		Logger:   logger.New().With("component", "graph"),
		BaseURL:  baseURL,
		Resolver: r,
	}
}

// Build resolves q and composes the chart URL. The assignments are returned
// alongside so callers can show which color belongs to which item.
func (b *Builder) Build(ctx context.Context, q Query, opts DisplayOptions) (string, []Assignment, error) {
	if q.Item == "" {
		return "", nil, fmt.Errorf("%w: item name is required", ErrInvalidOption)
	}
	if err := opts.Validate(); err != nil {
		return "", nil, err
	}

	ids, err := b.Resolver.Resolve(ctx, q)
	if err != nil {
		return "", nil, fmt.Errorf("resolve %q: %w", q.Item, err)
	}
	if len(ids) == 0 {
		b.Warningf("no items matched %q", q.Item)
	} else {
		b.Debugf("resolved %q to %d item(s)", q.Item, len(ids))
	}

	assigned := Assign(ids)
	return compose(b.BaseURL, q.Item, opts, assigned), assigned, nil
}

// Assign sorts ids in string order and pairs each with the next color of a
// fresh cycle. The input slice is not modified.
func Assign(ids []string) []Assignment {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	var cycle ColorCycle
	out := make([]Assignment, 0, len(sorted))
	for i, id := range sorted {
		out = append(out, Assignment{Index: i, ItemID: id, Color: cycle.Next()})
	}
	return out
}

// Compose builds the chart URL for already resolved item identifiers.
func Compose(baseURL, item string, opts DisplayOptions, ids []string) string {
	return compose(baseURL, item, opts, Assign(ids))
}

func compose(baseURL, item string, opts DisplayOptions, assigned []Assignment) string {
	var sb strings.Builder
	sb.WriteString(baseURL)
	if !strings.HasSuffix(baseURL, "/") {
		sb.WriteByte('/')
	}
	sb.WriteString(ChartEndpoint)
	sb.WriteByte('?')
	sb.WriteString(ChartParams(item, opts).Encode())

	// url.Values would escape the brackets, which the chart endpoint needs
	// literally.
	for _, a := range assigned {
		fmt.Fprintf(&sb, "&items[%d][itemid]=%s&items[%d][color]=%s", a.Index, a.ItemID, a.Index, a.Color)
	}
	return sb.String()
}
