package graph

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

const (
	DefaultPeriod = 3600
	DefaultWidth  = 600
	DefaultHeight = 600

	// ChartEndpoint is appended to the dashboard base URL.
	ChartEndpoint = "chart3.php"
)

var ErrInvalidOption = errors.New("invalid display option")

// chartDefaults are sent with every graph: a normal line graph with a fixed
// 0-100 y axis and the work period shaded.
var chartDefaults = map[string]string{
	"graphtype":      "0",
	"percent_left":   "0.00",
	"percent_right":  "0.00",
	"ymin_type":      "1",
	"ymax_type":      "1",
	"yaxismin":       "0.0000",
	"yaxismax":       "100.0000",
	"showworkperiod": "1",
}

// DisplayOptions controls how the chart is drawn.
type DisplayOptions struct {
	Period       int // seconds
	Width        int
	Height       int
	Legend       bool
	ShowTriggers bool
	GraphName    string // defaults to the item name
}

// DefaultDisplayOptions returns a one hour, 600x600 chart without legend
// or triggers.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Period: DefaultPeriod,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Validate checks that period and dimensions are positive.
func (o DisplayOptions) Validate() error {
	switch {
	case o.Period <= 0:
		return fmt.Errorf("%w: period must be positive, got %d", ErrInvalidOption, o.Period)
	case o.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidOption, o.Width)
	case o.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidOption, o.Height)
	}
	return nil
}

// Name returns the graph title, falling back to item.
func (o DisplayOptions) Name(item string) string {
	if o.GraphName != "" {
		return o.GraphName
	}
	return item
}

// ChartParams merges the fixed chart defaults with the display options.
func ChartParams(item string, opts DisplayOptions) url.Values {
	v := make(url.Values, len(chartDefaults)+6)
	for k, val := range chartDefaults {
		v.Set(k, val)
	}
	v.Set("period", strconv.Itoa(opts.Period))
	v.Set("width", strconv.Itoa(opts.Width))
	v.Set("height", strconv.Itoa(opts.Height))
	v.Set("legend", flag(opts.Legend))
	v.Set("showtriggers", flag(opts.ShowTriggers))
	v.Set("name", opts.Name(item))
	return v
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
