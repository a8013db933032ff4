package graph

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	ids   []string
	err   error
	calls []Query
}

func (f *fakeResolver) Resolve(_ context.Context, q Query) ([]string, error) {
	f.calls = append(f.calls, q)
	return f.ids, f.err
}

var itemFragment = regexp.MustCompile(`&items\[(\d+)\]\[itemid\]=([^&]*)&items\[(\d+)\]\[color\]=([^&]*)`)

// splitURL returns the chart parameters and the raw item fragments.
func splitURL(t *testing.T, raw string) (url.Values, [][]string) {
	t.Helper()
	base, query, ok := strings.Cut(raw, "?")
	require.True(t, ok, raw)
	require.True(t, strings.HasSuffix(base, "/"+ChartEndpoint), base)

	params := query
	if i := strings.Index(query, "&items["); i >= 0 {
		params = query[:i]
	}
	values, err := url.ParseQuery(params)
	require.NoError(t, err)

	return values, itemFragment.FindAllStringSubmatch(query, -1)
}

func TestBuildDefaults(t *testing.T) {
	r := &fakeResolver{ids: []string{"23663"}}
	b := NewBuilder("http://zabbix.example.com/", r)

	raw, assigned, err := b.Build(context.Background(), Query{Item: "cpu_load"}, DefaultDisplayOptions())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(raw, "http://zabbix.example.com/chart3.php?"), raw)

	params, items := splitURL(t, raw)
	assert.Equal(t, "cpu_load", params.Get("name"))
	assert.Equal(t, "0", params.Get("legend"))
	assert.Equal(t, "0", params.Get("showtriggers"))
	assert.Equal(t, "3600", params.Get("period"))
	assert.Equal(t, "600", params.Get("width"))
	assert.Equal(t, "600", params.Get("height"))
	for k, v := range chartDefaults {
		assert.Equal(t, v, params.Get(k), k)
	}

	require.Len(t, items, 1)
	assert.Equal(t, []string{items[0][0], "0", "23663", "0", "Red"}, items[0])
	assert.Equal(t, []Assignment{{Index: 0, ItemID: "23663", Color: "Red"}}, assigned)

	assert.Equal(t, []Query{{Item: "cpu_load"}}, r.calls)
}

func TestBuildDisplayOptions(t *testing.T) {
	r := &fakeResolver{ids: []string{"1"}}
	b := NewBuilder("http://zabbix.example.com/", r)

	opts := DisplayOptions{Period: 86400, Width: 900, Height: 200, Legend: true, ShowTriggers: true, GraphName: "CPU load (all hosts)"}
	raw, _, err := b.Build(context.Background(), Query{Item: "cpu_load", Hostgroup: "Linux servers"}, opts)
	require.NoError(t, err)

	params, _ := splitURL(t, raw)
	assert.Equal(t, "CPU load (all hosts)", params.Get("name"))
	assert.Equal(t, "1", params.Get("legend"))
	assert.Equal(t, "1", params.Get("showtriggers"))
	assert.Equal(t, "86400", params.Get("period"))
	assert.Equal(t, "900", params.Get("width"))
	assert.Equal(t, "200", params.Get("height"))
	assert.Contains(t, raw, "name=CPU+load+%28all+hosts%29")

	assert.Equal(t, "Linux servers", r.calls[0].Hostgroup)
}

func TestBuildEmptyResult(t *testing.T) {
	b := NewBuilder("http://zabbix.example.com/", &fakeResolver{})

	raw, assigned, err := b.Build(context.Background(), Query{Item: "cpu_load"}, DefaultDisplayOptions())
	require.NoError(t, err)

	assert.Empty(t, assigned)
	assert.NotContains(t, raw, "items[")

	params, items := splitURL(t, raw)
	assert.Empty(t, items)
	for k := range chartDefaults {
		assert.NotEmpty(t, params.Get(k), k)
	}
}

func TestBuildResolverError(t *testing.T) {
	boom := errors.New("inventory exited with status 1")
	b := NewBuilder("http://zabbix.example.com/", &fakeResolver{err: boom})

	_, _, err := b.Build(context.Background(), Query{Item: "cpu_load"}, DefaultDisplayOptions())
	assert.ErrorIs(t, err, boom)
}

func TestBuildInvalidOptions(t *testing.T) {
	r := &fakeResolver{ids: []string{"1"}}
	b := NewBuilder("http://zabbix.example.com/", r)

	tests := map[string]DisplayOptions{
		"zero period":    {Period: 0, Width: 600, Height: 600},
		"negative width": {Period: 3600, Width: -1, Height: 600},
		"zero height":    {Period: 3600, Width: 600, Height: 0},
	}
	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := b.Build(context.Background(), Query{Item: "cpu_load"}, opts)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}

	_, _, err := b.Build(context.Background(), Query{}, DefaultDisplayOptions())
	assert.ErrorIs(t, err, ErrInvalidOption)

	assert.Empty(t, r.calls, "resolver must not run for invalid input")
}

func TestAssignSortsLexically(t *testing.T) {
	input := []string{"9", "105", "12"}
	assigned := Assign(input)

	require.Len(t, assigned, 3)
	assert.Equal(t, "105", assigned[0].ItemID)
	assert.Equal(t, "12", assigned[1].ItemID)
	assert.Equal(t, "9", assigned[2].ItemID)

	assert.Equal(t, []string{"9", "105", "12"}, input, "input must not be reordered")

	already := Assign([]string{"105", "12", "9"})
	assert.Equal(t, []string{"105", "12", "9"}, []string{already[0].ItemID, already[1].ItemID, already[2].ItemID})
}

func TestAssignColorsWrap(t *testing.T) {
	ids := make([]string, 25)
	for i := range ids {
		ids[i] = fmt.Sprintf("%03d", i)
	}

	assigned := Assign(ids)
	require.Len(t, assigned, 25)
	for k, a := range assigned {
		assert.Equal(t, k, a.Index)
		assert.Equal(t, Palette[k%len(Palette)], a.Color, "series %d", k)
	}
	assert.Equal(t, "Red", assigned[11].Color)
	assert.Equal(t, "Dark%20Green", assigned[12].Color)
}

func TestComposeItemFragments(t *testing.T) {
	ids := []string{"30", "10", "20"}
	raw := Compose("http://zabbix.example.com", "net.if.in", DefaultDisplayOptions(), ids)

	assert.True(t, strings.HasPrefix(raw, "http://zabbix.example.com/chart3.php?"), raw)
	assert.True(t, strings.HasSuffix(raw,
		"&items[0][itemid]=10&items[0][color]=Red"+
			"&items[1][itemid]=20&items[1][color]=Dark%20Green"+
			"&items[2][itemid]=30&items[2][color]=Blue"), raw)

	_, items := splitURL(t, raw)
	require.Len(t, items, 3)
	for i, m := range items {
		assert.Equal(t, fmt.Sprint(i), m[1])
		assert.Equal(t, m[1], m[3])
	}
}

func TestBuildRestartsColorCycle(t *testing.T) {
	b := NewBuilder("http://zabbix.example.com/", &fakeResolver{ids: []string{"1", "2"}})

	first, _, err := b.Build(context.Background(), Query{Item: "a"}, DefaultDisplayOptions())
	require.NoError(t, err)
	second, _, err := b.Build(context.Background(), Query{Item: "a"}, DefaultDisplayOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
