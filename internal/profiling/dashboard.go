package profiling

import (
	"fmt"
	"sort"
	"strings"
)

// Widget is one tile on a dashboard
type Widget struct {
	Type       string `json:"type"`
	DataSource string `json:"dataSource"`
}

// DataSource is a sample backing one or more widgets. Cells may be any JSON
// scalar.
type DataSource struct {
	Cols []string `json:"cols"`
	Rows [][]any  `json:"rows"`
}

// DashboardInsights describes widgets and the data behind them
func DashboardInsights(widgets []Widget, sources map[string]DataSource) string {
	used := make(map[string]bool)
	types := make(map[string]int)
	var unknown []string
	for _, w := range widgets {
		t := w.Type
		if t == "" {
			t = "unknown"
		}
		types[t]++
		if w.DataSource == "" {
			continue
		}
		if _, ok := sources[w.DataSource]; ok {
			used[w.DataSource] = true
		} else {
			unknown = append(unknown, w.DataSource)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dashboard has %d widgets across %d data sources.", len(widgets), len(used))

	if len(types) > 0 {
		names := sortedKeys(types)
		counts := make([]string, len(names))
		for i, name := range names {
			counts[i] = fmt.Sprintf("%s=%d", name, types[name])
		}
		fmt.Fprintf(&b, " Widget types: %s.", strings.Join(counts, ", "))
	}

	for _, name := range sortedKeys(used) {
		src := sources[name]
		fmt.Fprintf(&b, " Source %s: %s.", name, Summarize(name, src.Cols, StringRows(src.Rows)).Insights())
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		fmt.Fprintf(&b, " Widgets reference unknown sources: %s.", strings.Join(dedupeSorted(unknown), ", "))
	}
	return b.String()
}

// StringRows renders JSON cells as text; null becomes the empty string.
func StringRows(rows [][]any) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				cells[j] = fmt.Sprint(cell)
			}
		}
		out[i] = cells
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupeSorted(values []string) []string {
	out := values[:0]
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			out = append(out, v)
		}
	}
	return out
}
