package profiling

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ColumnKind tells numeric columns from categorical ones
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
	KindEmpty       ColumnKind = "empty"
)

// NumericSummary holds summary statistics of the parseable values of a column
type NumericSummary struct {
	Mean   float64    `json:"mean"`
	StdDev float64    `json:"sd"`
	Min    float64    `json:"min"`
	Max    float64    `json:"max"`
	Median float64    `json:"median"`
	CI95   [2]float64 `json:"ci95"`
}

// CategoricalSummary holds value counts of a text column
type CategoricalSummary struct {
	Unique   int    `json:"unique"`
	Top      string `json:"top"`
	TopCount int    `json:"top_count"`
}

// ColumnSummary describes one column of a sample
type ColumnSummary struct {
	Name        string              `json:"name"`
	Kind        ColumnKind          `json:"kind"`
	Count       int                 `json:"n"`
	Missing     int                 `json:"missing"`
	NonNumeric  int                 `json:"non_numeric,omitempty"`
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Categorical *CategoricalSummary `json:"categorical,omitempty"`
}

// DatasetSummary describes a sample of rows
type DatasetSummary struct {
	Name    string          `json:"name"`
	Rows    int             `json:"rows"`
	Columns []ColumnSummary `json:"columns"`
}

// Summarize profiles a sample. Cells are positional against cols; short rows
// count as missing cells and extra cells are ignored.
func Summarize(name string, cols []string, rows [][]string) *DatasetSummary {
	summary := &DatasetSummary{
		Name:    name,
		Rows:    len(rows),
		Columns: make([]ColumnSummary, 0, len(cols)),
	}
	for i, col := range cols {
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			if i < len(row) {
				values = append(values, row[i])
			} else {
				values = append(values, "")
			}
		}
		summary.Columns = append(summary.Columns, summarizeColumn(col, values))
	}
	return summary
}

func summarizeColumn(name string, values []string) ColumnSummary {
	col := ColumnSummary{Name: name}

	var numbers []float64
	var texts []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			col.Missing++
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			numbers = append(numbers, f)
		} else {
			texts = append(texts, v)
		}
	}
	col.Count = len(numbers) + len(texts)

	switch {
	case col.Count == 0:
		col.Kind = KindEmpty
	case len(numbers) > 0:
		col.Kind = KindNumeric
		col.NonNumeric = len(texts)
		col.Numeric = summarizeNumbers(numbers)
	default:
		col.Kind = KindCategorical
		col.Categorical = summarizeTexts(texts)
	}
	return col
}

func summarizeNumbers(data []float64) *NumericSummary {
	mean, _ := stats.Mean(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)

	s := &NumericSummary{Mean: mean, Min: min, Max: max, Median: median, CI95: [2]float64{mean, mean}}
	if len(data) < 2 {
		return s
	}

	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return s
	}
	s.StdDev = sd
	s.CI95 = meanConfidenceInterval(mean, sd, len(data), 0.95)
	return s
}

// meanConfidenceInterval returns the two-sided Student t interval of the mean.
func meanConfidenceInterval(mean, sd float64, n int, level float64) [2]float64 {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	margin := t.Quantile(1-(1-level)/2) * sd / math.Sqrt(float64(n))
	return [2]float64{mean - margin, mean + margin}
}

func summarizeTexts(texts []string) *CategoricalSummary {
	counts := make(map[string]int)
	for _, t := range texts {
		counts[t]++
	}

	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	// Highest count first, ties broken alphabetically.
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] > counts[values[j]]
		}
		return values[i] < values[j]
	})

	return &CategoricalSummary{Unique: len(counts), Top: values[0], TopCount: counts[values[0]]}
}

// Insights renders the summary as one line of text
func (s *DatasetSummary) Insights() string {
	parts := []string{fmt.Sprintf("Rows=%d", s.Rows), fmt.Sprintf("Columns=%d", len(s.Columns))}
	for _, c := range s.Columns {
		parts = append(parts, c.describe())
	}
	return strings.Join(parts, "; ")
}

func (c ColumnSummary) describe() string {
	switch c.Kind {
	case KindNumeric:
		n := c.Numeric
		text := fmt.Sprintf("%s: numeric n=%d mean=%s sd=%s min=%s max=%s median=%s ci95=[%s, %s]",
			c.Name, c.Count-c.NonNumeric, num(n.Mean), num(n.StdDev), num(n.Min), num(n.Max), num(n.Median), num(n.CI95[0]), num(n.CI95[1]))
		if c.NonNumeric > 0 {
			text += fmt.Sprintf(" non_numeric=%d", c.NonNumeric)
		}
		return text
	case KindCategorical:
		return fmt.Sprintf("%s: categorical n=%d unique=%d top=%s", c.Name, c.Count, c.Categorical.Unique, c.Categorical.Top)
	default:
		return fmt.Sprintf("%s: empty", c.Name)
	}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
