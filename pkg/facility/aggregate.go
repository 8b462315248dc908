// CLAUDE:SUMMARY Group-by-type means (beds, footfall) ranked descending with stable ties, and value counts for categorical fields.
package facility

import (
	"math"
	"sort"
)

// DefaultTopN is the length of the truncated ranking views.
const DefaultTopN = 5

// Entry is one group of a ranking.
type Entry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Ranking is an ordered group -> value mapping, highest value first.
type Ranking []Entry

// Top returns the first n entries. n <= 0 returns the whole ranking.
func (r Ranking) Top(n int) Ranking {
	if n <= 0 || n >= len(r) {
		return r
	}
	return r[:n]
}

// Get returns the value for key.
func (r Ranking) Get(key string) (float64, bool) {
	for _, e := range r {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

// Keys returns the group keys in ranking order.
func (r Ranking) Keys() []string {
	keys := make([]string, len(r))
	for i, e := range r {
		keys[i] = e.Key
	}
	return keys
}

// Metric extracts a value from a record; ok is false when the value is missing.
type Metric func(Record) (v float64, ok bool)

// BedsMetric reads bedsCount.
func BedsMetric(rec Record) (float64, bool) {
	if rec.BedsCount == nil {
		return 0, false
	}
	return float64(*rec.BedsCount), true
}

// FootfallMetric reads monthlyFootfall.
func FootfallMetric(rec Record) (float64, bool) {
	if rec.MonthlyFootfall == nil {
		return 0, false
	}
	return *rec.MonthlyFootfall, true
}

// AverageByType groups records by Type and averages metric, rounded to one
// decimal. Records with a blank type or missing the metric do not contribute;
// a group with no contributing record is left out. Equal values keep
// first-appearance order.
func AverageByType(records []Record, metric Metric) Ranking {
	type acc struct {
		sum float64
		n   int
	}
	var order []string
	groups := make(map[string]*acc)
	for _, rec := range records {
		if rec.Type == "" {
			continue
		}
		g, ok := groups[rec.Type]
		if !ok {
			g = &acc{}
			groups[rec.Type] = g
			order = append(order, rec.Type)
		}
		if v, ok := metric(rec); ok {
			g.sum += v
			g.n++
		}
	}

	ranking := make(Ranking, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if g.n == 0 {
			continue
		}
		ranking = append(ranking, Entry{Key: key, Value: round1(g.sum / float64(g.n))})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Value > ranking[j].Value
	})
	return ranking
}

// round1 rounds to one decimal, halves to even.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

// Count is the number of rows holding one value of a categorical field.
type Count struct {
	Value string `json:"value"`
	N     int    `json:"n"`
}

// FieldCounts are the value counts of one field, most frequent first.
type FieldCounts struct {
	Field  string  `json:"field"`
	Counts []Count `json:"counts"`
}

// CountBy counts the non-blank values of field. Equal counts keep
// first-appearance order.
func CountBy(t *Table, field string) ([]Count, error) {
	c, ok := t.Index(field)
	if !ok {
		return nil, missingField("counts", field)
	}
	pos := make(map[string]int)
	var counts []Count
	for r := range t.Rows {
		v := t.Cell(r, c)
		if v == "" {
			continue
		}
		if i, seen := pos[v]; seen {
			counts[i].N++
			continue
		}
		pos[v] = len(counts)
		counts = append(counts, Count{Value: v, N: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].N > counts[j].N
	})
	return counts, nil
}
