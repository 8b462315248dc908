package facility

// SchemaAdapter renames raw headers to canonical field names and drops
// non-informative columns.
type SchemaAdapter struct {
	headers map[string]string
	drop    []string
}

// AdaptStats reports what Adapt changed.
type AdaptStats struct {
	Renamed int
	Dropped int
}

// NewSchemaAdapter copies the header map (raw -> canonical) and drop list.
func NewSchemaAdapter(headers map[string]string, drop []string) *SchemaAdapter {
	a := &SchemaAdapter{
		headers: make(map[string]string, len(headers)),
		drop:    make([]string, 0, len(drop)),
	}
	for raw, canonical := range headers {
		a.headers[headerKey(raw)] = canonical
	}
	for _, d := range drop {
		a.drop = append(a.drop, headerKey(d))
	}
	return a
}

// Adapt renames known headers in place, then removes every column whose
// raw or canonical name is in the drop list. Raw headers that are absent are
// simply not renamed; unknown headers pass through unchanged.
// It writes into t.Columns and t.Rows, so slices shared with the caller change too.
func (a *SchemaAdapter) Adapt(t *Table) AdaptStats {
	var stats AdaptStats
	drop := make([]bool, len(t.Columns))
	for i, col := range t.Columns {
		drop[i] = a.dropped(col)
		canonical, ok := a.headers[headerKey(col)]
		if !ok {
			continue
		}
		drop[i] = drop[i] || a.dropped(canonical)
		if col != canonical {
			t.Columns[i] = canonical
			stats.Renamed++
		}
	}

	for c := len(t.Columns) - 1; c >= 0; c-- {
		if drop[c] {
			t.dropColumn(c)
			stats.Dropped++
		}
	}
	return stats
}

func (a *SchemaAdapter) dropped(col string) bool {
	key := headerKey(col)
	for _, d := range a.drop {
		if d == key {
			return true
		}
	}
	return false
}
