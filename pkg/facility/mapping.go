// CLAUDE:SUMMARY Substitution tables that collapse free-text category variants, plus the residual audit for values left unmapped.
package facility

import "sort"

// Mapping is an immutable source -> canonical substitution table.
// Values absent from the table pass through unchanged.
type Mapping struct {
	table map[string]string
	vocab map[string]bool
}

// NewMapping copies src, folding keys and values through fold so that
// lookups match canonicalized cells. A nil fold keeps entries verbatim.
func NewMapping(src map[string]string, fold func(string) string) Mapping {
	if fold == nil {
		fold = func(s string) string { return s }
	}
	m := Mapping{
		table: make(map[string]string, len(src)),
		vocab: make(map[string]bool, len(src)),
	}
	for from, to := range src {
		to = fold(to)
		m.table[fold(from)] = to
		m.vocab[to] = true
	}
	return m
}

// Apply returns the canonical value for v, or v itself when unmapped.
func (m Mapping) Apply(v string) string {
	if to, ok := m.table[v]; ok {
		return to
	}
	return v
}

// Lookup returns the canonical value for v and whether v is mapped.
func (m Mapping) Lookup(v string) (string, bool) {
	to, ok := m.table[v]
	return to, ok
}

// InVocabulary reports whether v is one of the canonical values.
func (m Mapping) InVocabulary(v string) bool {
	return m.vocab[v]
}

// Vocabulary returns the canonical values, sorted.
func (m Mapping) Vocabulary() []string {
	out := make([]string, 0, len(m.vocab))
	for v := range m.vocab {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of source entries.
func (m Mapping) Len() int {
	return len(m.table)
}

// FieldMapping binds a mapping table to a canonical field.
type FieldMapping struct {
	Field   string
	Mapping Mapping
}

// Mapper applies one mapping table per categorical field.
type Mapper struct {
	fields []FieldMapping
}

// NewMapper builds a mapper; fields are applied in the given order.
func NewMapper(fields ...FieldMapping) *Mapper {
	return &Mapper{fields: append([]FieldMapping(nil), fields...)}
}

// Fields returns the mapped field bindings.
func (m *Mapper) Fields() []FieldMapping {
	return append([]FieldMapping(nil), m.fields...)
}

// Map rewrites every mapped field of t in place. All fields are checked
// before any cell is touched.
func (m *Mapper) Map(t *Table) error {
	cols := make([]int, len(m.fields))
	for i, fm := range m.fields {
		c, ok := t.Index(fm.Field)
		if !ok {
			return missingField("category mapper", fm.Field)
		}
		cols[i] = c
	}

	for r := range t.Rows {
		for i, fm := range m.fields {
			c := cols[i]
			if c >= len(t.Rows[r]) {
				continue
			}
			t.Rows[r][c] = fm.Mapping.Apply(t.Rows[r][c])
		}
	}
	return nil
}

// Residual is a distinct value left outside a field's canonical vocabulary.
type Residual struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Residuals lists, per mapped field, values outside the canonical vocabulary
// in first-appearance order. Blank cells are reported with an empty Value;
// absent fields are skipped.
func (m *Mapper) Residuals(t *Table) []Residual {
	var out []Residual
	for _, fm := range m.fields {
		c, ok := t.Index(fm.Field)
		if !ok {
			continue
		}
		pos := make(map[string]int)
		for r := range t.Rows {
			v := t.Cell(r, c)
			if fm.Mapping.InVocabulary(v) {
				continue
			}
			if i, seen := pos[v]; seen {
				out[i].Count++
				continue
			}
			pos[v] = len(out)
			out = append(out, Residual{Field: fm.Field, Value: v, Count: 1})
		}
	}
	return out
}
