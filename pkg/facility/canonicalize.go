package facility

import "strings"

// Canonicalizer trims every text cell and folds a fixed subset of fields.
// Numeric fields are left as loaded.
type Canonicalizer struct {
	numeric   map[string]bool
	lowercase map[string]bool
	normalize Normalizer
}

// NewCanonicalizer builds a canonicalizer over the given field sets.
func NewCanonicalizer(numeric, lowercase []string, normalize Normalizer) *Canonicalizer {
	if normalize == nil {
		normalize = NormalizeLowercaseUTF8
	}
	c := &Canonicalizer{
		numeric:   make(map[string]bool, len(numeric)),
		lowercase: make(map[string]bool, len(lowercase)),
		normalize: normalize,
	}
	for _, f := range numeric {
		c.numeric[f] = true
	}
	for _, f := range lowercase {
		c.lowercase[f] = true
	}
	return c
}

// Canonicalize rewrites t in place. Running it twice yields the same table.
func (c *Canonicalizer) Canonicalize(t *Table) {
	for col, name := range t.Columns {
		if c.numeric[name] {
			continue
		}
		fold := c.lowercase[name]
		for r := range t.Rows {
			if col >= len(t.Rows[r]) {
				continue
			}
			v := strings.TrimSpace(t.Rows[r][col])
			if fold {
				v = strings.TrimSpace(c.normalize(v))
			}
			t.Rows[r][col] = v
		}
	}
}

// Text canonicalizes a single value as a lowercase field would be.
func (c *Canonicalizer) Text(v string) string {
	return strings.TrimSpace(c.normalize(strings.TrimSpace(v)))
}
