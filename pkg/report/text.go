package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hazyhaar/facility-census/pkg/facility"
)

// WriteText prints the top-N rankings, counts and residuals for a terminal.
func WriteText(w io.Writer, s *Summary) error {
	p := &printer{w: w}
	p.printf("%d facilities, %d columns", s.Rows, len(s.Columns))
	if s.Source != "" {
		p.printf(" (%s)", s.Source)
	}
	p.printf("\n\n")

	p.ranking(fmt.Sprintf("Average beds by type (top %d)", s.TopN), s.TopBeds)
	p.ranking(fmt.Sprintf("Average monthly footfall by type (top %d)", s.TopN), s.TopFootfall)

	for _, fc := range s.Counts {
		p.printf("Count by %s\n", fc.Field)
		for _, c := range fc.Counts {
			p.printf("  %-25s  %6d\n", c.Value, c.N)
		}
		p.printf("\n")
	}

	if len(s.Residuals) > 0 {
		p.printf("Unmapped values\n")
		for _, r := range s.Residuals {
			v := r.Value
			if v == "" {
				v = "(blank)"
			}
			p.printf("  %-20s  %-25s  %6d\n", r.Field, v, r.Count)
		}
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) ranking(title string, r facility.Ranking) {
	p.printf("%s\n", title)
	if len(r) == 0 {
		p.printf("  (no data)\n\n")
		return
	}
	for i, e := range r {
		p.printf("  %d. %-25s  %10s\n", i+1, e.Key, strconv.FormatFloat(e.Value, 'f', 1, 64))
	}
	p.printf("\n")
}
