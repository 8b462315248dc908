// Package report renders pipeline results for people and charting tools:
// the cleaned table as CSV, the rankings as JSON or terminal text, and an
// XLSX workbook whose bar charts are drawn by the spreadsheet library.
package report

import (
	"github.com/hazyhaar/facility-census/pkg/facility"
)

// Summary is the plain structured view of a pipeline result.
type Summary struct {
	Source            string                 `json:"source,omitempty"`
	Profile           string                 `json:"profile,omitempty"`
	Rows              int                    `json:"rows"`
	Columns           []string               `json:"columns"`
	TopN              int                    `json:"top_n"`
	AvgBedsByType     facility.Ranking       `json:"avg_beds_by_type"`
	AvgFootfallByType facility.Ranking       `json:"avg_footfall_by_type"`
	TopBeds           facility.Ranking       `json:"top_beds"`
	TopFootfall       facility.Ranking       `json:"top_footfall"`
	Counts            []facility.FieldCounts `json:"counts"`
	Residuals         []facility.Residual    `json:"residuals"`
}

// NewSummary derives a summary from res. topN <= 0 uses facility.DefaultTopN.
func NewSummary(res *facility.Result, source, profile string, topN int) *Summary {
	if topN <= 0 {
		topN = facility.DefaultTopN
	}
	s := &Summary{
		Source:            source,
		Profile:           profile,
		Rows:              res.Table.Len(),
		Columns:           append([]string(nil), res.Table.Columns...),
		TopN:              topN,
		AvgBedsByType:     nonNil(res.AvgBedsByType),
		AvgFootfallByType: nonNil(res.AvgFootfallByType),
		Counts:            res.Counts,
		Residuals:         res.Residuals,
	}
	s.TopBeds = s.AvgBedsByType.Top(topN)
	s.TopFootfall = s.AvgFootfallByType.Top(topN)
	if s.Counts == nil {
		s.Counts = []facility.FieldCounts{}
	}
	if s.Residuals == nil {
		s.Residuals = []facility.Residual{}
	}
	return s
}

func nonNil(r facility.Ranking) facility.Ranking {
	if r == nil {
		return facility.Ranking{}
	}
	return r
}
