package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hazyhaar/facility-census/pkg/facility"
	"github.com/xuri/excelize/v2"
)

const (
	sheetFacilities  = "Facilities"
	sheetAvgBeds     = "AvgBeds"
	sheetAvgFootfall = "AvgFootfall"
	sheetCounts      = "Counts"
	sheetCharts      = "Charts"

	// rows between stacked charts on the Charts sheet
	chartSpacing = 20
)

// WriteXLSX writes a workbook with the cleaned table, one sheet per
// ranking, the value counts and a Charts sheet of bar charts over the
// top-N views and counts.
func WriteXLSX(w io.Writer, t *facility.Table, s *Summary) error {
	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	headerID, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	defaultSheet := file.GetSheetName(0)
	if defaultSheet != sheetFacilities {
		file.SetSheetName(defaultSheet, sheetFacilities)
	}
	if err := writeFacilities(file, t, headerID); err != nil {
		return fmt.Errorf("facilities sheet: %w", err)
	}

	if err := writeRanking(file, sheetAvgBeds, "avg_beds", s.AvgBedsByType, headerID); err != nil {
		return fmt.Errorf("%s sheet: %w", sheetAvgBeds, err)
	}
	if err := writeRanking(file, sheetAvgFootfall, "avg_monthly_footfall", s.AvgFootfallByType, headerID); err != nil {
		return fmt.Errorf("%s sheet: %w", sheetAvgFootfall, err)
	}
	if err := writeCounts(file, s.Counts, headerID); err != nil {
		return fmt.Errorf("%s sheet: %w", sheetCounts, err)
	}
	if err := writeCharts(file, s); err != nil {
		return fmt.Errorf("%s sheet: %w", sheetCharts, err)
	}

	return file.Write(w)
}

func writeFacilities(file *excelize.File, t *facility.Table, headerID int) error {
	stream, err := file.NewStreamWriter(sheetFacilities)
	if err != nil {
		return err
	}

	numeric := make([]bool, len(t.Columns))
	headers := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = excelize.Cell{StyleID: headerID, Value: col}
		numeric[i] = col == facility.FieldBedsCount || col == facility.FieldMonthlyFootfall
	}
	if err := stream.SetRow("A1", headers); err != nil {
		return err
	}

	for r := range t.Rows {
		cells := make([]interface{}, len(t.Columns))
		for c := range t.Columns {
			v := t.Cell(r, c)
			if numeric[c] {
				cells[c] = numericCell(v)
				continue
			}
			cells[c] = excelize.Cell{Value: v}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := stream.SetRow(cell, cells); err != nil {
			return err
		}
	}
	return stream.Flush()
}

// numericCell writes parseable numbers as numbers and anything else as text.
func numericCell(v string) excelize.Cell {
	s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return excelize.Cell{Value: f}
	}
	return excelize.Cell{Value: strings.TrimSpace(v)}
}

func writeRanking(file *excelize.File, sheet, metric string, r facility.Ranking, headerID int) error {
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}
	if err := file.SetSheetRow(sheet, "A1", &[]interface{}{facility.FieldType, metric}); err != nil {
		return err
	}
	if err := file.SetCellStyle(sheet, "A1", "B1", headerID); err != nil {
		return err
	}
	for i, e := range r {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, cell, &[]interface{}{e.Key, e.Value}); err != nil {
			return err
		}
	}
	return nil
}

// writeCounts lays out one (value, n) column pair per field, a blank
// column between pairs.
func writeCounts(file *excelize.File, counts []facility.FieldCounts, headerID int) error {
	if _, err := file.NewSheet(sheetCounts); err != nil {
		return err
	}
	for i, fc := range counts {
		col := 3*i + 1
		head, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			return err
		}
		tail, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheetCounts, head, &[]interface{}{fc.Field, "count"}); err != nil {
			return err
		}
		if err := file.SetCellStyle(sheetCounts, head, tail, headerID); err != nil {
			return err
		}
		for j, c := range fc.Counts {
			cell, err := excelize.CoordinatesToCellName(col, j+2)
			if err != nil {
				return err
			}
			if err := file.SetSheetRow(sheetCounts, cell, &[]interface{}{c.Value, c.N}); err != nil {
				return err
			}
		}
	}
	return nil
}

type chartSpec struct {
	title      string
	sheet      string
	labelCol   int
	valueCol   int
	rows       int
	horizontal bool
}

func writeCharts(file *excelize.File, s *Summary) error {
	specs := []chartSpec{
		{
			title: fmt.Sprintf("Average beds by type (top %d)", s.TopN),
			sheet: sheetAvgBeds, labelCol: 1, valueCol: 2, rows: len(s.TopBeds),
			horizontal: true,
		},
		{
			title: fmt.Sprintf("Average monthly footfall by type (top %d)", s.TopN),
			sheet: sheetAvgFootfall, labelCol: 1, valueCol: 2, rows: len(s.TopFootfall),
			horizontal: true,
		},
	}
	for i, fc := range s.Counts {
		specs = append(specs, chartSpec{
			title: "Facilities by " + fc.Field,
			sheet: sheetCounts, labelCol: 3*i + 1, valueCol: 3*i + 2, rows: len(fc.Counts),
		})
	}

	if _, err := file.NewSheet(sheetCharts); err != nil {
		return err
	}
	row := 1
	for _, spec := range specs {
		if spec.rows == 0 {
			continue
		}
		chart, err := spec.chart()
		if err != nil {
			return err
		}
		anchor, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := file.AddChart(sheetCharts, anchor, chart); err != nil {
			return fmt.Errorf("chart %q: %w", spec.title, err)
		}
		row += chartSpacing
	}
	return nil
}

func (c chartSpec) chart() (*excelize.Chart, error) {
	label, err := excelize.ColumnNumberToName(c.labelCol)
	if err != nil {
		return nil, err
	}
	value, err := excelize.ColumnNumberToName(c.valueCol)
	if err != nil {
		return nil, err
	}
	kind := excelize.Col
	if c.horizontal {
		kind = excelize.Bar
	}
	last := c.rows + 1
	return &excelize.Chart{
		Type: kind,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$%s$1", c.sheet, value),
			Categories: fmt.Sprintf("'%s'!$%s$2:$%s$%d", c.sheet, label, label, last),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", c.sheet, value, value, last),
		}},
		Title:  []excelize.RichTextRun{{Text: c.title}},
		Legend: excelize.ChartLegend{Position: "none"},
	}, nil
}
