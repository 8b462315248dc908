package report

import (
	"encoding/csv"
	"io"

	"github.com/hazyhaar/facility-census/pkg/facility"
)

// WriteCSV writes the cleaned table, header first.
func WriteCSV(w io.Writer, t *facility.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
