package facility

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one cleaned facility row. Missing numeric values are nil.
type Record struct {
	City               string   `json:"city"`
	Zone               string   `json:"zone"`
	Ward               string   `json:"ward"`
	FacilityName       string   `json:"facility_name"`
	Type               string   `json:"type"`
	FacilityClass      string   `json:"facility_class"`
	BedsCount          *int     `json:"beds_count"`
	MonthlyFootfall    *float64 `json:"monthly_footfall"`
	PharmacyAvailable  string   `json:"pharmacy_available"`
	AmbulanceAvailable string   `json:"ambulance_available"`
}

// missingTokens read as "no data" in numeric columns.
var missingTokens = map[string]bool{
	"":     true,
	"-":    true,
	"na":   true,
	"n.a.": true,
	"n/a":  true,
	"nil":  true,
	"null": true,
	"nan":  true,
}

// Decode converts a canonicalized table into records. The type and both
// numeric fields must be present; the other text fields are optional.
func Decode(t *Table) ([]Record, error) {
	typeCol, ok := t.Index(FieldType)
	if !ok {
		return nil, missingField("aggregator", FieldType)
	}
	bedsCol, ok := t.Index(FieldBedsCount)
	if !ok {
		return nil, missingField("aggregator", FieldBedsCount)
	}
	footfallCol, ok := t.Index(FieldMonthlyFootfall)
	if !ok {
		return nil, missingField("aggregator", FieldMonthlyFootfall)
	}

	text := func(r int, field string) string {
		v, _ := t.Value(r, field)
		return v
	}

	records := make([]Record, 0, t.Len())
	for r := range t.Rows {
		beds, err := parseCount(t.Cell(r, bedsCol))
		if err != nil {
			return nil, rowError(r, FieldBedsCount, err)
		}
		footfall, err := parseAmount(t.Cell(r, footfallCol))
		if err != nil {
			return nil, rowError(r, FieldMonthlyFootfall, err)
		}
		records = append(records, Record{
			City:               text(r, FieldCity),
			Zone:               text(r, FieldZone),
			Ward:               text(r, FieldWard),
			FacilityName:       text(r, FieldFacilityName),
			Type:               t.Cell(r, typeCol),
			FacilityClass:      text(r, FieldFacilityClass),
			BedsCount:          beds,
			MonthlyFootfall:    footfall,
			PharmacyAvailable:  text(r, FieldPharmacyAvailable),
			AmbulanceAvailable: text(r, FieldAmbulanceAvailable),
		})
	}
	return records, nil
}

func rowError(r int, field string, err error) *Error {
	return &Error{
		Kind:  KindValidation,
		Field: field,
		Msg:   fmt.Sprintf("row %d: field %q", r+1, field),
		Err:   err,
	}
}

// parseAmount parses a non-negative number, returning nil for missing tokens.
func parseAmount(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if missingTokens[strings.ToLower(s)] {
		return nil, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	return &v, nil
}

// parseCount parses a non-negative integer; "12.0" is accepted.
func parseCount(raw string) (*int, error) {
	v, err := parseAmount(raw)
	if err != nil || v == nil {
		return nil, err
	}
	if *v != math.Trunc(*v) || *v > math.MaxInt32 {
		return nil, fmt.Errorf("invalid count %q", raw)
	}
	n := int(*v)
	return &n, nil
}
