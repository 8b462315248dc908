// CLAUDE:SUMMARY Four-stage cleaning pipeline (schema adapter, canonicalizer, category mapper, aggregator) producing a Result.
package facility

// Result is the pipeline output handed to renderers and the store.
type Result struct {
	Table             *Table        `json:"-"`
	Records           []Record      `json:"-"`
	Adapt             AdaptStats    `json:"-"`
	AvgBedsByType     Ranking       `json:"avg_beds_by_type"`
	AvgFootfallByType Ranking       `json:"avg_footfall_by_type"`
	Counts            []FieldCounts `json:"counts"`
	Residuals         []Residual    `json:"residuals"`
}

// Pipeline runs the four cleaning stages configured from a profile.
type Pipeline struct {
	profile *Profile
	schema  *SchemaAdapter
	canon   *Canonicalizer
	mapper  *Mapper
}

// NewPipeline compiles a profile into its stages.
func NewPipeline(p *Profile) *Pipeline {
	p = p.Clone()
	canon := NewCanonicalizer(NumericFields, LowercaseFields, GetNormalizer(p.Format.Normalize))
	return &Pipeline{
		profile: p,
		schema:  NewSchemaAdapter(p.Headers, p.Drop),
		canon:   canon,
		mapper: NewMapper(
			FieldMapping{Field: FieldType, Mapping: NewMapping(p.Mappings.Type, canon.Text)},
			FieldMapping{Field: FieldPharmacyAvailable, Mapping: NewMapping(p.Mappings.Pharmacy, canon.Text)},
			FieldMapping{Field: FieldAmbulanceAvailable, Mapping: NewMapping(p.Mappings.Ambulance, canon.Text)},
		),
	}
}

// Profile returns the profile the pipeline was built from.
func (p *Pipeline) Profile() *Profile {
	return p.profile
}

// Mapper returns the category mapper stage.
func (p *Pipeline) Mapper() *Mapper {
	return p.mapper
}

// Run transforms t in place and aggregates it. A missing required field
// stops the pipeline before aggregation.
func (p *Pipeline) Run(t *Table) (*Result, error) {
	stats := p.schema.Adapt(t)
	p.canon.Canonicalize(t)
	if err := p.mapper.Map(t); err != nil {
		return nil, err
	}

	records, err := Decode(t)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Table:             t,
		Records:           records,
		Adapt:             stats,
		AvgBedsByType:     AverageByType(records, BedsMetric),
		AvgFootfallByType: AverageByType(records, FootfallMetric),
		Residuals:         p.mapper.Residuals(t),
	}
	for _, field := range CountFields {
		if !t.Has(field) {
			continue
		}
		counts, err := CountBy(t, field)
		if err != nil {
			return nil, err
		}
		res.Counts = append(res.Counts, FieldCounts{Field: field, Counts: counts})
	}
	return res, nil
}

// RunFile loads path with the profile's CSV format and runs the pipeline.
func (p *Pipeline) RunFile(path string) (*Result, error) {
	t, err := LoadCSV(path, p.profile.Format)
	if err != nil {
		return nil, err
	}
	return p.Run(t)
}
