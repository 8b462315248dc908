package facility

// Canonical field names produced by the schema adapter.
const (
	FieldCity               = "city"
	FieldZone               = "zone"
	FieldWard               = "ward"
	FieldWardNo             = "wardNo"
	FieldFacilityName       = "facilityName"
	FieldType               = "type"
	FieldFacilityClass      = "facilityClass"
	FieldBedsCount          = "bedsCount"
	FieldMonthlyFootfall    = "monthlyFootfall"
	FieldPharmacyAvailable  = "pharmacyAvailable"
	FieldAmbulanceAvailable = "ambulanceAvailable"
)

// NumericFields are left untouched by the text canonicalizer.
var NumericFields = []string{FieldBedsCount, FieldMonthlyFootfall}

// LowercaseFields are the text fields folded to lowercase.
var LowercaseFields = []string{
	FieldCity,
	FieldZone,
	FieldWard,
	FieldFacilityName,
	FieldType,
	FieldFacilityClass,
	FieldPharmacyAvailable,
	FieldAmbulanceAvailable,
}

// CountFields are the categorical fields summarized by value counts.
var CountFields = []string{
	FieldType,
	FieldFacilityClass,
	FieldPharmacyAvailable,
	FieldAmbulanceAvailable,
	FieldZone,
}
