package facility

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultProfile is the profile used when none is configured.
const DefaultProfile = "hospital-infra"

var (
	registryMu sync.RWMutex
	profiles   = make(map[string]*Profile)
)

func init() {
	Register(hospitalInfra())
}

// Register adds a profile to the global registry, replacing any profile
// with the same name.
func Register(p *Profile) {
	registryMu.Lock()
	defer registryMu.Unlock()
	profiles[p.Name] = p.Clone()
}

// Get returns a copy of a registered profile, or an error if not found.
func Get(name string) (*Profile, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := profiles[name]
	if !ok {
		return nil, NewError(KindProfile, fmt.Sprintf("unknown profile %q", name), nil)
	}
	return p.Clone(), nil
}

// All returns copies of all registered profiles sorted by name.
func All() []*Profile {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]*Profile, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, p.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// hospitalInfra is the layout of the municipal hospital infrastructure sheet.
func hospitalInfra() *Profile {
	return &Profile{
		Name:        DefaultProfile,
		Description: "Municipal hospital infrastructure census (one row per facility)",
		Format:      FormatSpec{Delimiter: ",", Encoding: "utf-8", Normalize: "lowercase_utf8"},
		Headers: map[string]string{
			"City Name":                        FieldCity,
			"Zone Name":                        FieldZone,
			"Ward Name":                        FieldWard,
			"Ward No.":                         FieldWardNo,
			"Facility Name":                    FieldFacilityName,
			"Name of Hospital":                 FieldFacilityName,
			"Type of Facility":                 FieldType,
			"Facility Type":                    FieldType,
			"Class : (Public/Private)":         FieldFacilityClass,
			"Number of Beds in facility type":  FieldBedsCount,
			"Average Monthly Patient Footfall": FieldMonthlyFootfall,
			"Pharmacy Available : Yes/No":      FieldPharmacyAvailable,
			"Ambulance Service Available":      FieldAmbulanceAvailable,
		},
		Drop: []string{FieldWardNo},
		Mappings: MappingSpec{
			Type: map[string]string{
				"hospital":                  "hospital",
				"hospital (maternity home)": "hospital",
				"maternity":                 "hospital",
				"general":                   "hospital",
				"maternity + general":       "hospital",
				"opthalmology":              "hospital",
				"dental":                    "hospital",
				"speciality":                "hospital",
				"ortho":                     "hospital",
				"nursing home":              "nursing home",
				"lab":                       "lab",
			},
			Pharmacy: map[string]string{
				"yes":  "yes",
				"no":   "no",
				"n.a.": "no",
			},
			Ambulance: map[string]string{
				"yes":  "yes",
				"no":   "no",
				"n.a.": "no",
			},
		},
	}
}
