// CLAUDE:SUMMARY Profile YAML schema: CSV format, header renames, dropped columns and the category mapping tables.
package facility

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes one dataset layout and how to clean it.
type Profile struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	Extends     string            `yaml:"extends" json:"extends,omitempty"`
	Format      FormatSpec        `yaml:"format" json:"format"`
	Headers     map[string]string `yaml:"headers" json:"headers"`
	Drop        []string          `yaml:"drop" json:"drop"`
	Mappings    MappingSpec       `yaml:"mappings" json:"mappings"`
}

// FormatSpec describes the CSV layout.
type FormatSpec struct {
	Delimiter string `yaml:"delimiter" json:"delimiter,omitempty"`
	Encoding  string `yaml:"encoding" json:"encoding,omitempty"`
	Normalize string `yaml:"normalize" json:"normalize,omitempty"`
}

// MappingSpec holds the raw substitution tables, keyed by source value.
type MappingSpec struct {
	Type      map[string]string `yaml:"type" json:"type"`
	Pharmacy  map[string]string `yaml:"pharmacy" json:"pharmacy"`
	Ambulance map[string]string `yaml:"ambulance" json:"ambulance"`
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	out := *p
	out.Headers = maps.Clone(p.Headers)
	out.Drop = append([]string(nil), p.Drop...)
	out.Mappings = MappingSpec{
		Type:      maps.Clone(p.Mappings.Type),
		Pharmacy:  maps.Clone(p.Mappings.Pharmacy),
		Ambulance: maps.Clone(p.Mappings.Ambulance),
	}
	return &out
}

// Merge layers o over p: scalar fields of o win when set, map entries of o
// are added or replace p's, drop lists are unioned.
func (p *Profile) Merge(o *Profile) *Profile {
	out := p.Clone()
	if o.Name != "" {
		out.Name = o.Name
	}
	if o.Description != "" {
		out.Description = o.Description
	}
	if o.Format.Delimiter != "" {
		out.Format.Delimiter = o.Format.Delimiter
	}
	if o.Format.Encoding != "" {
		out.Format.Encoding = o.Format.Encoding
	}
	if o.Format.Normalize != "" {
		out.Format.Normalize = o.Format.Normalize
	}
	out.Headers = mergeMap(out.Headers, o.Headers)
	out.Mappings.Type = mergeMap(out.Mappings.Type, o.Mappings.Type)
	out.Mappings.Pharmacy = mergeMap(out.Mappings.Pharmacy, o.Mappings.Pharmacy)
	out.Mappings.Ambulance = mergeMap(out.Mappings.Ambulance, o.Mappings.Ambulance)
	for _, d := range o.Drop {
		if !contains(out.Drop, d) {
			out.Drop = append(out.Drop, d)
		}
	}
	out.Extends = ""
	return out
}

func mergeMap(base, over map[string]string) map[string]string {
	if base == nil {
		base = make(map[string]string, len(over))
	}
	maps.Copy(base, over)
	return base
}

// LoadProfile reads and parses a profile YAML file. A profile that
// extends a registered one is merged over it.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewError(KindProfile, fmt.Sprintf("read profile %s", path), err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, NewError(KindProfile, fmt.Sprintf("parse profile %s", path), err)
	}
	if p.Name == "" && p.Extends == "" {
		return nil, NewError(KindProfile, fmt.Sprintf("profile %s: missing name", path), nil)
	}
	if p.Extends == "" {
		return &p, nil
	}
	base, err := Get(p.Extends)
	if err != nil {
		return nil, NewError(KindProfile, fmt.Sprintf("profile %s", path), err)
	}
	return base.Merge(&p), nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
