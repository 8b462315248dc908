package facility

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadProfile_Standalone(t *testing.T) {
	path := writeProfile(t, `name: tiny
description: two columns
format:
  delimiter: ";"
headers:
  "Kind": type
drop:
  - Serial
mappings:
  type:
    clinic: hospital
`)

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.Name != "tiny" || p.Format.Delimiter != ";" {
		t.Errorf("profile = %+v", p)
	}
	if p.Headers["Kind"] != FieldType {
		t.Errorf("headers = %v", p.Headers)
	}
	if len(p.Drop) != 1 || p.Drop[0] != "Serial" {
		t.Errorf("drop = %v", p.Drop)
	}
	if p.Mappings.Type["clinic"] != "hospital" {
		t.Errorf("type mapping = %v", p.Mappings.Type)
	}
}

func TestLoadProfile_Extends(t *testing.T) {
	path := writeProfile(t, `name: pcmc
extends: hospital-infra
headers:
  "Hospital Type": type
mappings:
  type:
    multispeciality: hospital
  pharmacy:
    "not available": "no"
`)

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.Name != "pcmc" || p.Extends != "" {
		t.Errorf("name = %q extends = %q", p.Name, p.Extends)
	}
	if p.Headers["Hospital Type"] != FieldType || p.Headers["City Name"] != FieldCity {
		t.Errorf("headers not merged: %v", p.Headers)
	}
	if p.Mappings.Type["multispeciality"] != "hospital" || p.Mappings.Type["ortho"] != "hospital" {
		t.Errorf("type mapping not merged: %v", p.Mappings.Type)
	}
	if p.Mappings.Pharmacy["not available"] != "no" || p.Mappings.Pharmacy["n.a."] != "no" {
		t.Errorf("pharmacy mapping not merged: %v", p.Mappings.Pharmacy)
	}
	if p.Format.Delimiter != "," {
		t.Errorf("delimiter = %q, want inherited ,", p.Format.Delimiter)
	}

	// The registered base is untouched.
	base, _ := Get(DefaultProfile)
	if _, ok := base.Mappings.Type["multispeciality"]; ok {
		t.Error("merge leaked into registered profile")
	}
}

func TestLoadProfile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no name", "description: nothing\n"},
		{"bad yaml", "name: [unterminated\n"},
		{"unknown base", "name: x\nextends: nope\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfile(writeProfile(t, tt.content))
			if KindOf(err) != KindProfile {
				t.Errorf("err = %v, want profile error", err)
			}
		})
	}

	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); KindOf(err) != KindProfile {
		t.Errorf("missing file err = %v, want profile error", err)
	}
}

func TestLoadProfile_DropByRawHeader(t *testing.T) {
	path := writeProfile(t, `name: raw-drop
headers:
  "City Name": city
  "Ward No.": wardNo
drop:
  - "Ward No."
`)

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	tbl := NewTable([]string{"City Name", "Ward No."}, [][]string{{"Pune", "12"}})
	NewSchemaAdapter(p.Headers, p.Drop).Adapt(tbl)

	if tbl.Has(FieldWardNo) {
		t.Errorf("wardNo still present in %v", tbl.Columns)
	}
	if len(tbl.Columns) != 1 || tbl.Columns[0] != FieldCity {
		t.Errorf("columns = %v, want [%s]", tbl.Columns, FieldCity)
	}
}
