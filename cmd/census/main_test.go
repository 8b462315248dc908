package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/facility-census/pkg/facility"
	"github.com/hazyhaar/facility-census/pkg/report"
)

const sampleCSV = `City Name,Zone Name,Ward Name,Ward No.,Name of Hospital,Type of Facility,Class : (Public/Private),Number of Beds in facility type,Average Monthly Patient Footfall,Pharmacy Available : Yes/No,Ambulance Service Available
Pune,East,Kasba,12,City Care,Ortho,Private,40,"2,000",Yes,Yes
Pune,West,Aundh,7,Sahyadri,Nursing Home,Private,12,800,No,N.A.
Pune,East,Kasba,12,Path Lab,Lab,Public,,350,Yes,No
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "hospitals.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "input: data/h.csv\noutput_dir: build\ndb_path: census.db\ntop_n: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Input != "data/h.csv" || cfg.OutputDir != "build" || cfg.DBPath != "census.db" || cfg.TopN != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Profile != facility.DefaultProfile || cfg.LogLevel != "info" {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("top_n: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFlags_OverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("input: a.csv\ntop_n: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := registerFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-input", "b.csv", "-top", "7"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := f.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Input != "b.csv" || cfg.TopN != 7 {
		t.Errorf("cfg = %+v, want input b.csv and top 7", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CENSUS_INPUT", "env.csv")
	t.Setenv("CENSUS_DB_PATH", "env.db")
	t.Setenv("CENSUS_TOP_N", "2")

	cfg := defaultConfig()
	if err := applyEnv(&cfg); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if cfg.Input != "env.csv" || cfg.DBPath != "env.db" || cfg.TopN != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.OutputDir != defaultConfig().OutputDir {
		t.Errorf("output dir changed without a variable: %q", cfg.OutputDir)
	}
}

func TestApplyEnv_BadTopN(t *testing.T) {
	t.Setenv("CENSUS_TOP_N", "many")
	cfg := defaultConfig()
	if err := applyEnv(&cfg); err == nil {
		t.Fatal("expected error for non-numeric CENSUS_TOP_N")
	}
}

func TestRunClean_WritesOutputsAndStoresRun(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig()
	cfg.Input = writeInput(t, dir)
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.DBPath = filepath.Join(dir, "census.db")

	out, err := runClean(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("runClean: %v", err)
	}
	if len(out.Files) != 3 {
		t.Fatalf("files = %v, want 3", out.Files)
	}
	if out.RunID == "" {
		t.Error("expected a run id")
	}

	cleaned, err := os.ReadFile(filepath.Join(cfg.OutputDir, cleanedFile))
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(cleaned), "\n", 2)[0]
	if strings.Contains(header, facility.FieldWardNo) {
		t.Errorf("wardNo should be dropped: %q", header)
	}
	if !strings.Contains(string(cleaned), "hospital") {
		t.Errorf("cleaned.csv lacks mapped type:\n%s", cleaned)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, summaryFile))
	if err != nil {
		t.Fatal(err)
	}
	var sum report.Summary
	if err := json.Unmarshal(data, &sum); err != nil {
		t.Fatalf("summary.json: %v", err)
	}
	if sum.Rows != 3 {
		t.Errorf("rows = %d, want 3", sum.Rows)
	}
	if v, ok := sum.AvgBedsByType.Get("hospital"); !ok || v != 40 {
		t.Errorf("avg beds hospital = %v, %v", v, ok)
	}
	if _, ok := sum.AvgBedsByType.Get("lab"); ok {
		t.Error("lab has no bed data and should be absent")
	}

	var buf bytes.Buffer
	if err := listRuns(context.Background(), cfg.DBPath, &buf); err != nil {
		t.Fatalf("listRuns: %v", err)
	}
	if !strings.Contains(buf.String(), out.RunID) {
		t.Errorf("runs listing lacks %s:\n%s", out.RunID, buf.String())
	}
}

func TestRunClean_NoDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig()
	cfg.Input = writeInput(t, dir)
	cfg.OutputDir = filepath.Join(dir, "out")

	out, err := runClean(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("runClean: %v", err)
	}
	if out.RunID != "" {
		t.Errorf("run id = %q, want empty without db_path", out.RunID)
	}
}

func TestRunClean_MissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig()
	cfg.Input = filepath.Join(dir, "missing.csv")
	cfg.OutputDir = filepath.Join(dir, "out")

	_, err := runClean(context.Background(), cfg, quietLogger())
	if err == nil {
		t.Fatal("expected error")
	}
	if k := facility.KindOf(err); k != facility.KindLoad {
		t.Errorf("kind = %s, want %s", k, facility.KindLoad)
	}
}

func TestRunClean_ProfileFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "semi.csv")
	data := strings.ReplaceAll(sampleCSV, ",", ";")
	// the quoted thousands separator became a semicolon too
	data = strings.ReplaceAll(data, `"2;000"`, "2000")
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	profile := filepath.Join(dir, "semi.yaml")
	yml := "name: semi\nextends: hospital-infra\nformat:\n  delimiter: \";\"\n"
	if err := os.WriteFile(profile, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	cfg.Input = input
	cfg.ProfileFile = profile
	cfg.OutputDir = filepath.Join(dir, "out")

	out, err := runClean(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("runClean: %v", err)
	}
	if out.Summary.Profile != "semi" {
		t.Errorf("profile = %q, want semi", out.Summary.Profile)
	}
	if v, ok := out.Summary.AvgFootfallByType.Get("hospital"); !ok || v != 2000 {
		t.Errorf("avg footfall hospital = %v, %v", v, ok)
	}
}

func TestListProfiles(t *testing.T) {
	var buf bytes.Buffer
	if err := listProfiles(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), facility.DefaultProfile) {
		t.Errorf("listing lacks %s:\n%s", facility.DefaultProfile, buf.String())
	}
}
