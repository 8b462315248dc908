package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunWatch_RerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig()
	cfg.Input = writeInput(t, dir)
	cfg.OutputDir = filepath.Join(dir, "out")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	exited := make(chan error, 1)
	go func() { exited <- runWatch(ctx, cfg, quietLogger(), done) }()

	wait := func(what string) {
		t.Helper()
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("%s: %v", what, err)
			}
		case <-time.After(10 * time.Second):
			t.Fatalf("%s: timed out", what)
		}
	}
	wait("initial run")

	// one more facility row
	extra := sampleCSV + "Pune,West,Aundh,7,Eye Care,Opthalmology,Private,20,100,Yes,No\n"
	if err := os.WriteFile(cfg.Input, []byte(extra), 0o644); err != nil {
		t.Fatal(err)
	}
	wait("rerun")

	cancel()
	if err := <-exited; err != nil {
		t.Fatalf("runWatch: %v", err)
	}

	cleaned, err := os.ReadFile(filepath.Join(cfg.OutputDir, cleanedFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cleaned), "eye care") {
		t.Errorf("rerun output lacks the new row:\n%s", cleaned)
	}
}
