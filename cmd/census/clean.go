package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hazyhaar/facility-census/pkg/facility"
	"github.com/hazyhaar/facility-census/pkg/report"
	"github.com/hazyhaar/facility-census/pkg/store"
)

const (
	cleanedFile = "cleaned.csv"
	summaryFile = "summary.json"
	reportFile  = "report.xlsx"
)

func cmdClean(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	f := registerFlags(fs)
	fs.Parse(args)

	cfg, err := f.resolve()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	_, err = runClean(ctx, cfg, logger)
	return err
}

// cleanResult records what a clean run produced.
type cleanResult struct {
	RunID   string
	Summary *report.Summary
	Files   []string
}

// runPipeline resolves the profile and runs it over cfg.Input.
func runPipeline(cfg config, logger *slog.Logger) (*facility.Profile, *facility.Result, error) {
	p, err := resolveProfile(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	res, err := facility.NewPipeline(p).RunFile(cfg.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("process %s: %w", cfg.Input, err)
	}
	logger.Info("pipeline done",
		"input", cfg.Input,
		"profile", p.Name,
		"rows", res.Table.Len(),
		"columns", len(res.Table.Columns),
		"renamed", res.Adapt.Renamed,
		"dropped", res.Adapt.Dropped,
	)
	for _, r := range res.Residuals {
		logger.Warn("unmapped value", "field", r.Field, "value", r.Value, "count", r.Count)
	}
	return p, res, nil
}

func runClean(ctx context.Context, cfg config, logger *slog.Logger) (*cleanResult, error) {
	p, res, err := runPipeline(cfg, logger)
	if err != nil {
		return nil, err
	}
	sum := report.NewSummary(res, cfg.Input, p.Name, cfg.TopN)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	out := &cleanResult{Summary: sum}

	writers := []struct {
		name  string
		write func(*os.File) error
	}{
		{cleanedFile, func(w *os.File) error { return report.WriteCSV(w, res.Table) }},
		{summaryFile, func(w *os.File) error { return report.WriteJSON(w, sum) }},
		{reportFile, func(w *os.File) error { return report.WriteXLSX(w, res.Table, sum) }},
	}
	for _, wr := range writers {
		path := filepath.Join(cfg.OutputDir, wr.name)
		if err := writeFile(path, wr.write); err != nil {
			return nil, err
		}
		logger.Info("wrote output", "path", path)
		out.Files = append(out.Files, path)
	}

	if cfg.DBPath != "" {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer st.Close()

		out.RunID, err = st.SaveRun(ctx, cfg.Input, p.Name, res)
		if err != nil {
			return nil, err
		}
		logger.Info("run stored", "db", cfg.DBPath, "run_id", out.RunID, "rows", res.Table.Len())
	}
	return out, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
