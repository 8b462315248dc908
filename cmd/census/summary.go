package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/hazyhaar/facility-census/pkg/facility"
	"github.com/hazyhaar/facility-census/pkg/report"
	"github.com/hazyhaar/facility-census/pkg/store"
)

func cmdSummary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	f := registerFlags(fs)
	fs.Parse(args)

	cfg, err := f.resolve()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	p, res, err := runPipeline(cfg, logger)
	if err != nil {
		return err
	}
	return report.WriteText(os.Stdout, report.NewSummary(res, cfg.Input, p.Name, cfg.TopN))
}

func cmdProfiles(args []string) error {
	fs := flag.NewFlagSet("profiles", flag.ExitOnError)
	fs.Parse(args)
	return listProfiles(os.Stdout)
}

func listProfiles(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDELIMITER\tENCODING\tDESCRIPTION")
	for _, p := range facility.All() {
		delim := p.Format.Delimiter
		if delim == "" {
			delim = ","
		}
		enc := p.Format.Encoding
		if enc == "" {
			enc = "utf-8"
		}
		fmt.Fprintf(tw, "%s\t%q\t%s\t%s\n", p.Name, delim, enc, p.Description)
	}
	return tw.Flush()
}

func cmdRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	dbPath := fs.String("db", "", "SQLite output database (overrides config)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := loadEnv(); err != nil {
		return err
	}
	if err := applyEnv(&cfg); err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	newLogger(cfg.LogLevel)
	if cfg.DBPath == "" {
		return facility.NewError(facility.KindValidation, "runs: no database configured (set db_path or -db)", nil)
	}
	return listRuns(ctx, cfg.DBPath, os.Stdout)
}

func listRuns(ctx context.Context, dbPath string, w io.Writer) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tCREATED\tROWS\tPROFILE\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.ID, time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339), r.Rows, r.Profile, r.Source)
	}
	return tw.Flush()
}
