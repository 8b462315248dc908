package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/facility-census/pkg/facility"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "clean":
		err = cmdClean(ctx, os.Args[2:])
	case "summary":
		err = cmdSummary(os.Args[2:])
	case "profiles":
		err = cmdProfiles(os.Args[2:])
	case "runs":
		err = cmdRuns(ctx, os.Args[2:])
	case "watch":
		err = cmdWatch(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		ge := facility.AsGoError(err)
		slog.Error("census failed", "error", err, "code", ge.TextCode, "category", ge.Category)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: census <command> [flags]

Commands:
  clean     Clean the input CSV and write cleaned.csv, summary.json, report.xlsx
  summary   Print the ranked means and value counts
  profiles  List the built-in dataset profiles
  runs      List runs stored in the database
  watch     Re-run clean whenever the input CSV changes
`)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
