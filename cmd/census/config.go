// CLAUDE:SUMMARY YAML config for the census CLI with defaults, shared flag set and profile resolution.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/hazyhaar/facility-census/pkg/facility"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type config struct {
	Input       string `yaml:"input"`
	Profile     string `yaml:"profile"`
	ProfileFile string `yaml:"profile_file"`
	OutputDir   string `yaml:"output_dir"`
	DBPath      string `yaml:"db_path"`
	TopN        int    `yaml:"top_n"`
	LogLevel    string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		Input:     "hospitals.csv",
		Profile:   facility.DefaultProfile,
		OutputDir: "out",
		TopN:      facility.DefaultTopN,
		LogLevel:  "info",
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TopN <= 0 {
		cfg.TopN = facility.DefaultTopN
	}
	return cfg, nil
}

// flags are the overrides shared by the pipeline subcommands. Zero values
// leave the config file value in place.
type flags struct {
	config      *string
	input       *string
	profile     *string
	profileFile *string
	outputDir   *string
	db          *string
	top         *int
}

func registerFlags(fs *flag.FlagSet) *flags {
	return &flags{
		config:      fs.String("config", "config.yaml", "path to config file"),
		input:       fs.String("input", "", "input CSV (overrides config)"),
		profile:     fs.String("profile", "", "built-in profile name (overrides config)"),
		profileFile: fs.String("profile-file", "", "profile YAML file (overrides config)"),
		outputDir:   fs.String("output-dir", "", "output directory (overrides config)"),
		db:          fs.String("db", "", "SQLite output database (overrides config)"),
		top:         fs.Int("top", 0, "length of the top-N views (overrides config)"),
	}
}

// envPrefix prefixes the environment overrides, e.g. CENSUS_DB_PATH.
const envPrefix = "CENSUS_"

// loadEnv reads a .env file from the working directory when present.
// Variables already set in the environment win.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// applyEnv layers CENSUS_* variables over cfg.
func applyEnv(cfg *config) error {
	str := map[string]*string{
		"INPUT":        &cfg.Input,
		"PROFILE":      &cfg.Profile,
		"PROFILE_FILE": &cfg.ProfileFile,
		"OUTPUT_DIR":   &cfg.OutputDir,
		"DB_PATH":      &cfg.DBPath,
		"LOG_LEVEL":    &cfg.LogLevel,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "TOP_N"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%sTOP_N: invalid value %q", envPrefix, v)
		}
		cfg.TopN = n
	}
	return nil
}

// resolve builds the effective config: defaults, then the config file,
// then the environment, then flags.
func (f *flags) resolve() (config, error) {
	cfg, err := loadConfig(*f.config)
	if err != nil {
		return cfg, err
	}
	if err := loadEnv(); err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if *f.input != "" {
		cfg.Input = *f.input
	}
	if *f.profile != "" {
		cfg.Profile = *f.profile
	}
	if *f.profileFile != "" {
		cfg.ProfileFile = *f.profileFile
	}
	if *f.outputDir != "" {
		cfg.OutputDir = *f.outputDir
	}
	if *f.db != "" {
		cfg.DBPath = *f.db
	}
	if *f.top > 0 {
		cfg.TopN = *f.top
	}
	return cfg, nil
}

// resolveProfile returns the profile file when configured, else the
// registered profile.
func resolveProfile(cfg config, logger *slog.Logger) (*facility.Profile, error) {
	if cfg.ProfileFile != "" {
		p, err := facility.LoadProfile(cfg.ProfileFile)
		if err != nil {
			return nil, err
		}
		logger.Debug("profile loaded", "path", cfg.ProfileFile, "name", p.Name)
		return p, nil
	}
	return facility.Get(cfg.Profile)
}
