// Package config reads runtime settings from the environment and comparison
// plans from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/versediff/core/compare"
	"github.com/FocuswithJustin/versediff/core/errors"
	"github.com/FocuswithJustin/versediff/internal/edition"
	"github.com/FocuswithJustin/versediff/internal/logging"
	"github.com/FocuswithJustin/versediff/internal/report"
)

// Environment variables read by Load.
const (
	EnvLogLevel  = "VERSEDIFF_LOG_LEVEL"
	EnvLogFormat = "VERSEDIFF_LOG_FORMAT"
	EnvOutputDir = "VERSEDIFF_OUTPUT_DIR"
	EnvCacheSize = "VERSEDIFF_CACHE_SIZE"
)

// Config holds settings that apply to every command.
type Config struct {
	LogLevel  logging.Level
	LogFormat logging.Format
	OutputDir string
	CacheSize int
}

// Load reads an optional .env file from the working directory and then the
// VERSEDIFF_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset values.
func FromEnv(getenv func(string) string) (*Config, error) {
	level, err := logging.ParseLevel(getenv(EnvLogLevel))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", EnvLogLevel)
	}
	format, err := logging.ParseFormat(getenv(EnvLogFormat))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", EnvLogFormat)
	}

	cacheSize := edition.DefaultCacheSize
	if raw := strings.TrimSpace(getenv(EnvCacheSize)); raw != "" {
		cacheSize, err = strconv.Atoi(raw)
		if err != nil || cacheSize < 0 {
			return nil, errors.NewValidation(EnvCacheSize, fmt.Sprintf("want a non-negative integer, got %q", raw))
		}
	}

	return &Config{
		LogLevel:  level,
		LogFormat: format,
		OutputDir: firstNonEmpty(strings.TrimSpace(getenv(EnvOutputDir)), report.DefaultDir),
		CacheSize: cacheSize,
	}, nil
}

// Plan is a saved comparison: which editions, which books and where the
// report goes.
//
//	editions:
//	  - name: kjv
//	    path: texts/kjv_edition.txt
//	  - path: texts/web_edition.txt.xz
//	books: [Genesis, Exodus]
//	common: false
//	output_dir: compared_results
type Plan struct {
	Editions  []PlanEdition `yaml:"editions"`
	Books     []string      `yaml:"books,omitempty"`
	Common    bool          `yaml:"common,omitempty"`
	OutputDir string        `yaml:"output_dir,omitempty"`
}

// PlanEdition names one edition file in a plan. Name may be empty.
type PlanEdition struct {
	Name string `yaml:"name,omitempty"`
	Path string `yaml:"path"`
}

// LoadPlan reads and validates a plan file. Relative edition paths and
// output_dir are resolved against the directory holding the plan.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, errors.NewParse("YAML", path, err.Error())
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range plan.Editions {
		plan.Editions[i].Path = resolve(base, plan.Editions[i].Path)
	}
	if plan.OutputDir != "" {
		plan.OutputDir = resolve(base, plan.OutputDir)
	}
	return &plan, nil
}

// Validate checks the edition count and that every edition has a path.
func (p *Plan) Validate() error {
	if n := len(p.Editions); n < compare.MinEditions || n > compare.MaxEditions {
		return errors.NewArity(n, n, fmt.Sprintf("plan lists %d editions", n))
	}
	for i, ed := range p.Editions {
		if strings.TrimSpace(ed.Path) == "" {
			return errors.NewValidation(fmt.Sprintf("editions[%d].path", i), "path is required")
		}
	}
	if p.Common && len(p.Books) > 0 {
		return errors.NewValidation("common", "cannot be combined with books")
	}
	return nil
}

// Paths returns the edition paths in plan order.
func (p *Plan) Paths() []string {
	paths := make([]string, len(p.Editions))
	for i, ed := range p.Editions {
		paths[i] = ed.Path
	}
	return paths
}

// Names returns the edition names in plan order. Unnamed entries are empty.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Editions))
	for i, ed := range p.Editions {
		names[i] = ed.Name
	}
	return names
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
