// Package driver implements the reference driver (§6): construct a
// permanent registry, pre-declare the built-ins, elaborate a source
// string, and report either a registry dump or diagnostics. It is the one
// place that ties the core packages to the ambient stack (run IDs,
// project config, human-readable summaries).
package driver

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Hadron67/typechecker/internal/config"
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/elaborate"
	"github.com/Hadron67/typechecker/internal/registry"
	"github.com/Hadron67/typechecker/internal/term"
)

// ProjectConfig is the optional `.funxy.yaml` project file: source roots to
// elaborate, the solver's iteration cap, and whether the (unimplemented,
// §9) universe-subscript lattice pass should run.
type ProjectConfig struct {
	SourceRoots            []string `yaml:"sourceRoots"`
	MaxIterations          int      `yaml:"maxIterations"`
	EnableSubscriptLattice bool     `yaml:"enableSubscriptLattice"`
}

// LoadProjectConfig decodes a `.funxy.yaml` document, defaulting
// MaxIterations when the file doesn't set it.
func LoadProjectConfig(data []byte) (*ProjectConfig, error) {
	cfg := &ProjectConfig{MaxIterations: config.DefaultMaxIterations}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("driver: parsing project config: %w", err)
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = config.DefaultMaxIterations
	}
	return cfg, nil
}

// Result is one elaboration run's outcome.
type Result struct {
	RunID       uuid.UUID
	SourcePath  string
	Diagnostics []*diag.Diagnostic
	Duration    time.Duration
}

// Summary renders a short human-readable line, in the spirit of the
// teacher's CLI output: humanized counts and durations, not raw numbers.
func (r *Result) Summary() string {
	ms := humanize.Comma(r.Duration.Milliseconds())
	if len(r.Diagnostics) == 0 {
		return fmt.Sprintf("run %s: ok (%sms)", r.RunID, ms)
	}
	return fmt.Sprintf("run %s: %s diagnostic(s) (%sms)", r.RunID, humanize.Comma(int64(len(r.Diagnostics))), ms)
}

// Driver wires a permanent registry (with the built-ins pre-declared) to a
// reusable Elaborator.
type Driver struct {
	Registry   *registry.Registry
	Elaborator *elaborate.Elaborator
}

// New constructs a Driver with a fresh registry carrying only
// `builtin.Level : LEVEL_TYPE` (§6).
func New() *Driver {
	reg := registry.New()
	term.SetNamer(reg)

	builtinParent, _ := reg.CreateChild(term.NoHandle, false, "builtin", false)
	levelHandle, _ := reg.CreateChild(builtinParent, true, "Level", false)
	reg.MustEntry(levelHandle).Info.Type = term.LevelType{}

	return &Driver{
		Registry:   reg,
		Elaborator: elaborate.New(reg),
	}
}

// Run elaborates src, tagging the outcome with a fresh run ID and the wall
// time taken (§6, "reference driver").
func (d *Driver) Run(sourcePath, src string) *Result {
	start := time.Now()
	res := d.Elaborator.Elaborate(src)
	return &Result{
		RunID:       uuid.New(),
		SourcePath:  sourcePath,
		Diagnostics: res.Diagnostics,
		Duration:    time.Since(start),
	}
}
