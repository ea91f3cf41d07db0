package driver

import (
	"testing"

	"github.com/Hadron67/typechecker/internal/term"
)

func TestNewPreDeclaresBuiltinLevel(t *testing.T) {
	d := New()
	h, ok := d.Registry.Lookup(term.NoHandle, false, "builtin")
	if !ok {
		t.Fatal("expected a builtin root symbol")
	}
	level, ok := d.Registry.Lookup(h, true, "Level")
	if !ok {
		t.Fatal("expected builtin.Level")
	}
	if !d.Registry.MustEntry(level).Info.HasType() {
		t.Fatal("expected builtin.Level to carry a type")
	}
}

func TestRunReportsDiagnosticsAndRunMetadata(t *testing.T) {
	d := New()
	res := d.Run("test.decl", "f: A -> A")
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for the undeclared identifier A")
	}
	if res.SourcePath != "test.decl" {
		t.Fatalf("want source path test.decl, got %s", res.SourcePath)
	}
	if res.RunID.String() == "" {
		t.Fatal("expected a non-empty run ID")
	}
}

func TestRunSucceedsOnAWellFormedProgram(t *testing.T) {
	d := New()
	res := d.Run("test.decl", "Nat: type(0l)")
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", res.Diagnostics)
	}
}

func TestLoadProjectConfigDefaultsMaxIterations(t *testing.T) {
	cfg, err := LoadProjectConfig([]byte("sourceRoots: [a.decl, b.decl]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxIterations <= 0 {
		t.Fatalf("expected a positive default MaxIterations, got %d", cfg.MaxIterations)
	}
	if len(cfg.SourceRoots) != 2 {
		t.Fatalf("want 2 source roots, got %v", cfg.SourceRoots)
	}
}
