// Package config holds process-wide, ambient settings in the same style as
// the teacher's internal/config: a handful of package-level vars and
// constants consulted from several subsystems, rather than a struct threaded
// everywhere.
package config

// Version is the current module version.
var Version = "0.1.0"

// SourceFileExt is the canonical source extension for declaration files.
const SourceFileExt = ".decl"

// SourceFileExtensions lists every recognized source extension.
var SourceFileExtensions = []string{".decl", ".core"}

// HasSourceExt reports whether path ends with a recognized extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode is set by the CLI when FUNXY_TEST_MODE=1. No other code reads
// it: String() output and temp-symbol names are the same in either mode.
var IsTestMode = false

// BuiltinLevelName is the pre-declared dotted name of the level type.
const BuiltinLevelName = "builtin.Level"

// DefaultMaxIterations bounds the solver's outer iteration loop (§5).
const DefaultMaxIterations = 10000
