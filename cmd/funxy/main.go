// Command funxy is the reference CLI for the elaborator (§6): it reads a
// source file, runs it through the driver, and prints either a registry
// dump or a diagnostic list.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/Hadron67/typechecker/internal/config"
	"github.com/Hadron67/typechecker/internal/driver"
	"github.com/Hadron67/typechecker/internal/history"
	"github.com/Hadron67/typechecker/internal/printer"
)

func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s elaborate <file>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s history [recent|show <run-id>]\n", os.Args[0])
}

func historyPath() string {
	if p := os.Getenv("FUNXY_HISTORY_DB"); p != "" {
		return p
	}
	return ".funxy-history.db"
}

func handleElaborate(path string) int {
	if !config.HasSourceExt(path) {
		fmt.Fprintf(os.Stderr, "warning: %s does not have a recognized source extension\n", path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	d := driver.New()
	res := d.Run(path, string(src))

	p := printer.New(colorEnabled())
	if len(res.Diagnostics) == 0 {
		p.RegistryDump(d.Registry)
	} else {
		p.Diagnostics(res.Diagnostics)
	}
	fmt.Print(p.String())
	fmt.Fprintln(os.Stderr, res.Summary())

	if store, err := history.Open(historyPath()); err == nil {
		_ = store.Record(res)
		store.Close()
	}

	if len(res.Diagnostics) > 0 {
		return 1
	}
	return 0
}

func handleHistory(args []string) int {
	store, err := history.Open(historyPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer store.Close()

	if len(args) == 0 || args[0] == "recent" {
		entries, err := store.Recent(20)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		for _, e := range entries {
			fmt.Printf("%s  %-40s  %d diagnostic(s)  %s\n", e.RunID, e.SourcePath, e.DiagCount, e.RanAt.Format("2006-01-02 15:04:05"))
		}
		return 0
	}

	if args[0] == "show" && len(args) == 2 {
		e, err := store.Show(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Printf("run:    %s\nsource: %s\ndiags:  %d\nran at: %s\n", e.RunID, e.SourcePath, e.DiagCount, e.RanAt.Format("2006-01-02 15:04:05"))
		return 0
	}

	usage()
	return 1
}

func main() {
	if os.Getenv("FUNXY_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch cmd := os.Args[1]; {
	case cmd == "elaborate" && len(os.Args) == 3:
		os.Exit(handleElaborate(os.Args[2]))
	case cmd == "history":
		os.Exit(handleHistory(os.Args[2:]))
	case strings.HasSuffix(cmd, config.SourceFileExt):
		// `funxy foo.decl` is shorthand for `funxy elaborate foo.decl`.
		os.Exit(handleElaborate(cmd))
	default:
		usage()
		os.Exit(1)
	}
}
