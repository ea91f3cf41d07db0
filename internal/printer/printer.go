// Package printer renders diagnostics and registry dumps for the CLI
// driver. It is deliberately outside the core (§1 "thin external
// collaborators"): nothing here feeds back into elaboration.
package printer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/registry"
	"github.com/Hadron67/typechecker/internal/term"
)

// Printer accumulates rendered text in a buffer, mirroring the teacher's
// prettyprinter.CodePrinter shape.
type Printer struct {
	buf    bytes.Buffer
	color  bool
}

// New creates a Printer. color enables ANSI severity coloring, decided by
// the caller (the CLI checks isatty before setting this).
func New(color bool) *Printer {
	return &Printer{color: color}
}

func (p *Printer) String() string { return p.buf.String() }

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Diagnostics renders one line per diagnostic, sorted by source position so
// output is stable regardless of evaluation order.
func (p *Printer) Diagnostics(items []*diag.Diagnostic) {
	sorted := make([]*diag.Diagnostic, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Line != sorted[j].Span.Line {
			return sorted[i].Span.Line < sorted[j].Span.Line
		}
		return sorted[i].Span.Column < sorted[j].Span.Column
	})
	for _, d := range sorted {
		if p.color {
			p.buf.WriteString(ansiRed)
		}
		p.buf.WriteString(string(d.Code))
		if p.color {
			p.buf.WriteString(ansiReset)
		}
		if d.Span.Line != 0 {
			fmt.Fprintf(&p.buf, " (%s)", d.Span)
		}
		fmt.Fprintf(&p.buf, ": %s\n", d.Message)
	}
}

// RegistryDump renders every entry in reg, in handle order, as
// `name : type = ownValue` (fields omitted when unset).
func (p *Printer) RegistryDump(reg *registry.Registry) {
	for h := 0; h < reg.Count(); h++ {
		e, ok := reg.Entry(term.Handle(h))
		if !ok || e.IsLocal {
			continue
		}
		name := reg.Stringify(term.Handle(h))
		if name == "" || name[0] == '<' {
			continue
		}
		fmt.Fprintf(&p.buf, "%s", name)
		if e.Info.HasType() {
			fmt.Fprintf(&p.buf, " : %s", e.Info.Type)
		}
		if e.Info.HasOwnValue() {
			fmt.Fprintf(&p.buf, " = %s", e.Info.OwnValue)
		}
		for _, rule := range e.Info.DownValue {
			fmt.Fprintf(&p.buf, "\n%s := %s", rule.Lhs, rule.Rhs)
		}
		p.buf.WriteString("\n")
	}
}
