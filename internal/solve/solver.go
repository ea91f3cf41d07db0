package solve

import (
	"github.com/Hadron67/typechecker/internal/diag"
	"github.com/Hadron67/typechecker/internal/registry"
	"github.com/Hadron67/typechecker/internal/term"
)

// Solver holds the pending-constraint queue, the set of solver-unlocked
// permanent symbols (ones the elaborator declared writable this pass), and
// the set of symbols mutated during solving (§4.5 "Operating state").
type Solver struct {
	scratch       *registry.Scratch
	unlocked      map[term.Handle]bool
	affected      map[term.Handle]bool
	queue         []Constraint
	diags         diag.Bag
	maxIterations int
	freshCounter  int
}

// New opens a solver over scratch, capping the outer iteration loop at
// maxIterations (§5 "Cancellation and timeouts").
func New(scratch *registry.Scratch, maxIterations int) *Solver {
	return &Solver{
		scratch:       scratch,
		unlocked:      make(map[term.Handle]bool),
		affected:      make(map[term.Handle]bool),
		maxIterations: maxIterations,
	}
}

// Unlock marks a permanent symbol as writable for the current elaboration
// pass (the elaborator calls this for every symbol it declares).
func (s *Solver) Unlock(h term.Handle) { s.unlocked[h] = true }

// Post enqueues a new constraint.
func (s *Solver) Post(c Constraint) { s.queue = append(s.queue, c) }

func (s *Solver) canWrite(h term.Handle) bool {
	return s.scratch.IsTemp(h) || s.unlocked[h]
}

func (s *Solver) fresh(name string, isLocal bool) term.Handle {
	s.freshCounter++
	return s.scratch.Fresh(name, isLocal)
}

// AffectedSymbols returns the permanent handles mutated during solving.
func (s *Solver) AffectedSymbols() []term.Handle {
	out := make([]term.Handle, 0, len(s.affected))
	for h := range s.affected {
		out = append(out, h)
	}
	return out
}

// Run iterates the queue to a fixed point, then iterates again with the
// stuck flag enabled (CALL-vs-CALL structural decomposition) until that
// too reaches a fixed point, then performs the final check (§4.5). It
// returns every diagnostic recorded.
func (s *Solver) Run() []*diag.Diagnostic {
	iterations := 0
	s.drainToFixedPoint(false, &iterations)
	// CALL-vs-CALL decomposition is only safe once no further reduction is
	// possible anywhere else in the queue (§9). A single such pass only
	// peels off one layer of a nested Call, leaving its decomposed
	// sub-constraints (themselves Call-vs-Call, for a deeper nesting) stuck
	// in the queue — so this also runs to a fixed point, not just once.
	s.drainToFixedPoint(true, &iterations)

	s.finalCheck()
	return s.diags.Items()
}

// drainToFixedPoint evaluates the queue, with stuck fixed, until a whole
// pass makes no progress or the iteration budget is exhausted.
func (s *Solver) drainToFixedPoint(stuck bool, iterations *int) {
	changed := true
	for changed {
		if *iterations >= s.maxIterations {
			s.diags.Addf(diag.CodeUnresolvedConstraint, diag.Span{}, "solver exceeded %d iterations", s.maxIterations)
			return
		}
		*iterations++
		changed = false
		batch := s.queue
		s.queue = nil
		for _, c := range batch {
			res := s.evaluate(c, stuck)
			if res.changed {
				changed = true
			}
			s.queue = append(s.queue, res.next...)
		}
	}
}

type evalResult struct {
	changed bool
	next    []Constraint
}

func resolved(next ...Constraint) evalResult   { return evalResult{changed: true, next: next} }
func unresolved(c Constraint) evalResult       { return evalResult{changed: false, next: []Constraint{c}} }
func progressed(next ...Constraint) evalResult { return evalResult{changed: true, next: next} }

func (s *Solver) evaluate(c Constraint, stuck bool) evalResult {
	switch c.Kind {
	case KindEqual:
		return s.evalEqual(c, stuck)
	case KindType:
		return s.evalType(c)
	case KindFn:
		return s.evalFn(c)
	case KindFnTypeEqual:
		return s.evalFnTypeEqual(c)
	default:
		panic("solve: unhandled constraint kind")
	}
}
