package vpick

import (
	"github.com/sirupsen/logrus"
)

// Strategy selects which resolution algorithm a Solver runs. It is a plain
// enumerated choice - the strategies share the Manifest contracts but
// nothing is dispatched virtually.
type Strategy uint8

const (
	// StrategyExhaustive generates the full cross-product of version
	// choices and filters it. Deliberately naive; its cost is exactly the
	// product of per-package version counts regardless of outcome, which
	// makes it the oracle the faster strategies are checked against.
	StrategyExhaustive Strategy = iota
	// StrategyIncremental runs a depth-first backtracking search that
	// prunes inconsistent partial combinations before expanding them.
	StrategyIncremental
	// StrategySAT encodes the manifest as a boolean satisfiability problem
	// and asks a SAT backend for one model, or a proof that none exists.
	StrategySAT
)

func (s Strategy) String() string {
	switch s {
	case StrategyExhaustive:
		return "exhaustive"
	case StrategyIncremental:
		return "incremental"
	case StrategySAT:
		return "sat"
	}
	return "unknown"
}

// SolveOpts holds the caller's parameters for a single Solve call.
type SolveOpts struct {
	// Strategy picks the algorithm. The zero value is StrategyExhaustive.
	Strategy Strategy

	// Order is the package traversal order for the incremental strategy.
	// It must be a permutation of the manifest's packages; nil means
	// declaration order. Order changes how much work the search does -
	// never which combinations it finds.
	Order []string

	// Workers splits the exhaustive strategy's candidate checking across
	// that many goroutines. Values below 2 mean the plain serial loop.
	// Each candidate is independent, so this changes throughput only.
	Workers int

	// SAT is the backend for the SAT strategy. Nil means the built-in
	// PicoSAT binding.
	SAT SATSolver
}

// A Solver resolves one Manifest. It only ever reads the manifest; the
// same Solver may be asked to Solve repeatedly, with identical results for
// identical options.
type Solver struct {
	m *Manifest
	l *logrus.Logger
}

// NewSolver creates a Solver for a validated Manifest. Passing a nil
// logger silences tracing (a fresh logger at Warn level).
func NewSolver(m *Manifest, l *logrus.Logger) *Solver {
	if l == nil {
		l = logrus.New()
		l.Level = logrus.WarnLevel
	}

	return &Solver{m: m, l: l}
}

// Solve runs the selected strategy to completion and reports every valid
// combination it was asked to find. Failures here are all configuration
// failures; an empty result is a normal outcome, not an error.
func (s *Solver) Solve(o SolveOpts) (Result, error) {
	switch o.Strategy {
	case StrategyExhaustive:
		combos := s.exhaustive(o.Workers)
		return Result{Combinations: combos, Satisfiable: len(combos) > 0}, nil

	case StrategyIncremental:
		combos, examined, err := s.incremental(o.Order)
		if err != nil {
			return Result{}, err
		}
		return Result{Combinations: combos, Examined: examined, Satisfiable: len(combos) > 0}, nil

	case StrategySAT:
		backend := o.SAT
		if backend == nil {
			backend = Pigosat{}
		}
		combo, ok, err := s.sat(backend)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{}, nil
		}
		return Result{Combinations: []Combination{combo}, Satisfiable: true}, nil
	}

	return Result{}, badOpts("Unknown strategy %v.", o.Strategy)
}

// ResolveExhaustive finds every valid combination by brute force, in a
// deterministic order fixed by the manifest's declaration order.
func ResolveExhaustive(m *Manifest) []Combination {
	return NewSolver(m, nil).exhaustive(0)
}

// ResolveIncremental finds every valid combination by pruned backtracking
// over the given package order (nil means declaration order), and reports
// how many candidate search states it examined along the way.
func ResolveIncremental(m *Manifest, order []string) ([]Combination, int, error) {
	return NewSolver(m, nil).incremental(order)
}

// ResolveSAT asks a SAT backend for one valid combination. ok == false
// means the backend proved the manifest unsatisfiable - the same situation
// in which the other strategies return no combinations. A nil backend
// selects the built-in PicoSAT binding.
func ResolveSAT(m *Manifest, backend SATSolver) (Combination, bool, error) {
	if backend == nil {
		backend = Pigosat{}
	}
	return NewSolver(m, nil).sat(backend)
}
