package vpick

import (
	"github.com/justinfx/pigosat"
	"github.com/pkg/errors"
)

// Pigosat is the built-in SATSolver, binding the PicoSAT solver. It is the
// default backend when SolveOpts.SAT is nil. The zero value is ready to
// use; each Solve call builds an independent solver instance, so a single
// Pigosat may serve concurrent resolutions.
type Pigosat struct{}

// Solve satisfies SATSolver by handing the clause set to PicoSAT.
func (Pigosat) Solve(nvars int, clauses []Clause) ([]bool, bool, error) {
	ps, err := pigosat.New(nil)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to initialize pigosat")
	}

	formula := make(pigosat.Formula, len(clauses))
	for i, c := range clauses {
		lits := make([]pigosat.Literal, len(c))
		for j, lit := range c {
			lits[j] = pigosat.Literal(lit)
		}
		formula[i] = lits
	}

	// Hint the variable count before loading the formula.
	ps.Adjust(nvars)
	ps.AddClauses(formula)

	status, solution := ps.Solve()
	if status != pigosat.Satisfiable {
		return nil, false, nil
	}

	model := make([]bool, len(solution))
	copy(model, solution)
	return model, true, nil
}
