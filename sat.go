package vpick

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A Clause is a disjunction of literals in the usual DIMACS convention:
// variable numbers start at 1, and a negative literal is the variable's
// negation. At least one literal in every clause must hold.
type Clause []int

// SATSolver is the capability the SAT strategy delegates to. Any backend
// that can answer the boolean question is substitutable; the encoding does
// not depend on which one is behind the interface.
//
// Solve receives the variable count and the clause set. It returns a model
// indexed by variable number (model[0] is unused) when the formula is
// satisfiable, or ok == false when the backend proved it is not. The error
// return is for backend failures only - unsatisfiability is an answer,
// not an error.
type SATSolver interface {
	Solve(nvars int, clauses []Clause) (model []bool, ok bool, err error)
}

// atomMap assigns and tracks the boolean choice variable for each
// (package, version) atom. Variables are numbered from 1, in manifest
// declaration order, so encodings are deterministic.
type atomMap struct {
	ids   map[atom]int
	atoms []atom
}

func newAtomMap() *atomMap {
	return &atomMap{ids: make(map[atom]int)}
}

func (am *atomMap) id(a atom) int {
	if id, has := am.ids[a]; has {
		return id
	}
	am.atoms = append(am.atoms, a)
	am.ids[a] = len(am.atoms)
	return len(am.atoms)
}

func (am *atomMap) len() int {
	return len(am.atoms)
}

// sat encodes the manifest as a satisfiability problem over one choice
// variable per (package, version) atom, asks the backend for a model, and
// decodes the model back into a Combination.
//
// The encoding has three clause families:
//
//   - at least one version of each package is chosen;
//   - no two versions of the same package are chosen together (pairwise
//     exclusion, so the two families jointly mean "exactly one");
//   - each constraint (p, v, q, range) becomes the implication
//     x[p,v] -> OR of x[q,w] over the versions w of q matching range. A
//     range no version of q satisfies degenerates to the unit clause
//     "not x[p,v]", outlawing that release outright.
//
// ok == false reports that the backend proved the formula unsatisfiable:
// the constraints admit no valid combination, the same situation in which
// the search strategies come back empty.
func (s *Solver) sat(backend SATSolver) (Combination, bool, error) {
	am := newAtomMap()
	var clauses []Clause

	for _, name := range s.m.names {
		vs := s.m.versions[name]

		ids := make([]int, len(vs))
		choice := make(Clause, len(vs))
		for i, v := range vs {
			ids[i] = am.id(atom{name: name, v: v})
			choice[i] = ids[i]
		}
		clauses = append(clauses, choice)
		clauses = append(clauses, exclusionClauses(ids)...)
	}

	for _, name := range s.m.names {
		for _, v := range s.m.versions[name] {
			for _, con := range s.m.ConstraintsFrom(name, v) {
				impl := Clause{-am.id(atom{name: name, v: v})}
				for _, w := range s.m.versions[con.Target] {
					if con.Allowed.Matches(w) {
						impl = append(impl, am.id(atom{name: con.Target, v: w}))
					}
				}
				clauses = append(clauses, impl)
			}
		}
	}

	if s.l.Level >= logrus.DebugLevel {
		s.l.WithFields(logrus.Fields{
			"variables": am.len(),
			"clauses":   len(clauses),
		}).Debug("Encoded manifest for SAT backend")
	}

	model, ok, err := backend.Solve(am.len(), clauses)
	if err != nil {
		return nil, false, errors.Wrap(err, "SAT backend failed")
	}
	if !ok {
		return nil, false, nil
	}

	combo, err := s.decodeModel(am, model)
	if err != nil {
		return nil, false, err
	}
	return combo, true, nil
}

// decodeModel reads which choice variable is true for each package. The
// exclusion clauses guarantee exactly one per package in any honest model;
// anything else means the backend broke its contract.
func (s *Solver) decodeModel(am *atomMap, model []bool) (Combination, error) {
	if len(model) != am.len()+1 {
		return nil, errors.Errorf("SAT backend returned a model of %v variables, expected %v", len(model)-1, am.len())
	}

	combo := make(Combination, len(s.m.names))
	for _, name := range s.m.names {
		for _, v := range s.m.versions[name] {
			if !model[am.id(atom{name: name, v: v})] {
				continue
			}
			if prev, has := combo[name]; has {
				return nil, errors.Errorf("SAT backend chose both %s and %s for package %q", prev, v, name)
			}
			combo[name] = v
		}
		if _, has := combo[name]; !has {
			return nil, errors.Errorf("SAT backend chose no version for package %q", name)
		}
	}
	return combo, nil
}

// exclusionClauses builds the pairwise conflicts between the variables of
// one package's versions.
//
// Example:
//
//	input:  [1, 2, 3]
//	output: [[-1 -2] [-1 -3] [-2 -3]]
func exclusionClauses(ids []int) []Clause {
	if len(ids) <= 1 {
		return nil
	}

	clauses := make([]Clause, 0, len(ids)*(len(ids)-1)/2)
	for x := 0; x < len(ids)-1; x++ {
		for y := x + 1; y < len(ids); y++ {
			clauses = append(clauses, Clause{-ids[x], -ids[y]})
		}
	}
	return clauses
}
