package vpick

import (
	"github.com/sirupsen/logrus"
)

// searchState is the mutable state of one incremental search: the packages
// not yet assigned, the partial combination built so far, and a counter of
// how many candidate states the search has visited. It is created fresh
// per top-level call, mutated in place along the single DFS path, and
// discarded when the call returns - never shared between searches.
type searchState struct {
	remaining []string
	partial   Combination
	examined  int
}

// incremental resolves by depth-first backtracking. At each step it takes
// the next package in order, tentatively assigns each of its versions in
// turn, and checks the new assignment against every package already in the
// partial combination - in both directions, since either side of a pair
// may be the one declaring the constraint. Incompatible assignments are
// discarded immediately, pruning their entire subtree; compatible ones are
// recursed into. A state with nothing remaining is a complete valid
// combination.
//
// The traversal order is the caller's choice precisely because it changes
// the examined count without changing the result set: a well-chosen order
// fails earlier and prunes more. Termination is structural - remaining
// strictly shrinks on every recursion and version lists are finite.
func (s *Solver) incremental(order []string) ([]Combination, int, error) {
	order, err := s.searchOrder(order)
	if err != nil {
		return nil, 0, err
	}

	st := &searchState{
		remaining: order,
		partial:   make(Combination, len(order)),
	}

	var combos []Combination
	s.search(st, &combos)

	if s.l.Level >= logrus.InfoLevel {
		s.l.WithFields(logrus.Fields{
			"examined": st.examined,
			"found":    len(combos),
		}).Info("Incremental search complete")
	}
	return combos, st.examined, nil
}

// search visits one candidate state. Every call - the empty root state,
// each surviving partial, and each completed combination - counts as one
// examined candidate.
func (s *Solver) search(st *searchState, combos *[]Combination) {
	st.examined++

	if len(st.remaining) == 0 {
		if s.l.Level >= logrus.DebugLevel {
			s.l.WithFields(logrus.Fields{
				"combination": st.partial,
			}).Debug("Recording complete combination")
		}
		*combos = append(*combos, st.partial.clone())
		return
	}

	rest := st.remaining
	name := rest[0]
	st.remaining = rest[1:]

	for _, v := range s.m.versions[name] {
		st.partial[name] = v

		if !s.extendable(st.partial, name) {
			if s.l.Level >= logrus.DebugLevel {
				s.l.WithFields(logrus.Fields{
					"name":    name,
					"version": v,
				}).Debug("Pruning incompatible assignment")
			}
			continue
		}

		s.search(st, combos)
	}

	delete(st.partial, name)
	st.remaining = rest
}

// extendable reports whether the newly assigned package coexists with
// every package already in the partial combination, checking constraints
// flowing both ways across each pair.
func (s *Solver) extendable(partial Combination, name string) bool {
	for other := range partial {
		if other == name {
			continue
		}
		if !s.m.Compatible(partial, name, other) || !s.m.Compatible(partial, other, name) {
			return false
		}
	}
	return true
}

// searchOrder validates a caller-supplied traversal order, or defaults to
// declaration order. Anything other than a permutation of the manifest's
// packages is a caller bug, caught before any search work begins.
func (s *Solver) searchOrder(order []string) ([]string, error) {
	if order == nil {
		return s.m.Packages(), nil
	}

	if len(order) != len(s.m.names) {
		return nil, badOpts("Order lists %v packages, manifest declares %v.", len(order), len(s.m.names))
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		if !s.m.hasPackage(name) {
			return nil, &UnknownPackageError{Name: name}
		}
		if seen[name] {
			return nil, badOpts("Order lists package %q more than once.", name)
		}
		seen[name] = true
	}

	out := make([]string, len(order))
	copy(out, order)
	return out, nil
}
