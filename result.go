package vpick

import (
	"bytes"
	"fmt"
	"sort"
)

// A Combination assigns exactly one chosen Version to every package in a
// Manifest. Combinations returned by the resolvers are freshly allocated;
// they never alias the Manifest or any internal search state.
type Combination map[string]Version

// Equal reports whether two combinations assign identical versions to
// identical package sets.
func (c Combination) Equal(o Combination) bool {
	if len(c) != len(o) {
		return false
	}
	for name, v := range c {
		ov, has := o[name]
		if !has || ov != v {
			return false
		}
	}
	return true
}

// clone produces an independent copy. Used when a search's mutable partial
// assignment becomes a reported result.
func (c Combination) clone() Combination {
	out := make(Combination, len(c))
	for name, v := range c {
		out[name] = v
	}
	return out
}

func (c Combination) String() string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for i, name := range names {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s %s", name, c[name])
	}
	return buf.String()
}

// A Result is what Solver.Solve hands back, whichever strategy ran.
//
// An empty Combinations slice (or Satisfiable == false) is the normal
// no-solution outcome, not an error: it means the manifest's constraints
// admit no globally consistent assignment.
type Result struct {
	// Combinations holds every valid combination found. The SAT strategy
	// contributes at most one - the model the backend produced.
	Combinations []Combination

	// Examined counts the candidate search states the incremental strategy
	// visited. Zero for the other strategies.
	Examined int

	// Satisfiable reports whether any valid combination exists.
	Satisfiable bool
}
