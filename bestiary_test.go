package vpick

import (
	"fmt"
	"strings"
)

// mkv - make a version.
//
// Panics on malformed input - don't want bad test data at this level.
func mkv(body string) Version {
	v, err := ParseVersion(body)
	if err != nil {
		panic(fmt.Sprintf("Error when converting '%s' into a version: %s", body, err))
	}
	return v
}

// mkr - make a range.
func mkr(body string) Range {
	r, err := ParseRange(body)
	if err != nil {
		panic(fmt.Sprintf("Error when converting '%s' into a range: %s", body, err))
	}
	return r
}

// mkpv - make package versions.
//
// Splits the input on spaces; first element is the package name, the rest
// are its available versions, in order.
func mkpv(info string) PackageVersions {
	s := strings.Fields(info)
	if len(s) < 2 {
		panic(fmt.Sprintf("Malformed package info string '%s'", info))
	}

	pv := PackageVersions{Name: s[0]}
	for _, body := range s[1:] {
		pv.Versions = append(pv.Versions, mkv(body))
	}
	return pv
}

// mkc - make a constraint.
//
// Splits the input into the quadruple of depender name, depender version,
// target name, and target range: "A 3.0.0 B >=2.0.0".
func mkc(info string) Constraint {
	s := strings.Fields(info)
	if len(s) != 4 {
		panic(fmt.Sprintf("Malformed constraint info string '%s'", info))
	}

	return Constraint{
		Depender:  s[0],
		AtVersion: mkv(s[1]),
		Target:    s[2],
		Allowed:   mkr(s[3]),
	}
}

// mkm - make a manifest, panicking on anything malformed.
func mkm(pkgs []string, cons ...string) *Manifest {
	pvs := make([]PackageVersions, len(pkgs))
	for i, p := range pkgs {
		pvs[i] = mkpv(p)
	}
	cs := make([]Constraint, len(cons))
	for i, c := range cons {
		cs[i] = mkc(c)
	}

	m, err := NewManifest(pvs, cs)
	if err != nil {
		panic(fmt.Sprintf("Error building manifest: %s", err))
	}
	return m
}

// mkcomb - make a combination from alternating name/version pairs:
// "A 3.0.0 B 3.0.0 C 2.0.0".
func mkcomb(info string) Combination {
	s := strings.Fields(info)
	if len(s)%2 != 0 {
		panic(fmt.Sprintf("Malformed combination info string '%s'", info))
	}

	c := make(Combination, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c[s[i]] = mkv(s[i+1])
	}
	return c
}

type solveFixture struct {
	// name of the fixture, for reporting
	n string
	// package declarations, in order
	pkgs []string
	// constraint declarations
	cons []string
	// expected number of valid combinations
	count int
	// expected combinations; nil means only count is checked
	r []string
	// expected examined counts for declaration order and reversed order;
	// zero means the count is not pinned for that order
	fwdExamined, revExamined int
	// if nonzero, examined must stay at or below this for every order
	maxExamined int
}

func (fix solveFixture) manifest() *Manifest {
	return mkm(fix.pkgs, fix.cons...)
}

func (fix solveFixture) expected() []Combination {
	if fix.r == nil {
		return nil
	}
	combos := make([]Combination, len(fix.r))
	for i, info := range fix.r {
		combos[i] = mkcomb(info)
	}
	return combos
}

var solveFixtures = []solveFixture{
	{
		n: "no constraints at all",
		pkgs: []string{
			"A 1.0.0 2.0.0 3.0.0",
			"B 1.0.0 2.0.0 3.0.0",
			"C 1.0.0 2.0.0",
		},
		count: 18,
	},
	{
		n: "interlocking chain",
		pkgs: []string{
			"A 3.0.0 2.0.0 1.0.0",
			"B 3.0.0 2.0.0 1.0.0",
			"C 2.0.0 1.0.0",
		},
		cons: []string{
			"A 3.0.0 B 2.0.0-3.0.0",
			"A 3.0.0 C 2.0.0-2.0.0",
			"A 2.0.0 B 2.0.0-2.0.0",
			"A 2.0.0 C 1.0.0-2.0.0",
			"A 1.0.0 B 1.0.0-1.0.0",
			"A 1.0.0 C 1.0.0-1.0.0",
			"B 3.0.0 C 2.0.0-2.0.0",
			"B 2.0.0 C 1.0.0-1.0.0",
			"B 1.0.0 C 1.0.0-1.0.0",
		},
		count: 3,
		r: []string{
			"A 3.0.0 B 3.0.0 C 2.0.0",
			"A 2.0.0 B 2.0.0 C 1.0.0",
			"A 1.0.0 B 1.0.0 C 1.0.0",
		},
		fwdExamined: 11,
		revExamined: 9,
		maxExamined: 18,
	},
	{
		n: "single package",
		pkgs: []string{
			"A 1.0.0 2.0.0",
		},
		count: 2,
		r:     []string{"A 1.0.0", "A 2.0.0"},
	},
	{
		n: "exact pin chain",
		pkgs: []string{
			"A 1.0.0 2.0.0",
			"B 1.0.0 2.0.0",
			"C 1.0.0 2.0.0",
		},
		cons: []string{
			"A 2.0.0 B 2.0.0-2.0.0",
			"A 1.0.0 B 1.0.0-1.0.0",
			"B 2.0.0 C 2.0.0-2.0.0",
			"B 1.0.0 C <2",
		},
		count: 2,
		r: []string{
			"A 1.0.0 B 1.0.0 C 1.0.0",
			"A 2.0.0 B 2.0.0 C 2.0.0",
		},
	},
	{
		n: "constraint flows against declaration order",
		pkgs: []string{
			"A 1.0.0",
			"B 1.0.0 2.0.0",
		},
		cons: []string{
			"B 2.0.0 A >=2.0.0",
		},
		count: 1,
		r:     []string{"A 1.0.0 B 1.0.0"},
	},
	{
		n: "no possible combination",
		pkgs: []string{
			"A 1.0.0",
			"B 1.0.0",
		},
		cons: []string{
			"A 1.0.0 B >=2.0.0",
		},
		count: 0,
		r:     []string{},
	},
	{
		n: "minimum bound trims the tail",
		pkgs: []string{
			"A 1.0.0 2.0.0 3.0.0",
			"B 1.0.0 2.0.0 3.0.0",
		},
		cons: []string{
			"A 3.0.0 B >=3.0.0",
			"A 2.0.0 B >=2.0.0",
		},
		count: 6,
	},
}

// combosEqual compares two combination sets without regard to order.
func combosEqual(a, b []Combination) bool {
	if len(a) != len(b) {
		return false
	}

	matched := make([]bool, len(b))
outer:
	for _, ca := range a {
		for i, cb := range b {
			if !matched[i] && ca.Equal(cb) {
				matched[i] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// combosContain reports whether set contains c.
func combosContain(set []Combination, c Combination) bool {
	for _, o := range set {
		if o.Equal(c) {
			return true
		}
	}
	return false
}

// reversed returns a reversed copy of a name list.
func reversed(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[len(names)-1-i] = name
	}
	return out
}
