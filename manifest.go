package vpick

import "fmt"

// atom is a single concrete (package, version) pairing - one candidate
// choice the resolvers can make.
type atom struct {
	name string
	v    Version
}

func (a atom) String() string {
	return fmt.Sprintf("%s %s", a.name, a.v)
}

// PackageVersions declares one package and the versions available for it,
// in the order they should be tried.
type PackageVersions struct {
	Name     string
	Versions []Version
}

// A Manifest is the full, read-only declaration of a resolution problem:
// which packages exist, which versions each has, and the constraints each
// release imposes on the others. All three resolution strategies consume
// the same Manifest and only ever read it.
//
// A Manifest is validated when built. Once NewManifest has accepted the
// input, no configuration error can surface mid-search.
type Manifest struct {
	names    []string
	versions map[string][]Version
	deps     map[atom][]Constraint
}

// NewManifest builds and validates a Manifest from package declarations
// and constraints. Declaration order is preserved; it fixes the default
// traversal order of the resolvers and the order of reported combinations.
//
// Validation is exhaustive: every dangling depender, depender version, or
// target named by a constraint is collected, along with duplicate package
// names, duplicate versions, and empty version lists, and all of them are
// reported together in a single *MalformedManifestError.
func NewManifest(pkgs []PackageVersions, cons []Constraint) (*Manifest, error) {
	m := &Manifest{
		versions: make(map[string][]Version, len(pkgs)),
		deps:     make(map[atom][]Constraint),
	}

	var problems []string
	for _, p := range pkgs {
		if _, dupe := m.versions[p.Name]; dupe {
			problems = append(problems, fmt.Sprintf("package %q is declared more than once", p.Name))
			continue
		}
		if len(p.Versions) == 0 {
			problems = append(problems, fmt.Sprintf("package %q declares no versions", p.Name))
		}

		seen := make(map[Version]bool, len(p.Versions))
		for _, v := range p.Versions {
			if seen[v] {
				problems = append(problems, fmt.Sprintf("package %q declares version %s more than once", p.Name, v))
			}
			seen[v] = true
		}

		m.names = append(m.names, p.Name)
		m.versions[p.Name] = p.Versions
	}

	for _, c := range cons {
		ok := true
		if c.Allowed == nil {
			problems = append(problems, fmt.Sprintf("constraint %q has no range", c))
			ok = false
		}
		if !m.hasPackage(c.Depender) {
			problems = append(problems, fmt.Sprintf("constraint %q names undeclared depender %q", c, c.Depender))
			ok = false
		} else if !m.hasAtom(atom{name: c.Depender, v: c.AtVersion}) {
			problems = append(problems, fmt.Sprintf("constraint %q names undeclared version %s of %q", c, c.AtVersion, c.Depender))
			ok = false
		}
		if !m.hasPackage(c.Target) {
			problems = append(problems, fmt.Sprintf("constraint %q names undeclared target %q", c, c.Target))
			ok = false
		}
		// Validity is defined over pairs of distinct packages, so a
		// self-targeting constraint could never be checked.
		if c.Depender == c.Target {
			problems = append(problems, fmt.Sprintf("constraint %q targets its own package", c))
			ok = false
		}
		if !ok {
			continue
		}

		a := atom{name: c.Depender, v: c.AtVersion}
		m.deps[a] = append(m.deps[a], c)
	}

	if len(problems) > 0 {
		return nil, &MalformedManifestError{Problems: problems}
	}
	return m, nil
}

// Packages returns the declared package names, in declaration order. The
// returned slice is a copy; callers may reorder it freely, which is the
// intended way of producing alternate traversal orders for the incremental
// strategy.
func (m *Manifest) Packages() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// VersionsOf returns the declared versions of a package, in declaration
// order. It fails with *UnknownPackageError if the package is absent.
func (m *Manifest) VersionsOf(name string) ([]Version, error) {
	vs, has := m.versions[name]
	if !has {
		return nil, &UnknownPackageError{Name: name}
	}

	out := make([]Version, len(vs))
	copy(out, vs)
	return out, nil
}

// ConstraintsFrom returns the constraints that a specific release of a
// package imposes on other packages. An empty result means the release is
// unconstrained - it coexists with anything - not that all other packages
// are forbidden.
func (m *Manifest) ConstraintsFrom(name string, v Version) []Constraint {
	return m.deps[atom{name: name, v: v}]
}

func (m *Manifest) hasPackage(name string) bool {
	_, has := m.versions[name]
	return has
}

func (m *Manifest) hasAtom(a atom) bool {
	for _, v := range m.versions[a.name] {
		if v == a.v {
			return true
		}
	}
	return false
}

// size returns the total number of complete combinations the manifest
// admits before any constraint is applied - the exhaustive strategy's
// fixed cost.
func (m *Manifest) size() int {
	n := 1
	for _, name := range m.names {
		n *= len(m.versions[name])
	}
	return n
}
