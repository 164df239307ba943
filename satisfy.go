package vpick

// Compatible reports whether the constraints that a's assigned version
// imposes on b are satisfied by b's assigned version in c.
//
// The predicate is directional - it inspects only constraints *from* a.
// Callers wanting the symmetric judgment call it in both directions, which
// is exactly what the resolvers do. If either package has no assignment in
// c there is nothing to violate, so the answer is true.
//
// A release that names b in none of its constraints restricts b not at
// all; only an explicit constraint whose range excludes b's assignment
// makes a pair incompatible.
func (m *Manifest) Compatible(c Combination, a, b string) bool {
	va, has := c[a]
	if !has {
		return true
	}
	vb, has := c[b]
	if !has {
		return true
	}

	for _, con := range m.ConstraintsFrom(a, va) {
		if con.Target != b {
			continue
		}
		if !con.Allowed.Matches(vb) {
			return false
		}
	}
	return true
}

// ValidCombination reports whether c violates no constraint: for every
// ordered pair of distinct packages assigned in c, Compatible must hold.
//
// This is the authoritative definition of validity. Every strategy -
// exhaustive, incremental, and the SAT encoding - must produce results
// consistent with it, and the test suite holds them to that.
func (m *Manifest) ValidCombination(c Combination) bool {
	for a := range c {
		for b := range c {
			if a == b {
				continue
			}
			if !m.Compatible(c, a, b) {
				return false
			}
		}
	}
	return true
}
