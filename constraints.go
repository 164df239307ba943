package vpick

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// A Range provides structured limitations on the versions that are
// admissible for a package. It is a pure, total predicate: Matches never
// fails for a well-formed Version.
//
// The notation accepted by ParseRange:
//
//	>=X.Y.Z        inclusive lower bound, unbounded above
//	<N             any version whose major component is strictly below N
//	A.B.C-D.E.F    inclusive bounds, A.B.C <= v <= D.E.F
//
// Exact equality is spelled as a bounded range with identical endpoints.
type Range interface {
	fmt.Stringer
	// Matches indicates if the provided Version is allowed by the Range.
	Matches(Version) bool
}

// ParseRange constructs a Range from its string notation. A string that
// fits none of the supported notations fails with *MalformedRangeError;
// this is a configuration-time failure, never seen mid-search once a
// Manifest has been accepted.
func ParseRange(body string) (Range, error) {
	switch {
	case strings.HasPrefix(body, ">="):
		min, err := ParseVersion(body[2:])
		if err != nil {
			return nil, &MalformedRangeError{Text: body, Reason: "bad lower bound"}
		}
		return minimumRange{min: min, c: compileRange(">=" + min.String())}, nil

	case strings.HasPrefix(body, "<"):
		major, err := strconv.ParseUint(body[1:], 10, 64)
		if err != nil {
			return nil, &MalformedRangeError{Text: body, Reason: "upper bound must be a bare major version"}
		}
		return belowMajorRange{major: major, c: compileRange(fmt.Sprintf("<%d.0.0", major))}, nil

	case strings.Contains(body, "-"):
		parts := strings.SplitN(body, "-", 2)
		lo, err := ParseVersion(parts[0])
		if err != nil {
			return nil, &MalformedRangeError{Text: body, Reason: "bad lower bound"}
		}
		hi, err := ParseVersion(parts[1])
		if err != nil {
			return nil, &MalformedRangeError{Text: body, Reason: "bad upper bound"}
		}
		return boundedRange{lo: lo, hi: hi, c: compileRange(fmt.Sprintf(">=%s <=%s", lo, hi))}, nil
	}

	return nil, &MalformedRangeError{Text: body, Reason: "unrecognized range notation"}
}

// compileRange hands the normalized notation to the semver package. The
// inputs are assembled from already-validated versions, so a failure here
// indicates a bug, not bad input.
func compileRange(body string) *semver.Constraints {
	c, err := semver.NewConstraint(body)
	if err != nil {
		panic(fmt.Sprintf("canary - could not compile validated range %q: %s", body, err))
	}
	return c
}

// minimumRange admits any version at or above its bound.
type minimumRange struct {
	min Version
	c   *semver.Constraints
}

func (r minimumRange) Matches(v Version) bool {
	return r.c.Check(v.sem())
}

func (r minimumRange) String() string {
	return ">=" + r.min.String()
}

// belowMajorRange admits any version whose major component is strictly
// below the bound.
type belowMajorRange struct {
	major uint64
	c     *semver.Constraints
}

func (r belowMajorRange) Matches(v Version) bool {
	return r.c.Check(v.sem())
}

func (r belowMajorRange) String() string {
	return fmt.Sprintf("<%d", r.major)
}

// boundedRange admits versions between its endpoints, inclusive on both
// sides. Endpoints in the wrong order yield a range that admits nothing.
type boundedRange struct {
	lo, hi Version
	c      *semver.Constraints
}

func (r boundedRange) Matches(v Version) bool {
	return r.c.Check(v.sem())
}

func (r boundedRange) String() string {
	return r.lo.String() + "-" + r.hi.String()
}

// A Constraint is the rule that one specific package release imposes on the
// version chosen for another package: if Depender is resolved to AtVersion,
// then whatever version is chosen for Target must match Allowed.
//
// Constraints are declared only for releases that actually depend on
// something. The absence of a constraint between two packages restricts
// nothing.
type Constraint struct {
	Depender  string
	AtVersion Version
	Target    string
	Allowed   Range
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s %s -> %s %s", c.Depender, c.AtVersion, c.Target, c.Allowed)
}
