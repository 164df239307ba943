package vpick

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// A Version identifies a single release of a package as an ordered
// (major, minor, patch) triple. Versions are immutable values; they are
// comparable with ==, and usable as map keys.
//
// Ordering is total: compare major, then minor, then patch. The actual
// comparison is delegated to the semver package rather than reimplemented
// here.
type Version struct {
	major, minor, patch uint64
}

// NewVersion constructs a Version directly from its three components.
func NewVersion(major, minor, patch uint64) Version {
	return Version{major: major, minor: minor, patch: patch}
}

// ParseVersion parses a bare "X.Y.Z" version identifier.
//
// All three components are required, and prerelease or build metadata
// suffixes are not part of the notation - "1.2.3-rc1" is rejected, because
// the hyphen belongs to the range grammar, not the version grammar.
func ParseVersion(body string) (Version, error) {
	sv, err := semver.StrictNewVersion(body)
	if err != nil {
		return Version{}, &MalformedRangeError{Text: body, Reason: err.Error()}
	}
	if sv.Prerelease() != "" || sv.Metadata() != "" {
		return Version{}, &MalformedRangeError{
			Text:   body,
			Reason: "version identifiers are bare major.minor.patch triples",
		}
	}

	return Version{major: sv.Major(), minor: sv.Minor(), patch: sv.Patch()}, nil
}

// Major returns the major component of the version.
func (v Version) Major() uint64 { return v.major }

// Minor returns the minor component of the version.
func (v Version) Minor() uint64 { return v.minor }

// Patch returns the patch component of the version.
func (v Version) Patch() uint64 { return v.patch }

// Compare returns -1, 0, or 1 as v sorts before, equal to, or after o.
func (v Version) Compare(o Version) int {
	return v.sem().Compare(o.sem())
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// sem converts to the underlying semver representation for comparison and
// range matching.
func (v Version) sem() *semver.Version {
	return semver.New(v.major, v.minor, v.patch, "", "")
}
