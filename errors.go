package vpick

import (
	"bytes"
	"fmt"
)

// MalformedRangeError indicates that a version or range string did not fit
// any notation the parser understands. It names the offending text.
type MalformedRangeError struct {
	Text   string
	Reason string
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("Malformed version range %q: %s.", e.Text, e.Reason)
}

// UnknownPackageError indicates a lookup of a package name the manifest has
// no declaration for.
type UnknownPackageError struct {
	Name string
}

func (e *UnknownPackageError) Error() string {
	return fmt.Sprintf("Package %q is not declared in the manifest.", e.Name)
}

// MalformedManifestError indicates a manifest that failed referential
// integrity checks at construction. Unlike most errors it is deliberately
// exhaustive: every problem found is enumerated, not just the first, so
// that one round trip shows the caller everything wrong with their input.
type MalformedManifestError struct {
	Problems []string
}

func (e *MalformedManifestError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("Malformed manifest: %s.", e.Problems[0])
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Malformed manifest (%v problems):", len(e.Problems))
	for _, p := range e.Problems {
		fmt.Fprintf(&buf, "\n\t%s", p)
	}
	return buf.String()
}

// BadOptsFailure indicates an invalid set of solve options - opts problems
// are caller bugs, reported before any search work begins.
type BadOptsFailure struct {
	msg string
}

func badOpts(format string, args ...interface{}) *BadOptsFailure {
	return &BadOptsFailure{msg: fmt.Sprintf(format, args...)}
}

func (e *BadOptsFailure) Error() string {
	return e.msg
}
