/*
Package vpick resolves package version constraints: given the versions
available for a set of packages, and the constraints each release imposes
on the others, it finds the combinations that assign every package exactly
one version without violating anything.

Three interchangeable strategies work over the same Manifest contract:

  - exhaustive enumeration of the full cross-product, the naive oracle;
  - incremental depth-first search with pruning, whose traversal order is
    caller-controlled to study how ordering changes the work done;
  - reduction to boolean satisfiability, delegated to a pluggable SAT
    backend (PicoSAT by default).

A manifest with no valid combination is a normal outcome, reported as an
empty result or an unsatisfiable verdict - never as an error.
*/
package vpick
