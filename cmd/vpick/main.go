// Command vpick is a helper utility for running command-line resolves with
// the vpick library.
//
// The manifest is declared in a TOML file: a list of packages with their
// available versions, and the constraints specific releases impose.
//
//	[[package]]
//	name = "A"
//	versions = ["1.0.0", "2.0.0", "3.0.0"]
//
//	[[constraint]]
//	package = "A"
//	version = "3.0.0"
//	target  = "B"
//	range   = ">=2.0.0"
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vpick/vpick"
)

var (
	optManifest = flag.String("manifest", "", "Path to the TOML manifest file")
	optStrategy = flag.String("strategy", "incremental", "Resolution strategy: exhaustive, incremental, or sat")
	optReverse  = flag.Bool("reverse", false, "Traverse packages in reverse declaration order (incremental only)")
	optWorkers  = flag.Int("workers", 0, "Concurrent candidate checkers (exhaustive only)")
	optVerbose  = flag.Bool("v", false, "Log the solver's progress")
)

var usage = `Usage:  %s -manifest <manifest.toml> [-strategy <name>] [-reverse] [-workers <n>] [-v]

Resolves a package version manifest and prints every valid combination
found (or the single model, with the sat strategy).

Finding no valid combination is a normal outcome, not a failure.

`

// manifestFile mirrors the TOML schema.
type manifestFile struct {
	Packages    []packageDecl    `toml:"package"`
	Constraints []constraintDecl `toml:"constraint"`
}

type packageDecl struct {
	Name     string   `toml:"name"`
	Versions []string `toml:"versions"`
}

type constraintDecl struct {
	Package string `toml:"package"`
	Version string `toml:"version"`
	Target  string `toml:"target"`
	Range   string `toml:"range"`
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	l := logrus.New()
	if *optVerbose {
		l.Level = logrus.DebugLevel
	} else {
		l.Level = logrus.WarnLevel
	}

	if *optManifest == "" {
		l.Fatal("-manifest flag is required")
	}

	m, err := loadManifest(*optManifest)
	if err != nil {
		l.Fatal(err)
	}

	opts, err := solveOpts()
	if err != nil {
		l.Fatal(err)
	}
	if *optReverse {
		names := m.Packages()
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
		opts.Order = names
	}

	res, err := vpick.NewSolver(m, l).Solve(opts)
	if err != nil {
		l.Fatal(err)
	}

	report(res, opts.Strategy)
}

func solveOpts() (vpick.SolveOpts, error) {
	opts := vpick.SolveOpts{Workers: *optWorkers}
	switch *optStrategy {
	case "exhaustive":
		opts.Strategy = vpick.StrategyExhaustive
	case "incremental":
		opts.Strategy = vpick.StrategyIncremental
	case "sat":
		opts.Strategy = vpick.StrategySAT
	default:
		return opts, errors.Errorf("unknown strategy %q", *optStrategy)
	}
	return opts, nil
}

func loadManifest(path string) (*vpick.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manifest file")
	}

	var mf manifestFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrap(err, "failed to decode manifest file")
	}

	pkgs := make([]vpick.PackageVersions, 0, len(mf.Packages))
	for _, p := range mf.Packages {
		pv := vpick.PackageVersions{Name: p.Name}
		for _, body := range p.Versions {
			v, err := vpick.ParseVersion(body)
			if err != nil {
				return nil, errors.Wrapf(err, "package %q", p.Name)
			}
			pv.Versions = append(pv.Versions, v)
		}
		pkgs = append(pkgs, pv)
	}

	cons := make([]vpick.Constraint, 0, len(mf.Constraints))
	for _, c := range mf.Constraints {
		v, err := vpick.ParseVersion(c.Version)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint on %q", c.Package)
		}
		r, err := vpick.ParseRange(c.Range)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint on %q", c.Package)
		}
		cons = append(cons, vpick.Constraint{
			Depender:  c.Package,
			AtVersion: v,
			Target:    c.Target,
			Allowed:   r,
		})
	}

	return vpick.NewManifest(pkgs, cons)
}

func report(res vpick.Result, strategy vpick.Strategy) {
	if !res.Satisfiable {
		fmt.Println("no valid combinations")
		return
	}

	for _, c := range res.Combinations {
		fmt.Println(c)
	}
	if strategy == vpick.StrategyIncremental {
		fmt.Printf("%d combinations (%d candidates examined)\n", len(res.Combinations), res.Examined)
	} else {
		fmt.Printf("%d combinations\n", len(res.Combinations))
	}
}
