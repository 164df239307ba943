package vpick

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// exhaustive enumerates the entire cross-product of version choices and
// keeps the combinations that pass ValidCombination. No early termination
// and no ordering sensitivity: candidate i is the mixed-radix decoding of
// i over the per-package version counts, with the last-declared package
// varying fastest, so the output order is fixed by the manifest alone.
//
// Every candidate is independent of every other, so with workers > 1 the
// index space is split into contiguous chunks checked concurrently. The
// chunks are re-joined in index order; the result is identical to the
// serial loop, only faster.
func (s *Solver) exhaustive(workers int) []Combination {
	total := s.m.size()

	if s.l.Level >= logrus.DebugLevel {
		s.l.WithFields(logrus.Fields{
			"candidates": total,
			"workers":    workers,
		}).Debug("Beginning exhaustive enumeration")
	}

	if workers < 2 {
		return s.exhaustiveRange(0, total)
	}
	if workers > total {
		workers = total
	}

	chunks := make([][]Combination, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * total / workers
		hi := (w + 1) * total / workers

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			chunks[w] = s.exhaustiveRange(lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	var combos []Combination
	for _, chunk := range chunks {
		combos = append(combos, chunk...)
	}
	return combos
}

// exhaustiveRange checks the candidates with indices in [lo, hi).
func (s *Solver) exhaustiveRange(lo, hi int) []Combination {
	var combos []Combination
	for i := lo; i < hi; i++ {
		c := s.candidate(i)
		if s.m.ValidCombination(c) {
			combos = append(combos, c)
		}
	}
	return combos
}

// candidate decodes a candidate index into a complete Combination.
func (s *Solver) candidate(i int) Combination {
	c := make(Combination, len(s.m.names))
	for j := len(s.m.names) - 1; j >= 0; j-- {
		name := s.m.names[j]
		vs := s.m.versions[name]
		c[name] = vs[i%len(vs)]
		i /= len(vs)
	}
	return c
}
