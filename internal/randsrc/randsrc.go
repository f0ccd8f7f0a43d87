// Package randsrc hands out independently seeded random streams to the
// simulator's sub-components, so Traffic and Workload never perturb one
// another's draws despite sharing one top-level seed.
package randsrc

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Source wraps the top-level seed from which every component stream is
// derived (config key "seed"; 0 means derive it from the wall clock).
type Source struct {
	seed int64
}

// New wraps a top-level seed. A seed of 0 is replaced here, once, by the
// current wall-clock time in nanoseconds.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{seed: seed}
}

// Child derives an independent *rand.Rand stream for one named component
// (e.g. "traffic", "workload"). Distinct names always yield distinct
// streams for the same top-level seed, grounded in the teacher's own
// rand.New(rand.NewSource(seed)) idiom (load-generator's jobs.go, warmup.go),
// generalized here to multiple named sub-streams instead of one global one.
func (s *Source) Child(name string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	return rand.New(rand.NewSource(s.seed ^ int64(h.Sum64())))
}
