package workload

import (
	"math/rand"

	"csb/streamer/internal/xerrors"
)

// Random holds an ordered catalog of patterns and, on each arrival, returns
// one drawn uniformly at random. The arrival time is accepted to match the
// system.Workload interface's Next(arrival) hook but is otherwise ignored, leaving room
// for future arrival-aware policies without changing the call site.
type Random struct {
	patterns []*Pattern
	rng      *rand.Rand
}

// NewRandom builds a catalog sampler, failing if the catalog is empty.
func NewRandom(patterns []*Pattern, rng *rand.Rand) (*Random, error) {
	if len(patterns) == 0 {
		return nil, xerrors.New(xerrors.Configuration, "at least one workload pattern is required")
	}
	return &Random{patterns: patterns, rng: rng}, nil
}

// Next draws one pattern uniformly at random from the catalog.
func (r *Random) Next(arrival float64) (*Pattern, error) {
	return r.patterns[r.rng.Intn(len(r.patterns))], nil
}
