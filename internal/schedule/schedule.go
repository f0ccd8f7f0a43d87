// Package schedule implements the Impartial (first-come, best-fit)
// scheduling policy: one vacancy Queue per platform element, an outer loop
// advancing a candidate common start time, and a greedy inner assignment of
// workload elements to platform elements by kind.
package schedule

import (
	"math"
	"sort"

	"csb/streamer/internal/platform"
	"csb/streamer/internal/queue"
	"csb/streamer/internal/workload"
	"csb/streamer/internal/xerrors"
)

// Mapping is one (workload element index -> platform element id) pairing of
// an Accept decision.
type Mapping struct {
	WorkloadIndex int
	PlatformID    int
}

// Decision is the outcome of scheduling one job: a feasible simultaneous
// start time, its derived finish time, and the element mapping.
type Decision struct {
	Start, Finish float64
	Mapping       []Mapping
}

// Impartial is a FIFO-over-arrivals, spatially opportunistic scheduler: it
// never reorders the input stream but picks the earliest feasible
// simultaneous start across the kinds a job's pattern requires.
type Impartial struct {
	elements []platform.Element
	queues   []*queue.Queue
}

// New builds an Impartial scheduler with one Queue per platform element,
// parallel to the element vector.
func New(elements []platform.Element) *Impartial {
	queues := make([]*queue.Queue, len(elements))
	for i, e := range elements {
		queues[i] = queue.New(e.Capacity())
	}
	return &Impartial{elements: elements, queues: queues}
}

// Tick forwards time to every element queue, letting them drop intervals
// that can no longer affect future vacancy searches.
func (s *Impartial) Tick(time float64) {
	for _, q := range s.queues {
		q.Step(time)
	}
}

// Push computes a start/finish/mapping decision for a job arriving at
// arrival and requiring pattern. It fails with a Scheduling error when the
// platform cannot supply the pattern's elements: it has no elements at all,
// lacks a kind the pattern requires, or has fewer elements of a kind than
// the pattern needs.
func (s *Impartial) Push(arrival float64, pattern *workload.Pattern) (*Decision, error) {
	hosts := s.elements
	guests := pattern.Elements
	have := len(hosts)
	need := len(guests)
	length := pattern.Duration()

	if have == 0 {
		return nil, xerrors.New(xerrors.Scheduling, "failed to allocate resources for a job")
	}

	start := arrival

	for {
		intervals := make([]queue.Interval, have)
		for i, q := range s.queues {
			intervals[i] = q.Next(start, length)
		}

		order := make([]int, have)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return intervals[order[a]].Start < intervals[order[b]].Start
		})
		start = intervals[order[0]].Start

		found := make([]int, need)
		for i := range found {
			found[i] = -1
		}
		taken := make([]bool, have)
		restart := false

	assign:
		for i := 0; i < need; i++ {
			for _, j := range order {
				if taken[j] || intervals[j].Start != start {
					continue
				}
				if guests[i].Accept(hosts[j]) {
					found[i] = j
					taken[j] = true
					continue assign
				}
			}

			advanced := false
			if len(order) > 1 {
				for _, j := range order[1:] {
					if intervals[j].Start > start {
						start = intervals[j].Start
						advanced = true
						break
					}
				}
			}
			if !advanced {
				return nil, xerrors.New(xerrors.Scheduling, "failed to allocate resources for a job")
			}
			restart = true
			break assign
		}

		if restart {
			continue
		}

		start = math.Max(start, math.Nextafter(arrival, math.Inf(1)))
		finish := start + length
		mapping := make([]Mapping, need)
		for i := 0; i < need; i++ {
			j := found[i]
			s.queues[j].Push(start, finish)
			mapping[i] = Mapping{WorkloadIndex: i, PlatformID: hosts[j].ID}
		}
		return &Decision{Start: start, Finish: finish, Mapping: mapping}, nil
	}
}
