package system

import (
	"container/heap"

	"csb/streamer/internal/platform"
	"csb/streamer/internal/profile"
	"csb/streamer/internal/schedule"
	"csb/streamer/internal/traffic"
	"csb/streamer/internal/workload"
	"csb/streamer/internal/xerrors"
)

// Workload produces the pattern for a job arriving at the given time.
// workload.Random satisfies this.
type Workload interface {
	Next(arrival float64) (*workload.Pattern, error)
}

// History tallies how many jobs have reached each lifecycle stage.
type History struct {
	Arrived, Started, Finished int
}

func (h *History) account(kind EventKind) {
	switch kind {
	case Arrived:
		h.Arrived++
	case Started:
		h.Started++
	case Finished:
		h.Finished++
	}
}

// System is the simulation core: a Traffic stream and Workload generator
// feeding an Impartial scheduler and a Thermal platform, driven one event
// at a time through a shared min-heap event queue.
type System struct {
	platform *platform.Thermal
	schedule *schedule.Impartial
	traffic  traffic.Traffic
	workload Workload

	queue   eventQueue
	history History
	nextID  int
}

// New wires a System over an already-constructed platform, scheduler,
// traffic stream and workload generator.
func New(plat *platform.Thermal, sched *schedule.Impartial, tr traffic.Traffic, wl Workload) *System {
	return &System{
		platform: plat,
		schedule: sched,
		traffic:  tr,
		workload: wl,
	}
}

// History returns a snapshot of the lifecycle counters observed so far.
func (s *System) History() History {
	return s.history
}

// QueueDepth reports the number of events currently pending in the event
// queue, for callers that want to export it (e.g. a metrics gauge).
func (s *System) QueueDepth() int {
	return s.queue.Len()
}

// tick pulls at most one new arrival into the event queue. It mirrors the
// race between the traffic stream's next candidate arrival and the
// earliest already-queued event: an arrival is admitted only when the
// queue is empty or the candidate strictly precedes the queue's head. This
// keeps job creation as lazy as possible, generating a workload pattern
// only once its arrival is certain to be the next thing that happens.
func (s *System) tick() error {
	candidate, err := s.traffic.Peek()
	if err != nil {
		return xerrors.Wrap(xerrors.Modeling, err, "peek traffic arrival")
	}

	if head, ok := s.queue.peek(); ok && !(candidate < head.Time) {
		return nil
	}

	arrival, err := s.traffic.Next()
	if err != nil {
		return xerrors.Wrap(xerrors.Modeling, err, "pull traffic arrival")
	}

	pattern, err := s.workload.Next(arrival)
	if err != nil {
		return xerrors.Wrap(xerrors.Dataset, err, "generate workload pattern")
	}

	job := Job{ID: s.nextID, Arrival: arrival, Pattern: pattern}
	s.nextID++

	heap.Push(&s.queue, Event{Time: job.Arrival, Kind: Arrived, Job: job})

	decision, err := s.schedule.Push(job.Arrival, job.Pattern)
	if err != nil {
		return err
	}

	mapping := make([]platform.Mapping, len(decision.Mapping))
	for i, m := range decision.Mapping {
		mapping[i] = platform.Mapping{WorkloadIndex: m.WorkloadIndex, PlatformID: m.PlatformID}
	}
	s.platform.Push(job.Pattern, decision.Start, mapping)

	heap.Push(&s.queue, Event{Time: decision.Start, Kind: Started, Job: job})
	heap.Push(&s.queue, Event{Time: decision.Finish, Kind: Finished, Job: job})
	return nil
}

// Next advances the simulation by exactly one event, returning the event
// along with the power and temperature profiles accumulated since the
// previous call. Both profiles are nil only when err is non-nil.
func (s *System) Next() (Event, *profile.Profile, *profile.Profile, error) {
	if err := s.tick(); err != nil {
		return Event{}, nil, nil, err
	}

	if s.queue.Len() == 0 {
		return Event{}, nil, nil, xerrors.New(xerrors.Modeling, "event queue unexpectedly empty")
	}

	event := heap.Pop(&s.queue).(Event)
	s.schedule.Tick(event.Time)
	s.history.account(event.Kind)

	power, temperature := s.platform.Next(event.Time)
	return event, power, temperature, nil
}
