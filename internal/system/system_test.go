package system

import (
	"math/rand"
	"testing"

	"csb/streamer/internal/platform"
	"csb/streamer/internal/schedule"
	"csb/streamer/internal/thermal"
	"csb/streamer/internal/traffic"
	"csb/streamer/internal/workload"
)

func newTestPlatform(t *testing.T, elements []platform.Element) *platform.Thermal {
	t.Helper()
	circuit := &thermal.Circuit{
		Names:       make([]string, len(elements)),
		Areas:       make([]float64, len(elements)),
		Capacitance: make([]float64, len(elements)),
		Conductance: make([]float64, len(elements)),
	}
	models := make([]platform.LeakageModel, 0, 2)
	seen := map[platform.Kind]bool{}
	for i, e := range elements {
		circuit.Areas[i] = 1.0
		elements[i].Area = 1.0
		circuit.Capacitance[i] = 1.0
		circuit.Conductance[i] = 1.0
		if !seen[e.Kind] {
			seen[e.Kind] = true
			models = append(models, platform.LeakageModel{Kind: e.Kind, Area: 1.0, LeakagePower: 0.1})
		}
	}
	plat, err := platform.NewThermal(elements, circuit, 25.0, 0.5, models)
	if err != nil {
		t.Fatalf("NewThermal: %v", err)
	}
	return plat
}

func newTestWorkload(t *testing.T, kinds ...platform.Kind) Workload {
	t.Helper()
	elements := make([]workload.Element, len(kinds))
	for i, k := range kinds {
		elements[i] = workload.Element{Kind: k, DynamicPower: []float64{1, 1, 1}}
	}
	p, err := workload.NewPattern("test", 0.5, elements)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}
	wl, err := workload.NewRandom([]*workload.Pattern{p}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewRandom: %v", err)
	}
	return wl
}

// Scenario B end-to-end: a single core, a Poisson arrival stream, run to a
// fixed number of events and check the lifecycle history closes out evenly.
// The arrival rate is low enough that, with this seed, every job finishes
// before the next one arrives, so each job contributes three consecutive
// events.
func TestSystemSingleCoreEndToEnd(t *testing.T) {
	plat := newTestPlatform(t, []platform.Element{{ID: 0, Kind: platform.Core}})
	sched := schedule.New(plat.Elements())
	tr := traffic.NewPoisson(0.05, rand.New(rand.NewSource(2)))
	wl := newTestWorkload(t, platform.Core)

	sys := New(plat, sched, tr, wl)

	const jobs = 5
	for i := 0; i < jobs*3; i++ {
		if _, _, _, err := sys.Next(); err != nil {
			t.Fatalf("Next at step %d: %v", i, err)
		}
	}

	h := sys.History()
	if h.Arrived != jobs || h.Started != jobs || h.Finished != jobs {
		t.Fatalf("expected %d arrived/started/finished, got %+v", jobs, h)
	}
}

// Invariant 1: event times are non-decreasing across successive Next calls.
func TestSystemEventsMonotone(t *testing.T) {
	plat := newTestPlatform(t, []platform.Element{{ID: 0, Kind: platform.Core}, {ID: 1, Kind: platform.Core}})
	sched := schedule.New(plat.Elements())
	tr := traffic.NewPoisson(3.0, rand.New(rand.NewSource(3)))
	wl := newTestWorkload(t, platform.Core)

	sys := New(plat, sched, tr, wl)

	last := -1.0
	for i := 0; i < 30; i++ {
		event, _, _, err := sys.Next()
		if err != nil {
			t.Fatalf("Next at step %d: %v", i, err)
		}
		if event.Time < last {
			t.Fatalf("event time regressed: %v then %v", last, event.Time)
		}
		last = event.Time
	}
}

// Invariant 2: every job's lifecycle is Arrived -> Started -> Finished, in
// that order, with no stage skipped or repeated for a given job id.
func TestSystemPairedLifecycle(t *testing.T) {
	plat := newTestPlatform(t, []platform.Element{{ID: 0, Kind: platform.Core}})
	sched := schedule.New(plat.Elements())
	tr := traffic.NewPoisson(1.5, rand.New(rand.NewSource(4)))
	wl := newTestWorkload(t, platform.Core)

	sys := New(plat, sched, tr, wl)

	stage := map[int]EventKind{}
	for i := 0; i < 21; i++ {
		event, _, _, err := sys.Next()
		if err != nil {
			t.Fatalf("Next at step %d: %v", i, err)
		}
		prev, seen := stage[event.Job.ID]
		switch event.Kind {
		case Arrived:
			if seen {
				t.Fatalf("job %d arrived twice", event.Job.ID)
			}
		case Started:
			if !seen || prev != Arrived {
				t.Fatalf("job %d started out of order (prior stage %v, seen=%v)", event.Job.ID, prev, seen)
			}
		case Finished:
			if !seen || prev != Started {
				t.Fatalf("job %d finished out of order (prior stage %v, seen=%v)", event.Job.ID, prev, seen)
			}
		}
		stage[event.Job.ID] = event.Kind
	}
}

// Invariant 8: the History counters match a manual tally of the event
// stream observed through Next.
func TestSystemHistoryMatchesStream(t *testing.T) {
	plat := newTestPlatform(t, []platform.Element{{ID: 0, Kind: platform.Core}})
	sched := schedule.New(plat.Elements())
	tr := traffic.NewPoisson(2.5, rand.New(rand.NewSource(5)))
	wl := newTestWorkload(t, platform.Core)

	sys := New(plat, sched, tr, wl)

	var arrived, started, finished int
	for i := 0; i < 15; i++ {
		event, _, _, err := sys.Next()
		if err != nil {
			t.Fatalf("Next at step %d: %v", i, err)
		}
		switch event.Kind {
		case Arrived:
			arrived++
		case Started:
			started++
		case Finished:
			finished++
		}
	}

	h := sys.History()
	if h.Arrived != arrived || h.Started != started || h.Finished != finished {
		t.Fatalf("history %+v does not match manual tally arrived=%d started=%d finished=%d", h, arrived, started, finished)
	}
}

// Scenario A end-to-end: an empty platform surfaces a Scheduling error from
// Next rather than hanging or panicking.
func TestSystemEmptyPlatformErrors(t *testing.T) {
	plat := newTestPlatform(t, nil)
	sched := schedule.New(nil)
	tr := traffic.NewPoisson(1.0, rand.New(rand.NewSource(6)))
	wl := newTestWorkload(t, platform.Core)

	sys := New(plat, sched, tr, wl)

	if _, _, _, err := sys.Next(); err == nil {
		t.Fatal("expected an error scheduling onto an empty platform")
	}
}

func TestPreflightSurfacesErrorsEarly(t *testing.T) {
	plat := newTestPlatform(t, nil)
	sched := schedule.New(nil)
	tr := traffic.NewPoisson(1.0, rand.New(rand.NewSource(7)))
	wl := newTestWorkload(t, platform.Core)

	sys := New(plat, sched, tr, wl)

	if err := Preflight(sys, 3); err == nil {
		t.Fatal("expected Preflight to surface the scheduling error")
	}
}
