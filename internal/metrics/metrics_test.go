package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"csb/streamer/internal/system"
)

func TestCollectorObserveIncrementsCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := New(registry)

	c.Observe(system.Arrived)
	c.Observe(system.Arrived)
	c.Observe(system.Started)
	c.Observe(system.Finished)

	if got := testutil.ToFloat64(c.arrived); got != 2 {
		t.Fatalf("arrived counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.started); got != 1 {
		t.Fatalf("started counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.finished); got != 1 {
		t.Fatalf("finished counter = %v, want 1", got)
	}
}

func TestCollectorSetQueueDepth(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := New(registry)

	c.SetQueueDepth(5)
	if got := testutil.ToFloat64(c.queue); got != 5 {
		t.Fatalf("queue gauge = %v, want 5", got)
	}
	c.SetQueueDepth(2)
	if got := testutil.ToFloat64(c.queue); got != 2 {
		t.Fatalf("queue gauge = %v, want 2", got)
	}
}
