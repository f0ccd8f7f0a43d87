package system

import "csb/streamer/internal/workload"

// Job is a single scheduled unit of work: the pattern a Workload produced,
// tagged with its arrival time and a stream-local identifier.
type Job struct {
	ID      int
	Arrival float64
	Pattern *workload.Pattern
}
