package store

import (
	"encoding/gob"
	"os"

	"csb/streamer/internal/system"
	"csb/streamer/internal/xerrors"
)

// Snapshot is one raw lifecycle record kept for the gob trail: a job id,
// the stage it reached, and the time it reached it.
type Snapshot struct {
	JobID int
	Kind  system.EventKind
	Time  float64
}

// GobSink accumulates raw event snapshots in memory and writes them as a
// single gob-encoded blob on Close, mirroring the teacher's
// Logger.LogDataRows one-shot dump.
type GobSink struct {
	path string
	rows []Snapshot
}

// NewGobSink builds a sink that will write to path on Close.
func NewGobSink(path string) *GobSink {
	return &GobSink{path: path}
}

// Record appends one event's snapshot.
func (s *GobSink) Record(event system.Event) {
	s.rows = append(s.rows, Snapshot{JobID: event.Job.ID, Kind: event.Kind, Time: event.Time})
}

// Close gob-encodes the accumulated snapshot rows to path.
func (s *GobSink) Close() error {
	file, err := os.Create(s.path)
	if err != nil {
		return xerrors.Wrap(xerrors.IOError, err, "create gob snapshot %q", s.path)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(s.rows); err != nil {
		return xerrors.Wrap(xerrors.Persistence, err, "encode gob snapshot")
	}
	return nil
}
