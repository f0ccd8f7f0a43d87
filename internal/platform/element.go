// Package platform owns the processing elements of the simulated chip and
// composes the power ProfileBuilder with the thermal simulator to expose
// the Push(job, start, mapping) / Next(time) contract the scheduler and
// System drive.
package platform

import (
	"strings"

	"csb/streamer/internal/queue"
	"csb/streamer/internal/xerrors"
)

// Kind tags the type of a processing element.
type Kind int

const (
	// Core is a single-tenant compute element.
	Core Kind = iota
	// Cache is an L3-cache-like, shared element.
	Cache
)

func (k Kind) String() string {
	if k == Core {
		return "core"
	}
	return "cache"
}

// ParseKind infers an element kind from a database row name: prefix "core"
// (case-insensitive) is Core, prefix "l3" is Cache, anything else fails
// construction.
func ParseKind(name string) (Kind, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "core"):
		return Core, nil
	case strings.HasPrefix(lower, "l3"):
		return Cache, nil
	default:
		return 0, xerrors.New(xerrors.Configuration, "found an unknown element id %q", name)
	}
}

// Element is an immutable processing element. Id equals its position in the
// platform's element vector.
type Element struct {
	ID   int
	Kind Kind
	Area float64
}

// Capacity reports the Queue capacity appropriate for the element's kind:
// Core elements are exclusive, Cache elements are shared.
func (e Element) Capacity() queue.Capacity {
	if e.Kind == Core {
		return queue.Single
	}
	return queue.Infinite
}
