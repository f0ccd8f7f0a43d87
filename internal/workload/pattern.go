// Package workload holds the catalog of workload patterns a job may be
// stamped with, and the Random sampler that picks one per arrival.
package workload

import (
	"csb/streamer/internal/platform"
	"csb/streamer/internal/xerrors"
)

// Element is one processing-element slot of a workload pattern: the kind of
// platform element it needs, its area, and its power behavior.
type Element struct {
	Kind         platform.Kind
	Area         float64
	LeakagePower float64
	DynamicPower []float64
}

// Accept reports whether a platform element satisfies this workload
// element's requirements. Kind equality today; intentionally overridable in
// spirit for future policies that also weigh area, frequency class, or
// thermal headroom.
func (e Element) Accept(pe platform.Element) bool {
	return e.Kind == pe.Kind
}

// Pattern is a reusable, immutable bundle of workload metadata: a name, a
// per-element dynamic-power trace, and the shared time grid it was sampled
// on. Jobs hold a pattern by pointer, never by value, so cloning a Job never
// deep-copies its pattern.
type Pattern struct {
	Name      string
	Units     int
	StepCount int
	TimeStep  float64
	Elements  []Element
}

// NewPattern builds a pattern from its loaded elements, failing if the
// pattern would have no processing elements or no dynamic-power samples.
func NewPattern(name string, timeStep float64, elements []Element) (*Pattern, error) {
	units := len(elements)
	if units == 0 {
		return nil, xerrors.New(xerrors.Dataset, "found a workload pattern without components")
	}
	stepCount := len(elements[0].DynamicPower)
	if stepCount == 0 {
		return nil, xerrors.New(xerrors.Dataset, "found a workload pattern without dynamic-power data")
	}
	return &Pattern{
		Name:      name,
		Units:     units,
		StepCount: stepCount,
		TimeStep:  timeStep,
		Elements:  elements,
	}, nil
}

// Duration is the pattern's total execution time: step_count * time_step.
func (p *Pattern) Duration() float64 {
	return float64(p.StepCount) * p.TimeStep
}
