// Package profile implements the dense time-grid power/temperature
// accumulator: Profile holds a unit x step matrix over a fixed time_step
// grid, and ProfileBuilder rebinds arbitrarily aligned, differently sampled
// dynamic-power pushes onto that grid without losing area (the integral of
// power over time is preserved across resampling).
package profile

import "math"

// Profile is a (step_count x unit_count) row-major matrix of real values
// sampled on a uniform grid starting at Time with spacing TimeStep.
type Profile struct {
	Units    int
	Steps    int
	Time     float64
	TimeStep float64
	Data     []float64
}

// New creates an empty profile with zero steps.
func New(units int, timeStep float64) *Profile {
	return &Profile{Units: units, TimeStep: timeStep}
}

// CloneZero returns a profile with the same shape but zeroed data, used by
// the thermal solver as an output buffer for a power profile it consumes.
func (p *Profile) CloneZero() *Profile {
	return &Profile{
		Units:    p.Units,
		Steps:    p.Steps,
		Time:     p.Time,
		TimeStep: p.TimeStep,
		Data:     make([]float64, p.Units*p.Steps),
	}
}

// Row returns the slice of values for step index r, one entry per unit.
func (p *Profile) Row(r int) []float64 {
	return p.Data[r*p.Units : (r+1)*p.Units]
}

// extend grows the profile by n rows, each initialized by copying fill
// (or zeros, when fill is nil).
func (p *Profile) extend(n int, fill []float64) {
	for i := 0; i < n; i++ {
		if fill != nil {
			p.Data = append(p.Data, fill...)
		} else {
			p.Data = append(p.Data, make([]float64, p.Units)...)
		}
	}
	p.Steps += n
}

// Push deposits a source sample series sampled at timeStep dtSrc, starting at
// absolute time t, into unit's column, using area-preserving overlap
// weighting against the destination grid. statik seeds newly created rows
// (the leakage/fill baseline); pass 0 when no such baseline applies.
func (p *Profile) Push(unit int, t float64, dtSrc float64, values []float64, statik float64) {
	p.push(unit, t, dtSrc, values, fillOf(p.Units, statik))
}

func fillOf(units int, statik float64) []float64 {
	if statik == 0 {
		return nil
	}
	fill := make([]float64, units)
	for i := range fill {
		fill[i] = statik
	}
	return fill
}

func (p *Profile) push(unit int, t float64, dtSrc float64, values []float64, fill []float64) {
	t1, t2 := p.Time, t
	d1, d2 := p.TimeStep, dtSrc

	s2 := len(values)
	s1 := int(math.Ceil((t2 - t1 + float64(s2)*d2) / d1))

	if s1 > p.Steps {
		p.extend(s1-p.Steps, fill)
	}

	j1 := int((t2 - t1) / d1)
	j2 := 0

	add := func(weight float64) {
		p.Data[j1*p.Units+unit] += weight * values[j2]
	}

	for j1 < s1 && j2 < s2 {
		l1 := t1 + float64(j1)*d1
		l2 := t2 + float64(j2)*d2
		r1 := l1 + d1
		r2 := l2 + d2

		switch {
		case l1 < l2:
			if r2 < r1 {
				add(1.0)
				j2++
			} else {
				add((r1 - l2) / d2)
				j1++
			}
		default:
			if r1 < r2 {
				add(d1 / d2)
				j1++
			} else {
				add((r2 - l1) / d2)
				j2++
			}
		}
	}
}

// Pull splits off and returns the prefix of the profile covering
// [Time, t), advancing the receiver's Time to floor(t/TimeStep)*TimeStep.
// The returned profile owns its own copy of the extracted rows.
func (p *Profile) Pull(t float64) *Profile {
	steps := int(math.Floor((t - p.Time) / p.TimeStep))

	out := &Profile{
		Units:    p.Units,
		Steps:    p.Steps - steps,
		Time:     math.Floor(t/p.TimeStep) * p.TimeStep,
		TimeStep: p.TimeStep,
		Data:     append([]float64(nil), p.Data[steps*p.Units:]...),
	}

	*p, *out = *out, *p

	out.Steps = steps
	out.Data = out.Data[:steps*out.Units]

	return out
}
