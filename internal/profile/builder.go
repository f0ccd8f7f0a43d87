package profile

import "math"

// Builder accumulates per-element dynamic-power pushes onto a single Profile
// whose newly created rows are seeded from a per-unit Fill vector (the
// leakage/static baseline), rather than from a uniform scalar as the bare
// Profile.Push does.
type Builder struct {
	profile Profile
	fill    []float64
}

// NewBuilder creates a builder over a fresh profile with the given per-unit
// fill vector. len(fill) must equal units.
func NewBuilder(units int, timeStep float64, fill []float64) *Builder {
	return &Builder{profile: Profile{Units: units, TimeStep: timeStep}, fill: fill}
}

// Units reports the element count the builder tracks.
func (b *Builder) Units() int {
	return b.profile.Units
}

// Steps reports the number of rows currently buffered.
func (b *Builder) Steps() int {
	return b.profile.Steps
}

// Time reports the earliest time not yet extracted by Pull.
func (b *Builder) Time() float64 {
	return b.profile.Time
}

// Push deposits a dynamic-power series for one platform unit, rebinning it
// onto the builder's grid. Rows newly created by the extension are seeded
// with the builder's fill vector, then dynamic power is added on top.
func (b *Builder) Push(unit int, t float64, dtSrc float64, values []float64) {
	b.profile.push(unit, t, dtSrc, values, b.fill)
}

// Pull advances the builder's time horizon to t and returns everything
// accumulated in [Time, t) as an owned Profile.
func (b *Builder) Pull(t float64) *Profile {
	steps := int(math.Floor((t - b.profile.Time) / b.profile.TimeStep))
	if steps > b.profile.Steps {
		b.profile.extend(steps-b.profile.Steps, b.fill)
	}
	return b.profile.Pull(t)
}
