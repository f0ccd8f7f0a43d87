package traffic

import (
	"math"
	"math/rand"
)

// Poisson is a supplemented traffic policy, adapted from the teacher's
// ArrivalController.NextSleepDuration: exponentially distributed
// interarrival times at a fixed target rate, i.e. a Poisson arrival
// process. It implements the same Traffic interface as Fractal for
// workloads where no wavelet-fitted dataset is available, such as
// synthetic smoke tests.
type Poisson struct {
	time    float64
	rate    float64 // arrivals per second
	arrival *float64
	rng     *rand.Rand
}

// NewPoisson creates a Poisson arrival stream at the given rate (arrivals
// per second).
func NewPoisson(rate float64, rng *rand.Rand) *Poisson {
	return &Poisson{rate: rate, rng: rng}
}

func (p *Poisson) sample() float64 {
	u := p.rng.Float64()
	for u == 0 {
		u = p.rng.Float64()
	}
	return -math.Log(u) / p.rate
}

func (p *Poisson) ensure() {
	if p.arrival == nil {
		p.time += p.sample()
		t := p.time
		p.arrival = &t
	}
}

// Next consumes and returns the next absolute arrival time.
func (p *Poisson) Next() (float64, error) {
	p.ensure()
	t := *p.arrival
	p.arrival = nil
	return t, nil
}

// Peek inspects the next absolute arrival time without consuming it.
func (p *Poisson) Peek() (float64, error) {
	p.ensure()
	return *p.arrival, nil
}
