package traffic

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"csb/streamer/internal/xerrors"
)

// Fractal is a multifractal wavelet model of arrival traffic: it fits a
// Beta-distributed multiplicative cascade of depth ncoarse to an empirical
// interarrival sample, then refills its internal queue by sampling one
// dyadic cascade burst at a time and accumulating the resulting
// interarrivals into a running absolute-time cursor.
type Fractal struct {
	time     float64
	ncoarse  int
	burst    float64 // total mass (in time units) covered by one sampled burst
	alpha    float64 // Beta shape parameter for the cascade's split ratio
	beta     float64
	arrivals []float64
	rng      *rand.Rand
}

// NewFractal fits a cascade model to a sample of interarrival times.
// Construction fails if the dataset is empty or too small to support a
// coarse scale of at least one level (ncoarse = floor(log2(N)) >= 1).
func NewFractal(interarrivals []float64, rng *rand.Rand) (*Fractal, error) {
	n := len(interarrivals)
	if n == 0 {
		return nil, xerrors.New(xerrors.Dataset, "traffic dataset is empty")
	}
	ncoarseF := math.Floor(math.Log2(float64(n)))
	if ncoarseF < 1 {
		return nil, xerrors.New(xerrors.Dataset, "there are not enough data")
	}
	ncoarse := int(ncoarseF)

	mean, cov := meanAndCoV(interarrivals)
	if mean <= 0 {
		return nil, xerrors.New(xerrors.Modeling, "interarrival model has non-positive mean")
	}
	// A higher coefficient of variation means burstier traffic, which the
	// cascade expresses as split ratios concentrated away from 0.5 (a
	// smaller Beta shape parameter). alpha == beta keeps the cascade
	// symmetric in expectation.
	concentration := 1.0 / (cov*cov + 0.1)
	if concentration < 0.2 {
		concentration = 0.2
	}

	return &Fractal{
		ncoarse: ncoarse,
		burst:   mean * float64(int(1)<<uint(ncoarse)),
		alpha:   concentration,
		beta:    concentration,
		rng:     rng,
	}, nil
}

func meanAndCoV(data []float64) (mean, cov float64) {
	var sum float64
	for _, v := range data {
		sum += v
	}
	mean = sum / float64(len(data))

	var variance float64
	for _, v := range data {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(data))

	if mean == 0 {
		return mean, 0
	}
	return mean, math.Sqrt(variance) / mean
}

// refill samples one cascade burst of 2^ncoarse interarrival increments and
// converts it into absolute arrival times by accumulating into f.time.
func (f *Fractal) refill() error {
	dist := distuv.Beta{Alpha: f.alpha, Beta: f.beta, Src: f.rng}
	steps := make([]float64, 0, 1<<uint(f.ncoarse))
	cascade(f.burst, f.ncoarse, dist, &steps)

	for _, step := range steps {
		f.time += step
		f.arrivals = append(f.arrivals, f.time)
	}
	return nil
}

// cascade recursively splits mass across levels dyadic scales, each split
// drawn from dist, and appends the resulting leaf masses (the interarrival
// increments) to out in left-to-right order.
func cascade(mass float64, levels int, dist distuv.Beta, out *[]float64) {
	if levels == 0 {
		*out = append(*out, mass)
		return
	}
	p := dist.Rand()
	cascade(mass*p, levels-1, dist, out)
	cascade(mass*(1-p), levels-1, dist, out)
}

// Next consumes and returns the next absolute arrival time, refilling the
// queue from the fitted cascade model if it has run dry.
func (f *Fractal) Next() (float64, error) {
	if len(f.arrivals) == 0 {
		if err := f.refill(); err != nil {
			return 0, err
		}
	}
	t := f.arrivals[0]
	f.arrivals = f.arrivals[1:]
	return t, nil
}

// Peek inspects the next arrival time without consuming it.
func (f *Fractal) Peek() (float64, error) {
	if len(f.arrivals) == 0 {
		if err := f.refill(); err != nil {
			return 0, err
		}
	}
	return f.arrivals[0], nil
}
