package stamp

import (
	"math/rand"
	"time"
)

// Placement is the sampled position and rotation for one page. It is
// recomputed independently per page and never persisted.
type Placement struct {
	X     float64 // bottom-left anchor, points from the left page edge
	Y     float64 // bottom-left anchor, points from the bottom page edge
	Angle float64 // rotation in degrees, counter-clockwise positive
}

// Sampler draws placements from an explicit random source, so runs can be
// reproduced under a fixed seed.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler backed by rng. A nil rng gets a time-seeded
// source.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{rng: rng}
}

// Placement draws a uniform position within bounds and a rotation angle
// from the range matching the page orientation. The two position draws are
// independent.
func (s *Sampler) Placement(b Bounds, landscape bool, portraitTilt, landscapeTilt AngleRange) Placement {
	tilt := portraitTilt
	if landscape {
		tilt = landscapeTilt
	}
	return Placement{
		X:     s.uniform(b.MinX, b.MaxX),
		Y:     s.uniform(b.MinY, b.MaxY),
		Angle: s.uniform(tilt.From, tilt.To),
	}
}

// uniform draws from [a,b). A reversed interval (a > b) is accepted and
// traversed in reverse; the landscape tilt range relies on this, since its
// "90 to 75" form encodes the intended direction of tilt.
func (s *Sampler) uniform(a, b float64) float64 {
	return a + s.rng.Float64()*(b-a)
}
