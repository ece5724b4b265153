package core

import (
	"math/rand/v2"
	"time"
)

// Lehmer generator constants (MINSTD with the 48271 multiplier).
const (
	LehmerModulus    = 2147483647
	LehmerMultiplier = 48271
)

// Lehmer is the deterministic gameplay RNG. It is the only randomness
// allowed to influence a contest's outcome.
type Lehmer struct {
	state uint64
}

// NewLehmer seeds a generator. The state must never be zero, so seeds that
// reduce to zero are replaced with 1.
func NewLehmer(seed int64) *Lehmer {
	s := seed % LehmerModulus
	if s < 0 {
		s += LehmerModulus
	}
	if s == 0 {
		s = 1
	}
	return &Lehmer{state: uint64(s)}
}

// Next advances the generator and returns the new state in [1, modulus-1].
func (r *Lehmer) Next() uint32 {
	r.state = (r.state * LehmerMultiplier) % LehmerModulus
	return uint32(r.state)
}

// Intn returns a value in [0, n). n must be positive.
func (r *Lehmer) Intn(n int) int {
	return int(r.Next() % uint32(n))
}

// Float64 returns a value in [0, 1).
func (r *Lehmer) Float64() float64 {
	return float64(r.Next()-1) / float64(LehmerModulus-1)
}

// Pick returns an index chosen with probability proportional to weights.
// Non-positive weights are never chosen; if all are non-positive, 0 is returned.
func (r *Lehmer) Pick(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	x := r.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}

// Jitter is a source of cosmetic randomness (particle scatter and similar).
// It must never feed win/lose state.
type Jitter interface {
	Float64() float64
}

// CosmeticJitter returns an unseeded source for purely visual effects.
func CosmeticJitter() Jitter {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>17|1))
}
