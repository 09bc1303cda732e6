package ports

import "math/rand"

// RNGSource provides seeded random number generation for the percentile
// bootstrap. Every replicate worker pulls its own stream so the bootstrap
// loop can be parallelized while still reproducing byte-identical output
// under a fixed seed.
type RNGSource interface {
	// Stream returns a *rand.Rand seeded deterministically from baseSeed and
	// replicate, so concurrent workers never share mutable RNG state.
	Stream(baseSeed int64, replicate int) *rand.Rand
}

// replicateRNG derives one *rand.Rand per bootstrap replicate from a base
// seed using splitmix-style mixing, so replicate i always gets the same
// stream regardless of which worker goroutine claims it.
type replicateRNG struct{}

// NewRNGSource returns the default RNGSource used in production.
func NewRNGSource() RNGSource { return replicateRNG{} }

func (replicateRNG) Stream(baseSeed int64, replicate int) *rand.Rand {
	const golden uint64 = 0x9E3779B97F4A7C15
	mixed := baseSeed ^ int64(uint64(replicate)*golden+uint64(replicate))
	return rand.New(rand.NewSource(mixed))
}
