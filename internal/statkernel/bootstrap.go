package statkernel

import (
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"abtest-analytics/ports"
)

// BootstrapConfig controls the percentile bootstrap used for relative-
// difference confidence intervals on continuous metrics.
type BootstrapConfig struct {
	Replicates int
	Seed       int64
	// SeedFromEntropy overrides Seed with a time-derived value when true,
	// matching the "production default seeded from entropy" requirement;
	// tests set it false and pass an explicit Seed for reproducibility.
	SeedFromEntropy bool
}

// DefaultBootstrapConfig matches the 1000-replicate default.
func DefaultBootstrapConfig() BootstrapConfig {
	return BootstrapConfig{Replicates: 1000, SeedFromEntropy: true}
}

func (c BootstrapConfig) resolveSeed() int64 {
	if c.SeedFromEntropy {
		return time.Now().UnixNano()
	}
	return c.Seed
}

// Statistic is a reducer applied to one bootstrap resample, e.g. mean or sum.
type Statistic func(sample []float64) float64

// resample draws size values with replacement from source using rng.
func resample(rng *rand.Rand, source []float64, size int) []float64 {
	out := make([]float64, size)
	n := len(source)
	if n == 0 {
		return out
	}
	for i := 0; i < size; i++ {
		out[i] = source[rng.Intn(n)]
	}
	return out
}

// BootstrapRelativeDifference runs the percentile bootstrap for the relative
// difference between T(variationSample) and T(controlSample), per
// spec.md §4.3. variationResampleSize and controlResampleSize let callers
// reproduce the AOV asymmetry (control resampled with size |a_v|) verbatim
// while every other metric passes matching sizes.
func (k *Kernel) BootstrapRelativeDifference(
	variation, control []float64,
	variationResampleSize, controlResampleSize int,
	statistic Statistic,
	cfg BootstrapConfig,
	rngSource ports.RNGSource,
) (lower, upper float64) {
	return k.BootstrapRelativeDifferenceAsymmetric(
		variation, control, variationResampleSize, controlResampleSize,
		statistic, statistic, cfg, rngSource,
	)
}

// BootstrapRelativeDifferenceAsymmetric is the general form behind
// BootstrapRelativeDifference: it lets the variation and control sides apply
// different statistics. ARPU needs this because each side's resample must be
// divided by that side's own user count (sum(sample)/users), not a shared
// reducer.
func (k *Kernel) BootstrapRelativeDifferenceAsymmetric(
	variation, control []float64,
	variationResampleSize, controlResampleSize int,
	statisticV, statisticC Statistic,
	cfg BootstrapConfig,
	rngSource ports.RNGSource,
) (lower, upper float64) {
	if len(variation) == 0 || len(control) == 0 {
		return 0, 0
	}

	replicates := cfg.Replicates
	if replicates <= 0 {
		replicates = 1000
	}
	baseSeed := cfg.resolveSeed()

	diffs := make([]float64, replicates)
	var g errgroup.Group
	for i := 0; i < replicates; i++ {
		i := i
		g.Go(func() error {
			rng := rngSource.Stream(baseSeed, i)
			sampleV := resample(rng, variation, variationResampleSize)
			sampleC := resample(rng, control, controlResampleSize)

			tV := statisticV(sampleV)
			tC := statisticC(sampleC)

			if tC == 0 {
				diffs[i] = 0
				return nil
			}
			diffs[i] = (tV - tC) / tC * 100
			return nil
		})
	}
	_ = g.Wait() // statistic/resample never error; kept for the parallel fork-join shape

	sort.Float64s(diffs)
	return percentile(diffs, 2.5), percentile(diffs, 97.5)
}

// percentile computes the nearest-rank percentile of an already-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p / 100 * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return round2(sorted[idx])
}

// Mean and Sum are the two statistics the metric calculators compose into
// bootstrap statistics (ARPU divides each resample's sum by a fixed user
// count, so it wraps Sum in a closure rather than using these directly).
func Mean(sample []float64) float64 {
	if len(sample) == 0 {
		return 0
	}
	var total float64
	for _, v := range sample {
		total += v
	}
	return total / float64(len(sample))
}

func Sum(sample []float64) float64 {
	var total float64
	for _, v := range sample {
		total += v
	}
	return total
}
