// Package statkernel implements the pure statistical primitives the metric
// calculators compose: Fisher's exact test, Welch's t-test, Mann-Whitney U,
// a Wilson-style proportion-difference interval, and a percentile bootstrap
// for relative-difference intervals. No I/O, no global state.
package statkernel

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Kernel groups the statistical primitives behind one receiver, mirroring
// how the rest of the pipeline wires in a stateless helper.
type Kernel struct{}

// NewKernel constructs a stateless statistical kernel.
func NewKernel() *Kernel { return &Kernel{} }

func (k *Kernel) normalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// Confidence converts a two-sided p-value into the (1-p)*100 scale used
// throughout the response, rounded to 2 decimals.
func Confidence(p float64) float64 {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return round2((1 - p) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Contingency2x2 is the [[succ_v, fail_v], [succ_c, fail_c]] table Fisher's
// exact test is computed on.
type Contingency2x2 struct {
	SuccessVariation int
	FailVariation    int
	SuccessControl   int
	FailControl      int
}

// logFactorial uses the log-gamma function so large counts (thousands of
// users) don't overflow a direct factorial.
func logFactorial(n int) float64 {
	if n < 0 {
		return 0
	}
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}

// hypergeomLogProb returns the log-probability of observing exactly a
// successes in a 2x2 table with fixed margins, under the hypergeometric
// null used by Fisher's exact test.
func hypergeomLogProb(a, rowA, rowB, colA, total int) float64 {
	b := rowA - a
	c := colA - a
	d := rowB - c
	if b < 0 || c < 0 || d < 0 {
		return math.Inf(-1)
	}
	return logFactorial(rowA) + logFactorial(rowB) + logFactorial(colA) + logFactorial(total-colA) -
		logFactorial(total) - logFactorial(a) - logFactorial(b) - logFactorial(c) - logFactorial(d)
}

// FisherExactTwoSided computes the exact two-sided p-value for a 2x2
// contingency table by summing the probability of every table at least as
// extreme as the observed one, under the fixed-margin hypergeometric null.
func (k *Kernel) FisherExactTwoSided(table Contingency2x2) float64 {
	rowA := table.SuccessVariation + table.FailVariation
	rowB := table.SuccessControl + table.FailControl
	colA := table.SuccessVariation + table.SuccessControl
	total := rowA + rowB

	if rowA == 0 || rowB == 0 || colA == 0 || total == colA {
		return 1.0
	}

	observedLogP := hypergeomLogProb(table.SuccessVariation, rowA, rowB, colA, total)

	lo := 0
	if colA-rowB > lo {
		lo = colA - rowB
	}
	hi := rowA
	if colA < hi {
		hi = colA
	}

	const epsilon = 1e-7
	var pValue float64
	for a := lo; a <= hi; a++ {
		logP := hypergeomLogProb(a, rowA, rowB, colA, total)
		if logP <= observedLogP+epsilon {
			pValue += math.Exp(logP)
		}
	}

	if pValue > 1.0 {
		pValue = 1.0
	}
	return pValue
}

// WelchTTest runs the unequal-variance two-sample t-test and returns the
// two-sided p-value. Kept as a legacy helper: no current rate-typed metric
// calls it, Mann-Whitney U is preferred for robustness against skewed
// revenue distributions.
func (k *Kernel) WelchTTest(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 1.0
	}

	meanA, _ := stats.Mean(a)
	meanB, _ := stats.Mean(b)
	varA, _ := stats.Variance(a)
	varB, _ := stats.Variance(b)

	n1, n2 := float64(len(a)), float64(len(b))
	se := math.Sqrt(varA/n1 + varB/n2)
	if se == 0 {
		return 1.0
	}

	t := (meanA - meanB) / se

	num := (varA/n1 + varB/n2) * (varA/n1 + varB/n2)
	den := (varA*varA)/(n1*n1*(n1-1)) + (varB*varB)/(n2*n2*(n2-1))
	df := num / den
	if df <= 0 || math.IsNaN(df) {
		df = n1 + n2 - 2
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - tDist.CDF(math.Abs(t)))
}

// MannWhitneyU computes the U statistic for sample a against sample b and
// returns the two-sided p-value under the normal approximation, matching
// the rank-sum construction used throughout the kernel.
func (k *Kernel) MannWhitneyU(a, b []float64) (u, pValue float64) {
	n1, n2 := len(a), len(b)
	if n1 == 0 || n2 == 0 {
		return 0, 1.0
	}

	u = rankSumU(a, b)
	pValue = k.mannWhitneyPValue(u, n1, n2)
	return u, pValue
}

// rankSumU ranks the pooled samples (averaging ranks on ties) and derives
// U for sample a from the rank sum.
func rankSumU(a, b []float64) float64 {
	n1, n2 := len(a), len(b)
	type tagged struct {
		value float64
		group int
	}
	pooled := make([]tagged, 0, n1+n2)
	for _, v := range a {
		pooled = append(pooled, tagged{v, 0})
	}
	for _, v := range b {
		pooled = append(pooled, tagged{v, 1})
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i].value < pooled[j].value })

	ranks := make([]float64, len(pooled))
	i := 0
	for i < len(pooled) {
		j := i
		for j+1 < len(pooled) && pooled[j+1].value == pooled[i].value {
			j++
		}
		avgRank := float64(i+j)/2.0 + 1
		for x := i; x <= j; x++ {
			ranks[x] = avgRank
		}
		i = j + 1
	}

	var rankSumA float64
	for idx, t := range pooled {
		if t.group == 0 {
			rankSumA += ranks[idx]
		}
	}

	return rankSumA - float64(n1*(n1+1))/2.0
}

// mannWhitneyPValue applies the large-sample normal approximation to U.
func (k *Kernel) mannWhitneyPValue(u float64, n1, n2 int) float64 {
	if n1 <= 0 || n2 <= 0 {
		return 1.0
	}

	meanU := float64(n1*n2) / 2.0
	stdU := math.Sqrt(float64(n1*n2*(n1+n2+1)) / 12.0)
	if stdU == 0 {
		return 1.0
	}

	z := (u - meanU) / stdU
	return 2 * (1 - k.normalCDF(math.Abs(z)))
}

// WilsonProportionInterval builds the 95% interval on the relative
// difference between two proportions, per the project's Wilson-style
// construction (not the textbook Wilson score interval: this linearizes
// the relative difference and propagates a normal-approximation margin).
func (k *Kernel) WilsonProportionInterval(successVariation, totalVariation, successControl, totalControl int) (lower, upper float64) {
	if totalVariation == 0 || totalControl == 0 {
		return 0, 0
	}

	pV := float64(successVariation) / float64(totalVariation)
	pC := float64(successControl) / float64(totalControl)
	if pC == 0 {
		return 0, 0
	}

	diffRel := (pV - pC) / pC * 100
	se := math.Sqrt(pV*(1-pV)/float64(totalVariation) + pC*(1-pC)/float64(totalControl))
	margin := 1.96 * se * 100

	return round2(diffRel - margin), round2(diffRel + margin)
}
