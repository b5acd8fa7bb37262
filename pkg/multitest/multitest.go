package multitest

import (
	"math/rand"
	"sort"
)

// Counts summarizes one replicate's detections under both correction regimes
type Counts struct {
	BonfTrue  int // causal loci passing the Bonferroni threshold alpha/N
	FDRDetect int // all loci (causal + null fill) passing the FDR threshold
	FDRTrue   int // causal loci passing the FDR threshold
}

// Evaluate applies both multiple-testing corrections to one replicate's
// p-value vector. The vector holds one p-value per causal locus; the
// remaining totalLoci-n untested loci are modeled as uniform null p-values
// drawn from rng so the FDR adjustment sees the full genome-wide vector
// without simulating every locus.
func Evaluate(rng *rand.Rand, pvals []float64, totalLoci int, alpha, fdrThr float64) Counts {
	n := len(pvals)

	var counts Counts

	bonfThr := alpha / float64(totalLoci)
	for _, p := range pvals {
		if p < bonfThr {
			counts.BonfTrue++
		}
	}

	combined := make([]float64, 0, totalLoci)
	combined = append(combined, pvals...)
	for i := n; i < totalLoci; i++ {
		combined = append(combined, rng.Float64())
	}

	qvals := BenjaminiHochberg(combined)
	for i, q := range qvals {
		if q < fdrThr {
			counts.FDRDetect++
			if i < n {
				counts.FDRTrue++
			}
		}
	}

	return counts
}

// BenjaminiHochberg converts raw p-values to step-up adjusted q-values.
// The result preserves input order: qvals[i] is the adjusted value for
// pvals[i].
func BenjaminiHochberg(pvals []float64) []float64 {
	m := len(pvals)
	if m == 0 {
		return nil
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return pvals[order[a]] < pvals[order[b]]
	})

	qvals := make([]float64, m)

	// Walk from the largest p-value down, enforcing monotonicity
	running := 1.0
	for rank := m - 1; rank >= 0; rank-- {
		idx := order[rank]
		q := pvals[idx] * float64(m) / float64(rank+1)
		if q < running {
			running = q
		}
		qvals[idx] = running
	}

	return qvals
}
