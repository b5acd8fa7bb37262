package simulator

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TestLoci runs the per-locus association test: for each causal locus the
// cohort is split by genotype and the two phenotype groups are compared with
// Welch's unequal-variance t-test. Loci whose split leaves either group with
// fewer than 2 individuals are recorded as p=1 (conservative non-detection)
// instead of failing.
func TestLoci(genotypes GenotypeMatrix, phenotype []float64) []float64 {
	loci := genotypes.Loci()
	pvals := make([]float64, loci)

	for j := 0; j < loci; j++ {
		var absent, present []float64
		for k, row := range genotypes {
			if row[j] == 0 {
				absent = append(absent, phenotype[k])
			} else {
				present = append(present, phenotype[k])
			}
		}
		pvals[j] = welchPValue(absent, present)
	}

	return pvals
}

// welchPValue returns the two-tailed p-value of Welch's t-test comparing the
// means of a and b. Degenerate inputs (a group under 2 members, or zero
// pooled standard error) resolve to p=1.
func welchPValue(a, b []float64) float64 {
	na := float64(len(a))
	nb := float64(len(b))
	if na < 2 || nb < 2 {
		return 1
	}

	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)

	se2 := varA/na + varB/nb
	if se2 == 0 {
		return 1
	}

	tStat := (meanA - meanB) / math.Sqrt(se2)

	// Welch-Satterthwaite degrees of freedom
	df := se2 * se2 / (math.Pow(varA/na, 2)/(na-1) + math.Pow(varB/nb, 2)/(nb-1))
	if math.IsNaN(df) || df <= 0 {
		return 1
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(tStat)))

	if math.IsNaN(p) {
		return 1
	}
	return p
}
