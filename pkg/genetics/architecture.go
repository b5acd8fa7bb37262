package genetics

import (
	"fmt"
)

// Architecture describes the causal genetic architecture under test: one
// minor allele frequency and one additive effect size per causal locus.
// Loci are assumed independent (linkage equilibrium).
type Architecture struct {
	Freqs   []float64 // MAF per causal locus, each in (0,1)
	Effects []float64 // additive effect size per causal locus
}

// Spec holds the deterministic inputs from which an Architecture is derived
type Spec struct {
	CausalLoci int       // n, number of causal loci
	TotalLoci  int       // N, total loci tested genome-wide (n <= N)
	ClassFreqs []float64 // one MAF per frequency class, n split evenly across classes
}

// New derives the per-locus frequencies and effect sizes from a Spec.
// Loci are partitioned evenly across the frequency classes and effect sizes
// follow a linear ramp 1..n/classes repeated within each class, so every
// class carries the same spread of effect magnitudes.
func New(spec Spec) (*Architecture, error) {
	if spec.CausalLoci <= 0 {
		return nil, fmt.Errorf("causal loci count (%d) must be positive", spec.CausalLoci)
	}

	if spec.CausalLoci > spec.TotalLoci {
		return nil, fmt.Errorf("causal loci count (%d) must not exceed total tested loci (%d)",
			spec.CausalLoci, spec.TotalLoci)
	}

	if len(spec.ClassFreqs) == 0 {
		return nil, fmt.Errorf("at least one frequency class is required")
	}

	if spec.CausalLoci%len(spec.ClassFreqs) != 0 {
		return nil, fmt.Errorf("causal loci count (%d) must divide evenly across %d frequency classes",
			spec.CausalLoci, len(spec.ClassFreqs))
	}

	for i, f := range spec.ClassFreqs {
		if f <= 0 || f >= 1 {
			return nil, fmt.Errorf("class frequency %d (%.3f) must be in the open interval (0,1)", i, f)
		}
	}

	perClass := spec.CausalLoci / len(spec.ClassFreqs)

	freqs := make([]float64, 0, spec.CausalLoci)
	effects := make([]float64, 0, spec.CausalLoci)

	for _, f := range spec.ClassFreqs {
		for rank := 1; rank <= perClass; rank++ {
			freqs = append(freqs, f)
			effects = append(effects, float64(rank))
		}
	}

	return &Architecture{Freqs: freqs, Effects: effects}, nil
}

// Size returns the number of causal loci
func (a *Architecture) Size() int {
	return len(a.Freqs)
}

// GeneticVariance returns the additive genetic variance implied by the
// architecture: sum of beta_i^2 * f_i * (1 - f_i) over all causal loci
func (a *Architecture) GeneticVariance() float64 {
	var vg float64
	for i, f := range a.Freqs {
		beta := a.Effects[i]
		vg += beta * beta * f * (1 - f)
	}
	return vg
}

// NoiseVariance returns the residual noise variance sigma^2 that calibrates
// the phenotype to the target heritability: (1-h2)/h2 * vg
func (a *Architecture) NoiseVariance(h2 float64) (float64, error) {
	if h2 <= 0 || h2 >= 1 {
		return 0, fmt.Errorf("heritability (%.3f) must be in the open interval (0,1)", h2)
	}
	return (1 - h2) / h2 * a.GeneticVariance(), nil
}

// TotalVariance returns the expected total phenotypic variance vg + sigma^2
// at the given heritability
func (a *Architecture) TotalVariance(h2 float64) (float64, error) {
	sigma2, err := a.NoiseVariance(h2)
	if err != nil {
		return 0, err
	}
	return a.GeneticVariance() + sigma2, nil
}
