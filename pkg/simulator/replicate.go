package simulator

// DetectionSummary is the per-replicate result record. Field semantics match
// the table contract consumed by downstream reporting: {minp, maxp,
// bonf_true, fdr_detect, fdr_true, h2, dataset}.
type DetectionSummary struct {
	MinP      float64 // smallest causal-locus p-value
	MaxP      float64 // largest causal-locus p-value
	BonfTrue  int     // causal loci significant after Bonferroni correction
	FDRDetect int     // all loci (causal + null) significant after FDR correction
	FDRTrue   int     // causal loci significant after FDR correction
	H2        float64 // realized heritability var(signal)/var(phenotype)
	Dataset   string  // scenario tag
}

// ReplicateTable collects one DetectionSummary per replicate. It is built
// once per scenario and never mutated afterwards.
type ReplicateTable []DetectionSummary

func pValueBounds(pvals []float64) (minP, maxP float64) {
	if len(pvals) == 0 {
		return 1, 1
	}
	minP, maxP = pvals[0], pvals[0]
	for _, p := range pvals[1:] {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}
	return minP, maxP
}
