package simulator

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/ngodron/power-sim-MTB/pkg/config"
	"github.com/ngodron/power-sim-MTB/pkg/genetics"
	"github.com/ngodron/power-sim-MTB/pkg/multitest"
	"github.com/ngodron/power-sim-MTB/pkg/randomizer"
)

// Runner repeats the replicate pipeline (cohort -> phenotype -> association
// tests -> multiple-testing evaluation) and aggregates one DetectionSummary
// per replicate into a ReplicateTable.
type Runner struct {
	arch         *genetics.Architecture
	totalLoci    int
	alpha        float64
	fdrThreshold float64
	replicates   int
	workers      int
	source       *randomizer.Source
}

// NewRunner creates a replicate runner for one architecture
func NewRunner(arch *genetics.Architecture, cfg config.Config, source *randomizer.Source) *Runner {
	return &Runner{
		arch:         arch,
		totalLoci:    cfg.TotalLoci,
		alpha:        cfg.Alpha,
		fdrThreshold: cfg.FDRThreshold,
		replicates:   cfg.Replicates,
		workers:      cfg.Workers,
		source:       source,
	}
}

// RunScenario simulates all replicates for one cohort scenario and returns
// the scenario's ReplicateTable. Replicates are independent and run in
// parallel; each one draws from its own deterministic stream of the master
// seed, so the table is reproducible regardless of worker scheduling. Rows
// are stored in replicate order.
func (r *Runner) RunScenario(dataset string, cohortSize int, sigma float64) (ReplicateTable, error) {
	if cohortSize <= 0 {
		return nil, fmt.Errorf("cohort size (%d) must be positive", cohortSize)
	}
	if r.replicates <= 0 {
		return nil, fmt.Errorf("replicate count (%d) must be positive", r.replicates)
	}
	if sigma < 0 {
		return nil, fmt.Errorf("noise standard deviation (%.3f) must not be negative", sigma)
	}

	table := make(ReplicateTable, r.replicates)

	var group errgroup.Group
	group.SetLimit(r.workers)

	for rep := 0; rep < r.replicates; rep++ {
		rep := rep
		group.Go(func() error {
			rng := r.source.Stream(dataset, rep)
			table[rep] = r.runReplicate(rng, dataset, cohortSize, sigma)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return table, nil
}

// runReplicate executes one full dataset-and-analysis cycle
func (r *Runner) runReplicate(rng *rand.Rand, dataset string, cohortSize int, sigma float64) DetectionSummary {
	genotypes := DrawCohort(rng, r.arch.Freqs, cohortSize)
	phenotype, signal := Synthesize(rng, genotypes, r.arch.Effects, sigma)
	pvals := TestLoci(genotypes, phenotype)

	counts := multitest.Evaluate(rng, pvals, r.totalLoci, r.alpha, r.fdrThreshold)
	minP, maxP := pValueBounds(pvals)

	return DetectionSummary{
		MinP:      minP,
		MaxP:      maxP,
		BonfTrue:  counts.BonfTrue,
		FDRDetect: counts.FDRDetect,
		FDRTrue:   counts.FDRTrue,
		H2:        RealizedHeritability(signal, phenotype),
		Dataset:   dataset,
	}
}
