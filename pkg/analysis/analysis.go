package analysis

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/montanaflynn/stats"

	"github.com/ngodron/power-sim-MTB/pkg/simulator"
)

// Result contains the aggregated detection statistics of one scenario
type Result struct {
	ScenarioName   string
	Dataset        string
	Replicates     int
	CausalLoci     int
	MeanBonfTrue   float64
	MedianBonfTrue float64
	MeanFDRTrue    float64
	MeanFDRDetect  float64
	MeanMinP       float64
	MeanRealizedH2 float64
	DetectionRate  float64 // fraction of replicates with at least one Bonferroni detection
	SaturationRate float64 // fraction of replicates detecting every causal locus

	// CumulativeDetection[k] is the percentage of replicates in which at
	// least k causal loci passed the Bonferroni threshold, k = 0..CausalLoci
	CumulativeDetection []float64
}

// Summarize aggregates one scenario's ReplicateTable into a Result
func Summarize(scenarioName string, causalLoci int, table simulator.ReplicateTable) (Result, error) {
	if len(table) == 0 {
		return Result{}, fmt.Errorf("replicate table is empty")
	}

	bonfTrue := make([]float64, len(table))
	fdrTrue := make([]float64, len(table))
	fdrDetect := make([]float64, len(table))
	minPs := make([]float64, len(table))
	realizedH2 := make([]float64, len(table))

	detected := 0
	saturated := 0
	for i, row := range table {
		bonfTrue[i] = float64(row.BonfTrue)
		fdrTrue[i] = float64(row.FDRTrue)
		fdrDetect[i] = float64(row.FDRDetect)
		minPs[i] = row.MinP
		realizedH2[i] = row.H2

		if row.BonfTrue > 0 {
			detected++
		}
		if row.BonfTrue == causalLoci {
			saturated++
		}
	}

	meanBonf, err := stats.Mean(bonfTrue)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute mean detections: %w", err)
	}

	medianBonf, err := stats.Median(bonfTrue)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute median detections: %w", err)
	}

	meanFDRTrue, err := stats.Mean(fdrTrue)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute mean FDR true detections: %w", err)
	}

	meanFDRDetect, err := stats.Mean(fdrDetect)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute mean FDR detections: %w", err)
	}

	meanMinP, err := stats.Mean(minPs)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute mean minimum p-value: %w", err)
	}

	meanH2, err := stats.Mean(realizedH2)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute mean realized heritability: %w", err)
	}

	return Result{
		ScenarioName:        scenarioName,
		Dataset:             table[0].Dataset,
		Replicates:          len(table),
		CausalLoci:          causalLoci,
		MeanBonfTrue:        meanBonf,
		MedianBonfTrue:      medianBonf,
		MeanFDRTrue:         meanFDRTrue,
		MeanFDRDetect:       meanFDRDetect,
		MeanMinP:            meanMinP,
		MeanRealizedH2:      meanH2,
		DetectionRate:       float64(detected) / float64(len(table)),
		SaturationRate:      float64(saturated) / float64(len(table)),
		CumulativeDetection: cumulativeDetection(table, causalLoci),
	}, nil
}

// cumulativeDetection computes, for every k, the percentage of replicates
// detecting at least k causal loci under Bonferroni correction
func cumulativeDetection(table simulator.ReplicateTable, causalLoci int) []float64 {
	counts := make([]int, causalLoci+1)
	for _, row := range table {
		for k := 0; k <= row.BonfTrue && k <= causalLoci; k++ {
			counts[k]++
		}
	}

	percentages := make([]float64, causalLoci+1)
	for k, c := range counts {
		percentages[k] = float64(c) / float64(len(table)) * 100
	}
	return percentages
}

// PrintResults prints formatted analysis results for all scenarios
func PrintResults(results []Result) {
	fmt.Printf("\n%s\n", strings.Repeat("=", 80))
	fmt.Printf("POWER ANALYSIS SUMMARY\n")
	fmt.Printf("%s\n", strings.Repeat("=", 80))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Scenario\tReplicates\tMean Bonf\tMedian Bonf\tMean FDR True\tMean FDR Hits\tDetect %\tSaturate %\tMean h2")

	for _, result := range results {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f\t%.2f\t%.2f\t%.1f%%\t%.1f%%\t%.3f\n",
			result.ScenarioName,
			result.Replicates,
			result.MeanBonfTrue,
			result.MedianBonfTrue,
			result.MeanFDRTrue,
			result.MeanFDRDetect,
			result.DetectionRate*100,
			result.SaturationRate*100,
			result.MeanRealizedH2,
		)
	}
	w.Flush()

	for _, result := range results {
		fmt.Printf("\n%s\n", strings.Repeat("-", 60))
		fmt.Printf("DETAILED ANALYSIS: %s\n", result.ScenarioName)
		fmt.Printf("%s\n", strings.Repeat("-", 60))

		fmt.Printf("Detection Statistics:\n")
		fmt.Printf("  Replicates: %d\n", result.Replicates)
		fmt.Printf("  Mean Bonferroni detections: %.2f of %d causal loci\n", result.MeanBonfTrue, result.CausalLoci)
		fmt.Printf("  Mean FDR true detections: %.2f\n", result.MeanFDRTrue)
		fmt.Printf("  Mean FDR total hits (true + false): %.2f\n", result.MeanFDRDetect)
		fmt.Printf("  Mean minimum p-value: %.3g\n", result.MeanMinP)
		fmt.Printf("  Mean realized heritability: %.3f\n", result.MeanRealizedH2)

		fmt.Printf("\nCumulative detection (Bonferroni):\n")
		cw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(cw, "  Loci detected >=\tReplicates %")
		for k, pct := range result.CumulativeDetection {
			if k == 0 {
				continue
			}
			fmt.Fprintf(cw, "  %d\t%.1f%%\n", k, pct)
		}
		cw.Flush()
	}
}
