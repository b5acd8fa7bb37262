package visualization

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ngodron/power-sim-MTB/pkg/analysis"
)

// GenerateDetectionHistogram renders the distribution of Bonferroni
// detection counts across replicates for one scenario
func (g *Generator) GenerateDetectionHistogram(result analysis.Result, filename string) error {
	bars := make([]chart.Value, 0, len(result.CumulativeDetection))

	// CumulativeDetection[k] is % of replicates detecting >= k loci, so the
	// share detecting exactly k is the difference to the next bucket
	for k := 0; k < len(result.CumulativeDetection); k++ {
		exact := result.CumulativeDetection[k]
		if k+1 < len(result.CumulativeDetection) {
			exact -= result.CumulativeDetection[k+1]
		}
		bars = append(bars, chart.Value{
			Value: exact,
			Label: strconv.Itoa(k),
		})
	}

	graph := chart.BarChart{
		Title:  fmt.Sprintf("Bonferroni Detections per Replicate: %s", result.ScenarioName),
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
		},
		YAxis: chart.YAxis{
			Name: "Replicates (%)",
		},
		BarWidth: 40,
		Bars:     bars,
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	fmt.Printf("Chart saved to %s\n", filename)
	return nil
}

// GenerateCumulativePowerChart renders the cumulative detection percentage
// curves of all scenarios on a single chart for side-by-side comparison
func (g *Generator) GenerateCumulativePowerChart(results []analysis.Result, filename string) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to chart")
	}

	series := make([]chart.Series, 0, len(results))
	palette := []chart.Style{
		{StrokeColor: chart.ColorRed, StrokeWidth: 2},
		{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
		{StrokeColor: chart.ColorGreen, StrokeWidth: 2},
	}

	for i, result := range results {
		xs := make([]float64, 0, len(result.CumulativeDetection))
		ys := make([]float64, 0, len(result.CumulativeDetection))
		for k := 1; k < len(result.CumulativeDetection); k++ {
			xs = append(xs, float64(k))
			ys = append(ys, result.CumulativeDetection[k])
		}

		series = append(series, chart.ContinuousSeries{
			Name:    result.ScenarioName,
			XValues: xs,
			YValues: ys,
			Style:   palette[i%len(palette)],
		})
	}

	graph := chart.Chart{
		Title:  "Cumulative Detection Power (Bonferroni)",
		Width:  1200,
		Height: 800,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
		},
		XAxis: chart.XAxis{
			Name: "Causal Loci Detected (at least k)",
		},
		YAxis: chart.YAxis{
			Name: "Replicates (%)",
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendThin(&graph),
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	fmt.Printf("Chart saved to %s\n", filename)
	return nil
}

// GenerateChartsForResults renders the histogram for every scenario plus the
// cross-scenario comparison chart, warning instead of failing on render
// errors
func (g *Generator) GenerateChartsForResults(results []analysis.Result) {
	for _, result := range results {
		filename := fmt.Sprintf("detections_%s.png", strings.ToLower(strings.ReplaceAll(result.Dataset, " ", "_")))
		if err := g.GenerateDetectionHistogram(result, filename); err != nil {
			fmt.Printf("Warning: failed to generate histogram for %s: %v\n", result.ScenarioName, err)
		}
	}

	if err := g.GenerateCumulativePowerChart(results, "cumulative_power.png"); err != nil {
		fmt.Printf("Warning: failed to generate cumulative power chart: %v\n", err)
	}
}
