package visualization

import (
	"github.com/ngodron/power-sim-MTB/pkg/analysis"
)

// ChartGenerator defines the interface for rendering detection charts
type ChartGenerator interface {
	GenerateDetectionHistogram(result analysis.Result, filename string) error
	GenerateCumulativePowerChart(results []analysis.Result, filename string) error
	GenerateChartsForResults(results []analysis.Result)
}

// Generator implements ChartGenerator
type Generator struct{}

// NewGenerator creates a new chart generator
func NewGenerator() ChartGenerator {
	return &Generator{}
}
