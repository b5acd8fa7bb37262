package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ngodron/power-sim-MTB/pkg/simulator"
)

// Column order of the replicate table handed to downstream reporting.
// Names and semantics are a fixed contract.
var columns = []string{"minp", "maxp", "bonf_true", "fdr_detect", "fdr_true", "h2", "dataset"}

// WriteCSV writes the replicate table to a CSV file
func WriteCSV(path string, table simulator.ReplicateTable) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range table {
		record := []string{
			strconv.FormatFloat(row.MinP, 'g', -1, 64),
			strconv.FormatFloat(row.MaxP, 'g', -1, 64),
			strconv.Itoa(row.BonfTrue),
			strconv.Itoa(row.FDRDetect),
			strconv.Itoa(row.FDRTrue),
			strconv.FormatFloat(row.H2, 'g', -1, 64),
			row.Dataset,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

// WriteXLSX writes the replicate table to an XLSX workbook
func WriteXLSX(path string, table simulator.ReplicateTable) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(columns))
	for i, name := range columns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write XLSX header: %w", err)
	}

	for i, row := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address XLSX row: %w", err)
		}

		values := []interface{}{row.MinP, row.MaxP, row.BonfTrue, row.FDRDetect, row.FDRTrue, row.H2, row.Dataset}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write XLSX row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save XLSX file: %w", err)
	}
	return nil
}
