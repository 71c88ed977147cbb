// Package export writes a platform report to JSON, CSV or PDF files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fleetscore/server/pkg/platform/aggregates"
	"github.com/jung-kurt/gofpdf"
)

func generateFilename(filename, outputDir, extension string) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("fleetscore-report-%s", time.Now().Format("20060102-150405"))
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return "", fmt.Errorf("error creating output directory: %w", err)
		}
	}
	return filepath.Join(outputDir, fmt.Sprintf("%s.%s", filename, extension)), nil
}

// ToJSON writes the report as indented JSON and returns the absolute
// path of the written file.
func ToJSON(report *aggregates.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}
	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report.ToMap()); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// ToCSV writes one row per service plus the fleet totals.
func ToCSV(report *aggregates.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}
	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{
		"Service", "Team", "Health", "Governance", "Reliability Score",
		"Latest Cost", "Average Cost", "Cost Trend", "Over Budget",
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, service := range report.Services {
		record := []string{
			service.Name,
			service.Team,
			service.Health.String(),
			service.GovernanceStatus.String(),
			strconv.Itoa(service.ReliabilityScore),
			fmt.Sprintf("$%.2f", service.LatestCost),
			fmt.Sprintf("$%.2f", service.AverageCost),
			service.CostTrend.String(),
			strconv.FormatBool(service.OverBudget),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}
	return filepath.Abs(outputFilename)
}

// ToPDF renders the fleet summary and a per-service table.
func ToPDF(report *aggregates.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Platform Scorecard")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC1123)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Services: %d (healthy %d, degraded %d, critical %d)",
		report.TotalServices, report.HealthyCount, report.DegradedCount, report.CriticalCount))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total monthly cost: $%.2f", report.TotalMonthlyCost))
	pdf.Ln(10)

	headers := []string{"Service", "Team", "Health", "Governance", "Reliability", "Latest Cost", "Trend"}
	widths := []float64{50, 40, 30, 35, 30, 35, 30}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	for _, service := range report.Services {
		row := []string{
			service.Name,
			service.Team,
			service.Health.String(),
			service.GovernanceStatus.String(),
			strconv.Itoa(service.ReliabilityScore),
			fmt.Sprintf("$%.2f", service.LatestCost),
			service.CostTrend.String(),
		}
		for i, cell := range row {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}
	return filepath.Abs(outputFilename)
}
