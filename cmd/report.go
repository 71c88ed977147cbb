package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/fleetscore/server/internal/database"
	"github.com/fleetscore/server/internal/export"
	"github.com/fleetscore/server/pkg/platform"
	"github.com/fleetscore/server/pkg/platform/aggregates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	healthyColor  = color.New(color.FgGreen, color.Bold).SprintFunc()
	degradedColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	criticalColor = color.New(color.FgRed, color.Bold).SprintFunc()
)

func colorHealth(health aggregates.HealthStatus) string {
	switch health {
	case aggregates.Healthy:
		return healthyColor(health.String())
	case aggregates.Degraded:
		return degradedColor(health.String())
	case aggregates.Critical:
		return criticalColor(health.String())
	default:
		return health.String()
	}
}

func buildReportCmd(logger *slog.Logger) *cobra.Command {
	var exportFormats []string
	var outputDir string
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generates and displays the fleet scorecard report",
		Run: func(cmd *cobra.Command, args []string) {
			err := runReport(logger, exportFormats, outputDir)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(2)
			}
		},
	}
	reportCmd.Flags().StringSliceVar(&exportFormats, "export", nil, "Export formats (json, csv, pdf)")
	reportCmd.Flags().StringVar(&outputDir, "dir", ".", "Directory for exported reports")
	return reportCmd
}

func runReport(logger *slog.Logger, exportFormats []string, outputDir string) error {
	config, err := loadConfiguration()
	if err != nil {
		return err
	}
	store, err := database.New(logger, config.Database)
	if err != nil {
		return err
	}
	platformService, err := platform.New(logger, store, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	report, err := platformService.GenerateReport(context.Background())
	if err != nil {
		return err
	}

	renderReport(report)

	for _, format := range exportFormats {
		var path string
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "json":
			path, err = export.ToJSON(report, "", outputDir)
		case "csv":
			path, err = export.ToCSV(report, "", outputDir)
		case "pdf":
			path, err = export.ToPDF(report, "", outputDir)
		default:
			return fmt.Errorf("unknown export format %s", format)
		}
		if err != nil {
			return err
		}
		pterm.Success.Printfln("report exported to %s", path)
	}
	return nil
}

func renderReport(report *aggregates.Report) {
	pterm.DefaultSection.Println("Platform Scorecard")
	pterm.Info.Printfln("%d services: %d healthy, %d degraded, %d critical",
		report.TotalServices, report.HealthyCount, report.DegradedCount, report.CriticalCount)
	pterm.Info.Printfln("total monthly cost: $%.2f", report.TotalMonthlyCost)

	rows := pterm.TableData{
		{"Service", "Team", "Health", "Governance", "Reliability", "Latest Cost", "Trend"},
	}
	for _, service := range report.Services {
		rows = append(rows, []string{
			service.Name,
			service.Team,
			colorHealth(service.Health),
			service.GovernanceStatus.String(),
			fmt.Sprintf("%d", service.ReliabilityScore),
			fmt.Sprintf("$%.2f", service.LatestCost),
			service.CostTrend.String(),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		pterm.Error.Printfln("fail to render the report table: %s", err.Error())
	}
}
