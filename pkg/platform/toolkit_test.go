package platform_test

import (
	"encoding/json"
	"testing"

	costaggregates "github.com/fleetscore/server/pkg/cost/aggregates"
	"github.com/fleetscore/server/pkg/governance"
	govaggregates "github.com/fleetscore/server/pkg/governance/aggregates"
	"github.com/fleetscore/server/pkg/platform"
	"github.com/fleetscore/server/pkg/platform/aggregates"
	relaggregates "github.com/fleetscore/server/pkg/reliability/aggregates"
	sloaggregates "github.com/fleetscore/server/pkg/slo/aggregates"
	"github.com/stretchr/testify/assert"
)

func healthyService(name string) aggregates.Service {
	return aggregates.Service{
		Name: name,
		Team: "platform",
		SLOs: []sloaggregates.SLODefinition{
			{Name: "availability", TargetPct: 99.9, CurrentPct: 99.95},
		},
		Reliability: relaggregates.Metrics{UptimePct: 99.9, MTTRMinutes: 10, Incidents30d: 1, ChangeFailureRatePct: 5},
		GovernanceChecks: governance.RunChecks(govaggregates.Posture{
			HasRunbook:          true,
			HasMonitoring:       true,
			HasOwner:            true,
			HasDocumentation:    true,
			HasIncidentResponse: true,
		}),
	}
}

func criticalService(name string) aggregates.Service {
	return aggregates.Service{
		Name: name,
		Team: "legacy",
		SLOs: []sloaggregates.SLODefinition{
			{Name: "availability", TargetPct: 99.9, CurrentPct: 98.0},
		},
		Reliability:      relaggregates.Metrics{UptimePct: 95.0, MTTRMinutes: 120, Incidents30d: 10, ChangeFailureRatePct: 50},
		GovernanceChecks: governance.RunChecks(govaggregates.Posture{}),
	}
}

func TestEmptyToolkitReport(t *testing.T) {
	toolkit := platform.NewToolkit()
	report := toolkit.GenerateReport()
	assert.Equal(t, 0, report.TotalServices)
	assert.Equal(t, 0, report.HealthyCount+report.DegradedCount+report.CriticalCount)
	assert.Equal(t, 0.0, report.TotalMonthlyCost)
	assert.Empty(t, report.Services)
}

func TestGenerateReport(t *testing.T) {
	toolkit := platform.NewToolkit()
	toolkit.RegisterService(healthyService("api"))
	toolkit.RegisterService(criticalService("billing"))
	degraded := healthyService("worker")
	degraded.GovernanceChecks = governance.RunChecks(govaggregates.Posture{HasOwner: true})
	toolkit.RegisterService(degraded)

	report := toolkit.GenerateReport()
	assert.Equal(t, 3, report.TotalServices)
	assert.Equal(t, 1, report.HealthyCount)
	assert.Equal(t, 1, report.DegradedCount)
	assert.Equal(t, 1, report.CriticalCount)
	assert.Equal(t, report.TotalServices, report.HealthyCount+report.DegradedCount+report.CriticalCount)

	// services are sorted by name
	assert.Equal(t, "api", report.Services[0].Name)
	assert.Equal(t, "billing", report.Services[1].Name)
	assert.Equal(t, "worker", report.Services[2].Name)
}

func TestRegisterServiceReplaces(t *testing.T) {
	toolkit := platform.NewToolkit()
	toolkit.RegisterService(healthyService("api"))
	toolkit.RegisterService(criticalService("api"))
	assert.Equal(t, 1, toolkit.CountServices())

	report := toolkit.GenerateReport()
	assert.Equal(t, 1, report.TotalServices)
	assert.Equal(t, 0, report.HealthyCount)
	assert.Equal(t, 1, report.CriticalCount)
	assert.Equal(t, "legacy", report.Services[0].Team)
}

func TestTotalMonthlyCost(t *testing.T) {
	toolkit := platform.NewToolkit()
	service := healthyService("api")
	service.Cost = costaggregates.CostProfile{
		Entries: []costaggregates.CostEntry{{Label: "august", Amount: 500}},
	}
	toolkit.RegisterService(service)
	// a service without cost data contributes nothing
	toolkit.RegisterService(healthyService("worker"))

	report := toolkit.GenerateReport()
	assert.Equal(t, 500.0, report.TotalMonthlyCost)
}

func TestGenerateReportIsIdempotent(t *testing.T) {
	toolkit := platform.NewToolkit()
	toolkit.RegisterService(healthyService("api"))
	toolkit.RegisterService(criticalService("billing"))

	first := toolkit.GenerateReport()
	second := toolkit.GenerateReport()
	assert.Equal(t, first, second)
	assert.Equal(t, first.ToMap(), second.ToMap())

	// a later registration is reflected, nothing is cached
	toolkit.RegisterService(healthyService("worker"))
	third := toolkit.GenerateReport()
	assert.Equal(t, 3, third.TotalServices)
}

func TestReportToMap(t *testing.T) {
	toolkit := platform.NewToolkit()
	service := healthyService("api")
	service.Cost = costaggregates.CostProfile{
		Entries: []costaggregates.CostEntry{{Label: "july", Amount: 100}, {Label: "august", Amount: 150}},
	}
	toolkit.RegisterService(service)

	report := toolkit.GenerateReport()
	result := report.ToMap()
	assert.Contains(t, result, "total_services")
	assert.Contains(t, result, "services")
	assert.Contains(t, result, "total_monthly_cost")
	assert.Equal(t, 1, result["total_services"])
	assert.Equal(t, 150.0, result["total_monthly_cost"])

	services := result["services"].([]map[string]any)
	assert.Len(t, services, 1)
	assert.Equal(t, "healthy", services[0]["health"])
	assert.Equal(t, "compliant", services[0]["governance_status"])
	assert.Equal(t, "spiking", services[0]["cost_trend"])

	// the flattened report must be plain serializable data
	_, err := json.Marshal(result)
	assert.NoError(t, err)
}
