package aggregates

import (
	costaggregates "github.com/fleetscore/server/pkg/cost/aggregates"
	govaggregates "github.com/fleetscore/server/pkg/governance/aggregates"
)

// SLOReport is the evaluated view of one SLO inside a report.
type SLOReport struct {
	Name               string  `json:"name"`
	TargetPct          float64 `json:"target_pct"`
	CurrentPct         float64 `json:"current_pct"`
	IsMet              bool    `json:"is_met"`
	BudgetRemainingPct float64 `json:"budget_remaining_pct"`
}

// ServiceReport is the evaluated view of one service inside a report.
type ServiceReport struct {
	Name             string                      `json:"name"`
	Team             string                      `json:"team"`
	Health           HealthStatus                `json:"health"`
	GovernanceStatus GovernanceStatus            `json:"governance_status"`
	ReliabilityScore int                         `json:"reliability_score"`
	CostTrend        costaggregates.CostTrend    `json:"cost_trend"`
	LatestCost       float64                     `json:"latest_cost"`
	AverageCost      float64                     `json:"average_cost"`
	OverBudget       bool                        `json:"over_budget"`
	SLOs             []SLOReport                 `json:"slos"`
	GovernanceChecks []govaggregates.CheckResult `json:"governance_checks"`
}

// Report is an ephemeral fleet-wide snapshot. It is recomputed on
// every generation and never cached: generating twice over the same
// registry yields deep-equal reports.
type Report struct {
	TotalServices    int             `json:"total_services"`
	HealthyCount     int             `json:"healthy_count"`
	DegradedCount    int             `json:"degraded_count"`
	CriticalCount    int             `json:"critical_count"`
	TotalMonthlyCost float64         `json:"total_monthly_cost"`
	Services         []ServiceReport `json:"services"`
}

// NewServiceReport evaluates every derived value of a service into its
// report view.
func NewServiceReport(service Service) ServiceReport {
	slos := make([]SLOReport, 0, len(service.SLOs))
	for _, slo := range service.SLOs {
		slos = append(slos, SLOReport{
			Name:               slo.Name,
			TargetPct:          slo.TargetPct,
			CurrentPct:         slo.CurrentPct,
			IsMet:              slo.IsMet(),
			BudgetRemainingPct: slo.BudgetRemainingPct(),
		})
	}
	return ServiceReport{
		Name:             service.Name,
		Team:             service.Team,
		Health:           service.Health(),
		GovernanceStatus: service.GovernanceStatus(),
		ReliabilityScore: service.Reliability.Score(),
		CostTrend:        service.Cost.Trend(),
		LatestCost:       service.Cost.LatestCost(),
		AverageCost:      service.Cost.AverageCost(),
		OverBudget:       service.Cost.OverBudget(),
		SLOs:             slos,
		GovernanceChecks: service.GovernanceChecks,
	}
}

// ToMap flattens the report into a plain serializable structure,
// rendering the closed variants as their lowercase string tags.
func (r Report) ToMap() map[string]any {
	services := make([]map[string]any, 0, len(r.Services))
	for _, service := range r.Services {
		slos := make([]map[string]any, 0, len(service.SLOs))
		for _, slo := range service.SLOs {
			slos = append(slos, map[string]any{
				"name":                 slo.Name,
				"target_pct":           slo.TargetPct,
				"current_pct":          slo.CurrentPct,
				"is_met":               slo.IsMet,
				"budget_remaining_pct": slo.BudgetRemainingPct,
			})
		}
		checks := make([]map[string]any, 0, len(service.GovernanceChecks))
		for _, check := range service.GovernanceChecks {
			checks = append(checks, map[string]any{
				"name":    check.Name,
				"passed":  check.Passed,
				"message": check.Message,
			})
		}
		services = append(services, map[string]any{
			"name":              service.Name,
			"team":              service.Team,
			"health":            service.Health.String(),
			"governance_status": service.GovernanceStatus.String(),
			"reliability_score": service.ReliabilityScore,
			"cost_trend":        service.CostTrend.String(),
			"latest_cost":       service.LatestCost,
			"average_cost":      service.AverageCost,
			"over_budget":       service.OverBudget,
			"slos":              slos,
			"governance_checks": checks,
		})
	}
	return map[string]any{
		"total_services":     r.TotalServices,
		"healthy_count":      r.HealthyCount,
		"degraded_count":     r.DegradedCount,
		"critical_count":     r.CriticalCount,
		"total_monthly_cost": r.TotalMonthlyCost,
		"services":           services,
	}
}
