package handlers

import (
	"net/http"

	"github.com/fleetscore/server/pkg/client"
	costaggregates "github.com/fleetscore/server/pkg/cost/aggregates"
	"github.com/fleetscore/server/pkg/governance"
	govaggregates "github.com/fleetscore/server/pkg/governance/aggregates"
	"github.com/fleetscore/server/pkg/platform/aggregates"
	relaggregates "github.com/fleetscore/server/pkg/reliability/aggregates"
	sloaggregates "github.com/fleetscore/server/pkg/slo/aggregates"
	"github.com/labstack/echo/v4"
)

func toAggregate(payload client.RegisterServiceInput) aggregates.Service {
	slos := make([]sloaggregates.SLODefinition, 0, len(payload.SLOs))
	for _, slo := range payload.SLOs {
		slos = append(slos, sloaggregates.SLODefinition{
			Name:       slo.Name,
			TargetPct:  slo.TargetPct,
			CurrentPct: slo.CurrentPct,
		})
	}
	entries := make([]costaggregates.CostEntry, 0, len(payload.CostEntries))
	for _, entry := range payload.CostEntries {
		entries = append(entries, costaggregates.CostEntry{
			Label:  entry.Label,
			Amount: entry.Amount,
		})
	}
	checks := governance.RunChecks(govaggregates.Posture{
		HasRunbook:          payload.Governance.HasRunbook,
		HasMonitoring:       payload.Governance.HasMonitoring,
		HasOwner:            payload.Governance.HasOwner,
		HasDocumentation:    payload.Governance.HasDocumentation,
		HasIncidentResponse: payload.Governance.HasIncidentResponse,
	})
	return aggregates.Service{
		Name: payload.Name,
		Team: payload.Team,
		SLOs: slos,
		Cost: costaggregates.CostProfile{
			Entries:       entries,
			BudgetMonthly: payload.BudgetMonthly,
		},
		Reliability: relaggregates.Metrics{
			UptimePct:            payload.Reliability.UptimePct,
			MTTRMinutes:          payload.Reliability.MTTRMinutes,
			Incidents30d:         payload.Reliability.Incidents30d,
			ChangeFailureRatePct: payload.Reliability.ChangeFailureRatePct,
		},
		GovernanceChecks: checks,
	}
}

func toClientService(service aggregates.Service) client.Service {
	result := client.Service{
		ID:            service.ID,
		Name:          service.Name,
		Team:          service.Team,
		BudgetMonthly: service.Cost.BudgetMonthly,
		Reliability: client.ReliabilityMetrics{
			UptimePct:            service.Reliability.UptimePct,
			MTTRMinutes:          service.Reliability.MTTRMinutes,
			Incidents30d:         service.Reliability.Incidents30d,
			ChangeFailureRatePct: service.Reliability.ChangeFailureRatePct,
		},
		CreatedAt: service.CreatedAt,
	}
	for _, slo := range service.SLOs {
		result.SLOs = append(result.SLOs, client.SLO{
			Name:       slo.Name,
			TargetPct:  slo.TargetPct,
			CurrentPct: slo.CurrentPct,
		})
	}
	for _, entry := range service.Cost.Entries {
		result.CostEntries = append(result.CostEntries, client.CostEntry{
			Label:  entry.Label,
			Amount: entry.Amount,
		})
	}
	for _, check := range service.GovernanceChecks {
		result.Governance = append(result.Governance, client.GovernanceCheck{
			Name:    check.Name,
			Passed:  check.Passed,
			Message: check.Message,
		})
	}
	return result
}

func (b *Builder) RegisterService(ec echo.Context) error {
	var payload client.RegisterServiceInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	service := toAggregate(payload)
	if err := b.platform.RegisterService(ec.Request().Context(), &service); err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, NewResponse("Service registered"))
}

func (b *Builder) GetService(ec echo.Context) error {
	var payload client.GetServiceInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	service, err := b.platform.GetServiceByName(ec.Request().Context(), payload.Name)
	if err != nil {
		return err
	}
	result := toClientService(*service)
	return ec.JSON(http.StatusOK, &result)
}

func (b *Builder) ListServices(ec echo.Context) error {
	services, err := b.platform.ListServices(ec.Request().Context())
	if err != nil {
		return err
	}
	result := client.ListServicesOutput{
		Result: []client.Service{},
	}
	for i := range services {
		result.Result = append(result.Result, toClientService(*services[i]))
	}
	return ec.JSON(http.StatusOK, result)
}

func (b *Builder) DeleteService(ec echo.Context) error {
	var payload client.DeleteServiceInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	if err := b.platform.DeleteService(ec.Request().Context(), payload.Name); err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, NewResponse("Service deleted"))
}
