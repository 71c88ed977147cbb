package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/baidubce/bce-sdk-go/util"
	costaggregates "github.com/fleetscore/server/pkg/cost/aggregates"
	"github.com/fleetscore/server/pkg/governance"
	govaggregates "github.com/fleetscore/server/pkg/governance/aggregates"
	"github.com/fleetscore/server/pkg/platform/aggregates"
	relaggregates "github.com/fleetscore/server/pkg/reliability/aggregates"
	sloaggregates "github.com/fleetscore/server/pkg/slo/aggregates"
	"github.com/stretchr/testify/assert"
)

func TestServiceCRUD(t *testing.T) {
	budget := 200.0
	service := aggregates.Service{
		ID:        util.NewUUID(),
		Name:      "test-api",
		Team:      "platform",
		CreatedAt: time.Now().UTC(),
		SLOs: []sloaggregates.SLODefinition{
			{Name: "availability", TargetPct: 99.9, CurrentPct: 99.95},
		},
		Cost: costaggregates.CostProfile{
			Entries:       []costaggregates.CostEntry{{Label: "july", Amount: 100}, {Label: "august", Amount: 150}},
			BudgetMonthly: &budget,
		},
		Reliability: relaggregates.Metrics{UptimePct: 99.9, MTTRMinutes: 10, Incidents30d: 1, ChangeFailureRatePct: 5},
		GovernanceChecks: governance.RunChecks(govaggregates.Posture{
			HasRunbook:    true,
			HasMonitoring: true,
			HasOwner:      true,
		}),
	}
	err := TestComponent.CreateOrReplaceService(context.Background(), &service)
	assert.NoError(t, err)
	count, err := TestComponent.CountServices(context.Background())
	assert.NoError(t, err)
	assert.True(t, count > 0)

	serviceGet, err := TestComponent.GetServiceByName(context.Background(), service.Name)
	assert.NoError(t, err)
	assert.Equal(t, service.Name, serviceGet.Name)
	assert.Equal(t, service.Team, serviceGet.Team)
	assert.Equal(t, service.SLOs, serviceGet.SLOs)
	assert.Equal(t, service.Cost.Entries, serviceGet.Cost.Entries)
	assert.Equal(t, budget, *serviceGet.Cost.BudgetMonthly)
	assert.Equal(t, service.Reliability, serviceGet.Reliability)
	assert.Equal(t, service.GovernanceChecks, serviceGet.GovernanceChecks)
	assert.False(t, serviceGet.CreatedAt.IsZero())

	// registering again under the same name replaces the record and
	// keeps its identity
	update := aggregates.Service{
		ID:          util.NewUUID(),
		Name:        "test-api",
		Team:        "core",
		CreatedAt:   time.Now().UTC(),
		Reliability: relaggregates.Metrics{UptimePct: 95.0, MTTRMinutes: 120, Incidents30d: 10, ChangeFailureRatePct: 50},
	}
	err = TestComponent.CreateOrReplaceService(context.Background(), &update)
	assert.NoError(t, err)
	assert.Equal(t, serviceGet.ID, update.ID)

	serviceGet, err = TestComponent.GetServiceByName(context.Background(), service.Name)
	assert.NoError(t, err)
	assert.Equal(t, "core", serviceGet.Team)
	assert.Nil(t, serviceGet.SLOs)
	assert.Nil(t, serviceGet.Cost.BudgetMonthly)
	assert.Equal(t, update.Reliability, serviceGet.Reliability)

	services, err := TestComponent.ListServices(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, services)

	err = TestComponent.DeleteService(context.Background(), service.Name)
	assert.NoError(t, err)

	err = TestComponent.DeleteService(context.Background(), service.Name)
	assert.ErrorContains(t, err, "not found")

	_, err = TestComponent.GetServiceByName(context.Background(), service.Name)
	assert.ErrorContains(t, err, "not found")
}
