package aggregates_test

import (
	"fmt"
	"testing"

	"github.com/fleetscore/server/pkg/slo/aggregates"
	"github.com/stretchr/testify/assert"
)

func TestIsMet(t *testing.T) {
	cases := []struct {
		target  float64
		current float64
		met     bool
	}{
		{target: 99.9, current: 99.95, met: true},
		{target: 99.9, current: 98.0, met: false},
		{target: 99.0, current: 99.0, met: true},
		{target: 0, current: 0, met: true},
		{target: 100, current: 99.999, met: false},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v/%v", c.target, c.current), func(t *testing.T) {
			slo := aggregates.SLODefinition{Name: "availability", TargetPct: c.target, CurrentPct: c.current}
			assert.Equal(t, c.met, slo.IsMet())
		})
	}
}

func TestBudgetRemainingPct(t *testing.T) {
	// met SLOs keep their full budget
	slo := aggregates.SLODefinition{TargetPct: 99.9, CurrentPct: 99.95}
	assert.Equal(t, 100.0, slo.BudgetRemainingPct())
	assert.GreaterOrEqual(t, slo.BudgetRemainingPct(), 40.0)

	slo = aggregates.SLODefinition{TargetPct: 99.0, CurrentPct: 99.0}
	assert.GreaterOrEqual(t, slo.BudgetRemainingPct(), 0.0)

	slo = aggregates.SLODefinition{TargetPct: 99.0, CurrentPct: 100.0}
	assert.GreaterOrEqual(t, slo.BudgetRemainingPct(), 90.0)

	// half of a 1% budget consumed
	slo = aggregates.SLODefinition{TargetPct: 99.0, CurrentPct: 98.5}
	assert.InDelta(t, 50.0, slo.BudgetRemainingPct(), 0.001)

	// budget fully consumed, and clamped beyond that
	slo = aggregates.SLODefinition{TargetPct: 99.0, CurrentPct: 98.0}
	assert.Equal(t, 0.0, slo.BudgetRemainingPct())
	slo = aggregates.SLODefinition{TargetPct: 99.0, CurrentPct: 50.0}
	assert.Equal(t, 0.0, slo.BudgetRemainingPct())

	// zero-width budget counts as fully consumed once missed
	slo = aggregates.SLODefinition{TargetPct: 100.0, CurrentPct: 99.999}
	assert.Equal(t, 0.0, slo.BudgetRemainingPct())
}

func TestBudgetRemainingPctBounds(t *testing.T) {
	for _, target := range []float64{0, 50, 99, 99.9, 99.99, 100} {
		for _, current := range []float64{-10, 0, 42, 98, 99.5, 100, 120} {
			slo := aggregates.SLODefinition{TargetPct: target, CurrentPct: current}
			remaining := slo.BudgetRemainingPct()
			assert.GreaterOrEqual(t, remaining, 0.0, "target %v current %v", target, current)
			assert.LessOrEqual(t, remaining, 100.0, "target %v current %v", target, current)
		}
	}
}
