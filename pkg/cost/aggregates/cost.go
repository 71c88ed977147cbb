package aggregates

import (
	"encoding/json"
	"fmt"
)

// CostEntry is one amount in a service's chronological cost history.
type CostEntry struct {
	Label  string
	Amount float64
}

// CostTrend classifies the movement between the two most recent cost
// entries. It is a closed set: every switch over it must be exhaustive.
type CostTrend int

const (
	TrendStable CostTrend = iota
	TrendSpiking
	TrendDecreasing
)

// trendBand is the relative delta between the last two entries above
// which the trend stops being considered routine billing noise.
const trendBand = 0.10

func (t CostTrend) String() string {
	switch t {
	case TrendStable:
		return "stable"
	case TrendSpiking:
		return "spiking"
	case TrendDecreasing:
		return "decreasing"
	default:
		return fmt.Sprintf("unknown trend %d", int(t))
	}
}

func (t CostTrend) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *CostTrend) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag {
	case "stable":
		*t = TrendStable
	case "spiking":
		*t = TrendSpiking
	case "decreasing":
		*t = TrendDecreasing
	default:
		return fmt.Errorf("unknown cost trend %s", tag)
	}
	return nil
}

// CostProfile is a service's ordered cost history plus an optional
// monthly budget. Entries are ordered oldest first.
type CostProfile struct {
	Entries       []CostEntry
	BudgetMonthly *float64
}

// LatestCost returns the most recent amount, 0 if the history is empty.
func (c CostProfile) LatestCost() float64 {
	if len(c.Entries) == 0 {
		return 0
	}
	return c.Entries[len(c.Entries)-1].Amount
}

// AverageCost returns the mean of all amounts, 0 if the history is empty.
func (c CostProfile) AverageCost() float64 {
	if len(c.Entries) == 0 {
		return 0
	}
	total := 0.0
	for _, entry := range c.Entries {
		total += entry.Amount
	}
	return total / float64(len(c.Entries))
}

// OverBudget reports whether a monthly budget is set and the latest
// cost exceeds it. No budget means never over budget.
func (c CostProfile) OverBudget() bool {
	return c.BudgetMonthly != nil && c.LatestCost() > *c.BudgetMonthly
}

// Trend compares the two most recent entries. Fewer than two entries,
// or a zero previous amount, leaves the delta undefined and the trend
// stable.
func (c CostProfile) Trend() CostTrend {
	if len(c.Entries) < 2 {
		return TrendStable
	}
	last := c.Entries[len(c.Entries)-1].Amount
	previous := c.Entries[len(c.Entries)-2].Amount
	if previous == 0 {
		return TrendStable
	}
	delta := (last - previous) / previous
	if delta > trendBand {
		return TrendSpiking
	}
	if delta < -trendBand {
		return TrendDecreasing
	}
	return TrendStable
}
