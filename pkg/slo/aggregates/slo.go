package aggregates

// SLODefinition is one service level objective: a target compliance
// percentage and the currently measured one. The record is immutable,
// everything below is derived from it on demand.
type SLODefinition struct {
	Name       string
	TargetPct  float64
	CurrentPct float64
}

// IsMet reports whether the measured value reaches the target. Inputs
// outside 0-100 are not rejected, the comparison is total.
func (s SLODefinition) IsMet() bool {
	return s.CurrentPct >= s.TargetPct
}

// BudgetRemainingPct returns the remaining error budget on a uniform
// 0-100 axis, so SLOs with different absolute targets stay comparable.
// The total budget is 100 - target; a zero-width budget counts as fully
// consumed as soon as the target is missed.
func (s SLODefinition) BudgetRemainingPct() float64 {
	if s.CurrentPct >= s.TargetPct {
		return 100
	}
	totalBudget := 100 - s.TargetPct
	if totalBudget <= 0 {
		return 0
	}
	consumed := (s.TargetPct - s.CurrentPct) / totalBudget
	if consumed > 1 {
		consumed = 1
	}
	if consumed < 0 {
		consumed = 0
	}
	return (1 - consumed) * 100
}
