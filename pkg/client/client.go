// Package client contains the payload types of the fleetscore HTTP
// API, shared between the handlers and API consumers.
package client

import "time"

type Response struct {
	Messages []string `json:"messages"`
}

type SLO struct {
	Name       string  `json:"name" validate:"required,max=255"`
	TargetPct  float64 `json:"target_pct" validate:"gte=0,lte=100"`
	CurrentPct float64 `json:"current_pct"`
}

type CostEntry struct {
	Label  string  `json:"label" validate:"required,max=255"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

type ReliabilityMetrics struct {
	UptimePct            float64 `json:"uptime_pct" validate:"gte=0,lte=100"`
	MTTRMinutes          float64 `json:"mttr_minutes" validate:"gte=0"`
	Incidents30d         int     `json:"incidents_30d" validate:"gte=0"`
	ChangeFailureRatePct float64 `json:"change_failure_rate_pct" validate:"gte=0,lte=100"`
}

type GovernancePosture struct {
	HasRunbook          bool `json:"has_runbook"`
	HasMonitoring       bool `json:"has_monitoring"`
	HasOwner            bool `json:"has_owner"`
	HasDocumentation    bool `json:"has_documentation"`
	HasIncidentResponse bool `json:"has_incident_response"`
}

type RegisterServiceInput struct {
	Name          string             `json:"name" validate:"required,max=255"`
	Team          string             `json:"team" validate:"max=255"`
	SLOs          []SLO              `json:"slos" validate:"dive"`
	CostEntries   []CostEntry        `json:"cost_entries" validate:"dive"`
	BudgetMonthly *float64           `json:"budget_monthly,omitempty"`
	Reliability   ReliabilityMetrics `json:"reliability"`
	Governance    GovernancePosture  `json:"governance"`
}

type GetServiceInput struct {
	Name string `param:"name" validate:"required,max=255"`
}

type DeleteServiceInput struct {
	Name string `param:"name" validate:"required,max=255"`
}

type GovernanceCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

type Service struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Team          string             `json:"team"`
	SLOs          []SLO              `json:"slos"`
	CostEntries   []CostEntry        `json:"cost_entries"`
	BudgetMonthly *float64           `json:"budget_monthly,omitempty"`
	Reliability   ReliabilityMetrics `json:"reliability"`
	Governance    []GovernanceCheck  `json:"governance_checks"`
	CreatedAt     time.Time          `json:"created_at"`
}

type ListServicesOutput struct {
	Result []Service `json:"result"`
}
