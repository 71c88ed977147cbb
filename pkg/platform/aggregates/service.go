package aggregates

import (
	"time"

	costaggregates "github.com/fleetscore/server/pkg/cost/aggregates"
	govaggregates "github.com/fleetscore/server/pkg/governance/aggregates"
	relaggregates "github.com/fleetscore/server/pkg/reliability/aggregates"
	sloaggregates "github.com/fleetscore/server/pkg/slo/aggregates"
)

// Thresholds of the health rule. A reliability score below
// reliabilityCriticalThreshold combined with a breached SLO or a
// non-compliant governance posture is critical; healthy requires at
// least reliabilityHealthyThreshold.
const (
	reliabilityCriticalThreshold = 50
	reliabilityHealthyThreshold  = 80
)

// Service is one platform service with all its operational signals.
// Sub-records may be empty: a missing signal degrades to neutral, it
// never forces a classification on its own. Replacing a service means
// registering a new record under the same name, never mutating this
// one.
type Service struct {
	ID               string
	Name             string
	Team             string
	SLOs             []sloaggregates.SLODefinition
	Cost             costaggregates.CostProfile
	Reliability      relaggregates.Metrics
	GovernanceChecks []govaggregates.CheckResult
	CreatedAt        time.Time
}

// SLOComplianceRatio returns the fraction of the service's SLOs that
// are met, 1.0 when none are defined.
func (s Service) SLOComplianceRatio() float64 {
	if len(s.SLOs) == 0 {
		return 1
	}
	met := 0
	for _, slo := range s.SLOs {
		if slo.IsMet() {
			met++
		}
	}
	return float64(met) / float64(len(s.SLOs))
}

// GovernanceStatus is compliant iff every check passed, vacuously
// compliant when no checks are attached.
func (s Service) GovernanceStatus() GovernanceStatus {
	for _, check := range s.GovernanceChecks {
		if !check.Passed {
			return NonCompliant
		}
	}
	return Compliant
}

// Health combines SLO compliance, the reliability score and the
// governance posture into the three-way status. First match wins:
//
//  1. critical when reliability is below 50 and either an SLO is
//     breached or governance is non-compliant: a severe breach is never
//     masked by otherwise good numbers;
//  2. healthy only when all three axes are simultaneously good;
//  3. degraded otherwise, so partial problems stay visible.
func (s Service) Health() HealthStatus {
	complianceRatio := s.SLOComplianceRatio()
	score := s.Reliability.Score()
	governance := s.GovernanceStatus()

	if score < reliabilityCriticalThreshold && (complianceRatio < 1 || governance == NonCompliant) {
		return Critical
	}
	if complianceRatio == 1 && score >= reliabilityHealthyThreshold && governance == Compliant {
		return Healthy
	}
	return Degraded
}
