package governance

import "github.com/fleetscore/server/pkg/governance/aggregates"

type checkSpec struct {
	name    string
	flag    func(aggregates.Posture) bool
	passMsg string
	failMsg string
}

// The checklist is fixed: five checks, always in this order, one per
// posture flag.
var checklist = []checkSpec{
	{
		name:    "runbook",
		flag:    func(p aggregates.Posture) bool { return p.HasRunbook },
		passMsg: "runbook is available",
		failMsg: "write an operational runbook and link it from the service catalog",
	},
	{
		name:    "monitoring",
		flag:    func(p aggregates.Posture) bool { return p.HasMonitoring },
		passMsg: "monitoring is in place",
		failMsg: "add dashboards and alerts covering the service's SLOs",
	},
	{
		name:    "owner",
		flag:    func(p aggregates.Posture) bool { return p.HasOwner },
		passMsg: "an owning team is declared",
		failMsg: "declare an owning team so incidents can be routed",
	},
	{
		name:    "documentation",
		flag:    func(p aggregates.Posture) bool { return p.HasDocumentation },
		passMsg: "documentation is available",
		failMsg: "document the service's architecture and dependencies",
	},
	{
		name:    "incident-response",
		flag:    func(p aggregates.Posture) bool { return p.HasIncidentResponse },
		passMsg: "an incident response process is defined",
		failMsg: "define an incident response process including escalation",
	},
}

// RunChecks evaluates the five governance checks against a posture.
// It is a pure function: no hidden state, safe to call repeatedly,
// always returns exactly five results in checklist order.
func RunChecks(posture aggregates.Posture) []aggregates.CheckResult {
	results := make([]aggregates.CheckResult, 0, len(checklist))
	for _, check := range checklist {
		passed := check.flag(posture)
		message := check.failMsg
		if passed {
			message = check.passMsg
		}
		results = append(results, aggregates.CheckResult{
			Name:    check.name,
			Passed:  passed,
			Message: message,
		})
	}
	return results
}
