package platform

import (
	"sort"
	"sync"

	"github.com/fleetscore/server/pkg/platform/aggregates"
)

// Toolkit owns the only mutable state of the scorecard: a name keyed
// registry of services. Each Toolkit is independent, there is no
// process-wide registry. Registration and report generation are
// serialized behind the mutex so a single Toolkit can be shared, but
// the intended use is one Toolkit per request or session.
type Toolkit struct {
	mu       sync.Mutex
	services map[string]aggregates.Service
}

func NewToolkit() *Toolkit {
	return &Toolkit{
		services: make(map[string]aggregates.Service),
	}
}

// RegisterService inserts the service into the registry, replacing any
// prior entry with the same name. No other validation happens here.
func (t *Toolkit) RegisterService(service aggregates.Service) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.services[service.Name] = service
}

// CountServices returns the number of registered services.
func (t *Toolkit) CountServices() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.services)
}

// GenerateReport evaluates every registered service and returns a
// fresh fleet snapshot: health partition counts, the summed latest
// monthly cost, and the per-service reports sorted by name. Nothing is
// cached, a later call reflects later registrations.
func (t *Toolkit) GenerateReport() aggregates.Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.services))
	for name := range t.services {
		names = append(names, name)
	}
	sort.Strings(names)

	report := aggregates.Report{
		TotalServices: len(names),
		Services:      make([]aggregates.ServiceReport, 0, len(names)),
	}
	for _, name := range names {
		serviceReport := aggregates.NewServiceReport(t.services[name])
		switch serviceReport.Health {
		case aggregates.Healthy:
			report.HealthyCount++
		case aggregates.Degraded:
			report.DegradedCount++
		case aggregates.Critical:
			report.CriticalCount++
		}
		report.TotalMonthlyCost += serviceReport.LatestCost
		report.Services = append(report.Services, serviceReport)
	}
	return report
}
