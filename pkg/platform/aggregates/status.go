package aggregates

import (
	"encoding/json"
	"fmt"
)

// HealthStatus is the three-way summary of a service's overall state.
// Closed set: switches over it must be exhaustive.
type HealthStatus int

const (
	Healthy HealthStatus = iota
	Degraded
	Critical
)

func (h HealthStatus) String() string {
	switch h {
	case Healthy:
		return "healthy"
	case Degraded:
		return "degraded"
	case Critical:
		return "critical"
	default:
		return fmt.Sprintf("unknown health status %d", int(h))
	}
}

func (h HealthStatus) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", h.String())), nil
}

func (h *HealthStatus) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag {
	case "healthy":
		*h = Healthy
	case "degraded":
		*h = Degraded
	case "critical":
		*h = Critical
	default:
		return fmt.Errorf("unknown health status %s", tag)
	}
	return nil
}

// GovernanceStatus is the two-way governance posture summary.
type GovernanceStatus int

const (
	Compliant GovernanceStatus = iota
	NonCompliant
)

func (g GovernanceStatus) String() string {
	switch g {
	case Compliant:
		return "compliant"
	case NonCompliant:
		return "non_compliant"
	default:
		return fmt.Sprintf("unknown governance status %d", int(g))
	}
}

func (g GovernanceStatus) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", g.String())), nil
}

func (g *GovernanceStatus) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag {
	case "compliant":
		*g = Compliant
	case "non_compliant":
		*g = NonCompliant
	default:
		return fmt.Errorf("unknown governance status %s", tag)
	}
	return nil
}
