package aggregates

import "math"

// Weight constants for the composite reliability score.
// They must sum to 1.0. Availability dominates on purpose: an
// unavailable service is failing its users no matter how fast it
// recovers or how few changes break.
const (
	weightAvailability = 0.35
	weightRecovery     = 0.25
	weightIncidents    = 0.20
	weightChangeSafety = 0.20
)

// Saturation knees for the per-axis normalizers. Each axis ramps
// linearly and is clamped to [0,1]: full credit at or past the "full"
// value, zero credit at or past the "floor" value.
const (
	uptimeFloorPct = 99.0
	uptimeFullPct  = 99.9

	mttrFullMinutes  = 5.0
	mttrFloorMinutes = 30.0

	incidentsFloor = 5.0

	cfrFullPct  = 5.0
	cfrFloorPct = 15.0
)

// Metrics holds the four raw operational inputs of the reliability
// score. The record is immutable; the score is recomputed on demand.
type Metrics struct {
	UptimePct            float64
	MTTRMinutes          float64
	Incidents30d         int
	ChangeFailureRatePct float64
}

// Factors is the per-axis breakdown of the score, each value in [0,1].
// Useful for rendering per-dimension detail next to the composite.
type Factors struct {
	Availability float64
	Recovery     float64
	IncidentLoad float64
	ChangeSafety float64
}

// Factors normalizes each raw metric into [0,1] through its saturating
// ramp.
func (m Metrics) Factors() Factors {
	return Factors{
		Availability: clamp01((m.UptimePct - uptimeFloorPct) / (uptimeFullPct - uptimeFloorPct)),
		Recovery:     clamp01((mttrFloorMinutes - m.MTTRMinutes) / (mttrFloorMinutes - mttrFullMinutes)),
		IncidentLoad: clamp01(1 - float64(m.Incidents30d)/incidentsFloor),
		ChangeSafety: clamp01((cfrFloorPct - m.ChangeFailureRatePct) / (cfrFloorPct - cfrFullPct)),
	}
}

// Score computes the 0-100 composite reliability score: the weighted
// sum of the four normalized axes, scaled to 100 and rounded. A single
// catastrophic axis still drags the composite down sharply.
func (m Metrics) Score() int {
	f := m.Factors()
	score := 100 * (f.Availability*weightAvailability +
		f.Recovery*weightRecovery +
		f.IncidentLoad*weightIncidents +
		f.ChangeSafety*weightChangeSafety)
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
