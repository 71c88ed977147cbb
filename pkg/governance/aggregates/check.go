package aggregates

// Posture holds the five operational readiness attestations for a
// service. Nothing defaults to true: an empty posture fails every
// check.
type Posture struct {
	HasRunbook          bool
	HasMonitoring       bool
	HasOwner            bool
	HasDocumentation    bool
	HasIncidentResponse bool
}

// CheckResult is the outcome of one named governance check. Failed
// checks always carry a non-empty corrective message.
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}
