package models

type PipelineState string

const (
	StateReceived        PipelineState = "received"
	StateValidated       PipelineState = "validated"
	StatePersisted       PipelineState = "persisted"
	StateEvaluated       PipelineState = "evaluated"
	StateNotifiedOk      PipelineState = "notified_ok"
	StateNotifiedPartial PipelineState = "notified_partial"
	StateNotifiedFailed  PipelineState = "notified_failed"
	StateAudited         PipelineState = "audited"
)

type RegistrationResult struct {
	Reading      VitalReading
	Alerts       []AlertDescription
	Outcome      DispatchOutcome
	States       []PipelineState
	Confirmation string
	// EvaluationErr is set when the stored reading could not be checked.
	EvaluationErr error `json:"-"`
	// AuditErr is set when the reading was stored but its audit entry was not.
	AuditErr error `json:"-"`
}

func (r *RegistrationResult) Reached(state PipelineState) bool {
	for _, s := range r.States {
		if s == state {
			return true
		}
	}
	return false
}

func (r *RegistrationResult) Final() PipelineState {
	if len(r.States) == 0 {
		return ""
	}
	return r.States[len(r.States)-1]
}
