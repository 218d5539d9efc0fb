package models

import "time"

const (
	ActionReadingRegistered = "reading.registered"
	ActionThresholdsUpdated = "thresholds.updated"
	ActionAlertResolved     = "alert.resolved"
	ActionMessageSent       = "message.sent"
	ActionLimiterUpdated    = "limiter.updated"
)

// AuditFilter narrows ListEntries. Zero fields do not filter.
type AuditFilter struct {
	ActorUserID uint
	Action      string
	From        time.Time
	To          time.Time
	Limit       int
}

type MessageResult struct {
	Message      Message
	Outcome      DispatchOutcome
	Confirmation string
	AuditErr     error `json:"-"`
}
