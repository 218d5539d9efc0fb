package models

type Recipient struct {
	UserID uint
	Name   string
	Email  string
	Role   UserRole
}

type DispatchStatus string

const (
	DispatchStatusSkipped   DispatchStatus = "skipped"
	DispatchStatusDelivered DispatchStatus = "delivered"
	DispatchStatusPartial   DispatchStatus = "partial"
	DispatchStatusFailed    DispatchStatus = "failed"
)

type FailedDelivery struct {
	Recipient Recipient
	Reason    string
}

type DispatchOutcome struct {
	BatchID   string
	Status    DispatchStatus
	Delivered []Recipient
	Failed    []FailedDelivery
}

func (o DispatchOutcome) Attempted() int {
	return len(o.Delivered) + len(o.Failed)
}
