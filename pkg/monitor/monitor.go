package monitor

import (
	"context"
	"time"

	"liyu1981.xyz/telemonitoring-service/pkg/cache"
	"liyu1981.xyz/telemonitoring-service/pkg/db"
	"liyu1981.xyz/telemonitoring-service/pkg/mailer"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

type IThresholds interface {
	GetCurrent(ctx context.Context) (*models.AlertThresholds, error)
	SetPartial(ctx context.Context, kind models.SignalKind, min, max float64) (*models.AlertThresholds, error)
	SetPressureRange(ctx context.Context, min, max string) (*models.AlertThresholds, error)
	Replace(ctx context.Context, input *models.AlertThresholds) (*models.AlertThresholds, error)
	History(ctx context.Context, limit int) ([]models.AlertThresholds, error)
}

type IReading interface {
	RegisterReading(ctx context.Context, actorUserID uint, input *models.VitalReading) (*models.RegistrationResult, error)
	GetPatientReadings(ctx context.Context, patientID uint, since time.Time) ([]models.VitalReading, error)
	HasReadingOn(ctx context.Context, patientID uint, day time.Time) (bool, error)
}

type IAlert interface {
	CheckReading(ctx context.Context, reading *models.VitalReading) ([]models.AlertDescription, error)
	StoreAlerts(ctx context.Context, reading *models.VitalReading, alerts []models.AlertDescription) error
	GetPatientAlerts(ctx context.Context, patientID uint) ([]models.Alert, error)
	ResolveAlert(ctx context.Context, alertID uint) (*models.Alert, error)
}

type INotifier interface {
	Dispatch(ctx context.Context, patient models.Recipient, alerts []models.AlertDescription, recipients []models.Recipient) models.DispatchOutcome
	NotifyMessage(ctx context.Context, sender models.Recipient, recipient models.Recipient, text string) models.DispatchOutcome
}

type IAudit interface {
	Record(ctx context.Context, actorUserID uint, action string, detail string) error
	ListEntries(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
}

type IMessage interface {
	SendMessage(ctx context.Context, senderID uint, recipientID uint, text string) (*models.MessageResult, error)
	GetInbox(ctx context.Context, userID uint) ([]models.Message, error)
}

type NotifyOptions struct {
	Sender string
	// Timeout bounds each single delivery attempt.
	Timeout       time.Duration
	NotifyPatient bool
}

const DefaultNotifyTimeout = 10 * time.Second

type Monitor struct {
	Db     db.DB
	Mailer mailer.Mailer
	Cache  cache.ThresholdCache
	Notify NotifyOptions

	Thresholds IThresholds
	Reading    IReading
	Alert      IAlert
	Notifier   INotifier
	Audit      IAudit
	Message    IMessage
}

type ServiceOpts struct {
	Thresholds IThresholds
	Reading    IReading
	Alert      IAlert
	Notifier   INotifier
	Audit      IAudit
	Message    IMessage
}

func (m *Monitor) WithServices(opts ServiceOpts) *Monitor {
	if opts.Thresholds != nil {
		m.Thresholds = opts.Thresholds
	}
	if opts.Reading != nil {
		m.Reading = opts.Reading
	}
	if opts.Alert != nil {
		m.Alert = opts.Alert
	}
	if opts.Notifier != nil {
		m.Notifier = opts.Notifier
	}
	if opts.Audit != nil {
		m.Audit = opts.Audit
	}
	if opts.Message != nil {
		m.Message = opts.Message
	}
	return m
}

// WithDefaultServices binds every service to its database backed implementation.
func (m *Monitor) WithDefaultServices() *Monitor {
	return m.WithServices(ServiceOpts{
		Thresholds: m.GetIThresholds(),
		Reading:    m.GetIReading(),
		Alert:      m.GetIAlert(),
		Notifier:   m.GetINotifier(),
		Audit:      m.GetIAudit(),
		Message:    m.GetIMessage(),
	})
}

func (m *Monitor) notifyTimeout() time.Duration {
	if m.Notify.Timeout <= 0 {
		return DefaultNotifyTimeout
	}
	return m.Notify.Timeout
}
