package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/metrics"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

const (
	ConfirmationRegistered         = "Sinais vitais registrados com sucesso!"
	ConfirmationNotified           = "Sinais vitais registrados e profissional notificado!"
	ConfirmationNotNotified        = "Sinais vitais registrados, mas não foi possível notificar o profissional."
	ConfirmationNoRecipientsLookup = "Sinais vitais registrados, mas não foi possível identificar o profissional para notificação."
)

var errNoRecipients = errors.New("no notification recipients for patient")

func toRecipient(u *models.User) models.Recipient {
	return models.Recipient{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// recipientsFor resolves the patient identity and who must hear about its alerts.
func (m *Monitor) recipientsFor(ctx context.Context, patientID uint) (models.Recipient, []models.Recipient, error) {
	var patient models.Patient
	err := m.Db.Conn.WithContext(ctx).
		Preload("User").
		Preload("ResponsibleProfessional").
		First(&patient, patientID).Error
	if err != nil {
		return models.Recipient{}, nil, &StorageError{Op: "load patient", Err: err}
	}

	self := toRecipient(&patient.User)
	self.Role = models.UserRolePatient

	var recipients []models.Recipient
	if patient.ResponsibleProfessional != nil {
		recipients = append(recipients, toRecipient(patient.ResponsibleProfessional))
	}
	if m.Notify.NotifyPatient {
		recipients = append(recipients, self)
	}
	if len(recipients) == 0 {
		return self, nil, errNoRecipients
	}
	return self, recipients, nil
}

func notifiedState(status models.DispatchStatus) models.PipelineState {
	switch status {
	case models.DispatchStatusDelivered:
		return models.StateNotifiedOk
	case models.DispatchStatusPartial:
		return models.StateNotifiedPartial
	default:
		return models.StateNotifiedFailed
	}
}

func (m *Monitor) evaluateStored(ctx context.Context, reading *models.VitalReading) ([]models.AlertDescription, error) {
	if m.Alert == nil {
		return nil, ErrServiceUnavailable
	}
	alerts, err := m.Alert.CheckReading(ctx, reading)
	if err != nil {
		return nil, err
	}
	if err := m.Alert.StoreAlerts(ctx, reading, alerts); err != nil {
		common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAlert).
			Error("Failed to store alerts", zap.Uint("reading_id", reading.ID), zap.Error(err))
	}
	return alerts, nil
}

func (m *Monitor) notifyAlerts(ctx context.Context, logger *zap.Logger, reading *models.VitalReading, alerts []models.AlertDescription) (models.DispatchOutcome, string) {
	patient, recipients, err := m.recipientsFor(ctx, reading.PatientID)
	if err != nil {
		logger.Error("Could not resolve notification recipients", zap.Uint("patient_id", reading.PatientID), zap.Error(err))
		return models.DispatchOutcome{BatchID: NewID(), Status: models.DispatchStatusFailed}, ConfirmationNoRecipientsLookup
	}
	if m.Notifier == nil {
		logger.Error("Notifier not configured", zap.Uint("patient_id", reading.PatientID))
		return models.DispatchOutcome{BatchID: NewID(), Status: models.DispatchStatusFailed}, ConfirmationNotNotified
	}

	outcome := m.Notifier.Dispatch(ctx, patient, alerts, recipients)
	if outcome.Status == models.DispatchStatusDelivered {
		return outcome, ConfirmationNotified
	}
	return outcome, ConfirmationNotNotified
}

func (m *Monitor) registerReading(ctx context.Context, actorUserID uint, input *models.VitalReading) (*models.RegistrationResult, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryReading).
		With(zap.String("request_id", RequestIDFromContext(ctx)), zap.Uint("actor_user_id", actorUserID))

	result := &models.RegistrationResult{States: []models.PipelineState{models.StateReceived}}

	if err := ValidateReading(input); err != nil {
		logger.Info("Reading rejected", zap.Error(err))
		return nil, err
	}
	if _, err := ValidateBloodPressure(input.BloodPressure); err != nil {
		logger.Warn("Blood pressure did not validate", zap.String("blood_pressure", input.BloodPressure), zap.Error(err))
	}
	result.States = append(result.States, models.StateValidated)

	reading := *input
	reading.ID = 0
	reading.RecordedBy = actorUserID
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now()
	}
	if err := m.Db.Conn.WithContext(ctx).Create(&reading).Error; err != nil {
		logger.Error("Failed to persist reading", zap.Uint("patient_id", reading.PatientID), zap.Error(err))
		return nil, &StorageError{Op: "persist reading", Err: err}
	}
	metrics.ReadingsRegistered.Inc()
	logger.Info("Reading registered", zap.Reflect("reading", reading))
	result.Reading = reading
	result.States = append(result.States, models.StatePersisted)

	// nothing below can undo the stored reading
	alerts, err := m.evaluateStored(ctx, &reading)
	if err != nil {
		logger.Error("Failed to evaluate reading", zap.Uint("reading_id", reading.ID), zap.Error(err))
		result.EvaluationErr = err
		result.Alerts = []models.AlertDescription{}
	} else {
		result.Alerts = alerts
		result.States = append(result.States, models.StateEvaluated)
	}

	if len(result.Alerts) == 0 {
		result.Outcome = models.DispatchOutcome{Status: models.DispatchStatusSkipped}
		result.Confirmation = ConfirmationRegistered
	} else {
		result.Outcome, result.Confirmation = m.notifyAlerts(ctx, logger, &reading, result.Alerts)
		result.States = append(result.States, notifiedState(result.Outcome.Status))
	}

	detail := fmt.Sprintf("patient=%d reading=%d alerts=%d notification=%s",
		reading.PatientID, reading.ID, len(result.Alerts), result.Outcome.Status)
	if m.Audit == nil {
		result.AuditErr = ErrServiceUnavailable
	} else {
		result.AuditErr = m.Audit.Record(ctx, actorUserID, models.ActionReadingRegistered, detail)
	}
	if result.AuditErr != nil {
		logger.Error("Reading registered without audit entry", zap.Uint("reading_id", reading.ID), zap.Error(result.AuditErr))
	} else {
		result.States = append(result.States, models.StateAudited)
	}

	return result, nil
}

func (m *Monitor) getPatientReadings(ctx context.Context, patientID uint, since time.Time) ([]models.VitalReading, error) {
	q := m.Db.Conn.WithContext(ctx).Where("patient_id = ?", patientID)
	if !since.IsZero() {
		q = q.Where("recorded_at >= ?", since)
	}

	var readings []models.VitalReading
	if err := q.Order("recorded_at desc").Order("id desc").Find(&readings).Error; err != nil {
		return nil, &StorageError{Op: "list readings", Err: err}
	}
	return readings, nil
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

func (m *Monitor) hasReadingOn(ctx context.Context, patientID uint, day time.Time) (bool, error) {
	from := startOfDay(day)
	to := from.AddDate(0, 0, 1)

	var count int64
	err := m.Db.Conn.WithContext(ctx).
		Model(&models.VitalReading{}).
		Where("patient_id = ? AND recorded_at >= ? AND recorded_at < ?", patientID, from, to).
		Count(&count).Error
	if err != nil {
		return false, &StorageError{Op: "count readings", Err: err}
	}
	return count > 0, nil
}

type IReadingImpl struct {
	monitor *Monitor
}

func (ir *IReadingImpl) RegisterReading(ctx context.Context, actorUserID uint, input *models.VitalReading) (*models.RegistrationResult, error) {
	return ir.monitor.registerReading(ctx, actorUserID, input)
}

func (ir *IReadingImpl) GetPatientReadings(ctx context.Context, patientID uint, since time.Time) ([]models.VitalReading, error) {
	return ir.monitor.getPatientReadings(ctx, patientID, since)
}

func (ir *IReadingImpl) HasReadingOn(ctx context.Context, patientID uint, day time.Time) (bool, error) {
	return ir.monitor.hasReadingOn(ctx, patientID, day)
}

func (m *Monitor) GetIReading() IReading {
	return &IReadingImpl{monitor: m}
}
