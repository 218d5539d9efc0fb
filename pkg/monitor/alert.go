package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/metrics"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

func (m *Monitor) checkReading(ctx context.Context, reading *models.VitalReading) ([]models.AlertDescription, error) {
	if m.Thresholds == nil {
		return nil, ErrServiceUnavailable
	}

	thresholds, err := m.Thresholds.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAlert)

	alerts := Evaluate(reading, thresholds)
	for _, alert := range alerts {
		metrics.AlertsRaised.WithLabelValues(string(alert.Kind)).Inc()
		logger.Info("Alert found",
			zap.Uint("patient_id", reading.PatientID),
			zap.Uint("thresholds_id", thresholds.ID),
			zap.Reflect("alert", alert),
		)
	}
	return alerts, nil
}

func (m *Monitor) storeAlerts(ctx context.Context, reading *models.VitalReading, alerts []models.AlertDescription) error {
	if len(alerts) == 0 {
		return nil
	}

	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAlert)

	now := time.Now()
	rows := common.Mapper(alerts, func(a models.AlertDescription) models.Alert {
		return models.Alert{
			PatientID:   reading.PatientID,
			ReadingID:   reading.ID,
			Kind:        a.Kind,
			Description: a.Text,
			Status:      models.AlertStatusPending,
			Timestamp:   now,
		}
	})

	if err := m.Db.Conn.WithContext(ctx).Create(&rows).Error; err != nil {
		return &StorageError{Op: "store alerts", Err: err}
	}

	for _, row := range rows {
		logger.Info("Alert saved", zap.Reflect("alert", row))
	}
	return nil
}

func (m *Monitor) getPatientAlerts(ctx context.Context, patientID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	err := m.Db.Conn.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("timestamp desc").
		Order("id desc").
		Find(&alerts).Error
	if err != nil {
		return nil, &StorageError{Op: "list alerts", Err: err}
	}
	return alerts, nil
}

func (m *Monitor) resolveAlert(ctx context.Context, alertID uint) (*models.Alert, error) {
	var alert models.Alert
	if err := m.Db.Conn.WithContext(ctx).First(&alert, alertID).Error; err != nil {
		return nil, &StorageError{Op: "find alert", Err: err}
	}

	if alert.Status == models.AlertStatusResolved {
		return &alert, nil
	}

	if err := m.Db.Conn.WithContext(ctx).Model(&alert).Update("status", models.AlertStatusResolved).Error; err != nil {
		return nil, &StorageError{Op: "resolve alert", Err: err}
	}
	alert.Status = models.AlertStatusResolved

	common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAlert).
		Info("Alert resolved", zap.Uint("alert_id", alert.ID), zap.Uint("patient_id", alert.PatientID))
	return &alert, nil
}

type IAlertImpl struct {
	monitor *Monitor
}

func (ia *IAlertImpl) CheckReading(ctx context.Context, reading *models.VitalReading) ([]models.AlertDescription, error) {
	return ia.monitor.checkReading(ctx, reading)
}

func (ia *IAlertImpl) StoreAlerts(ctx context.Context, reading *models.VitalReading, alerts []models.AlertDescription) error {
	return ia.monitor.storeAlerts(ctx, reading, alerts)
}

func (ia *IAlertImpl) GetPatientAlerts(ctx context.Context, patientID uint) ([]models.Alert, error) {
	return ia.monitor.getPatientAlerts(ctx, patientID)
}

func (ia *IAlertImpl) ResolveAlert(ctx context.Context, alertID uint) (*models.Alert, error) {
	return ia.monitor.resolveAlert(ctx, alertID)
}

func (m *Monitor) GetIAlert() IAlert {
	return &IAlertImpl{monitor: m}
}
