package monitor

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/metrics"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

const DefaultHistoryLimit = 50

func thresholdsLogger() *zap.Logger {
	return common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryThresholds)
}

// latestThresholds reads the newest stored record. found is false when none was ever stored.
func (m *Monitor) latestThresholds(ctx context.Context) (thresholds *models.AlertThresholds, found bool, err error) {
	var latest models.AlertThresholds
	tx := m.Db.Conn.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Limit(1).
		Find(&latest)
	if tx.Error != nil {
		return nil, false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, false, nil
	}
	return &latest, true, nil
}

func (m *Monitor) currentFromStore(ctx context.Context) (*models.AlertThresholds, error) {
	latest, found, err := m.latestThresholds(ctx)
	if err != nil {
		return nil, &StorageError{Op: "load thresholds", Err: err}
	}
	if !found {
		defaults := models.DefaultAlertThresholds()
		return &defaults, nil
	}
	return latest, nil
}

func (m *Monitor) getCurrentThresholds(ctx context.Context) (*models.AlertThresholds, error) {
	logger := thresholdsLogger()

	if m.Cache != nil {
		cached, hit, err := m.Cache.Get(ctx)
		if err != nil {
			logger.Warn("Thresholds cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	current, err := m.currentFromStore(ctx)
	if err != nil {
		return nil, err
	}
	// built-in defaults (ID 0) stay out of the cache
	if current.ID != 0 {
		m.refreshCache(ctx, current)
	}
	return current, nil
}

func (m *Monitor) refreshCache(ctx context.Context, thresholds *models.AlertThresholds) {
	if m.Cache == nil {
		return
	}
	if err := m.Cache.Set(ctx, thresholds); err != nil {
		thresholdsLogger().Warn("Thresholds cache write failed", zap.Error(err))
	}
}

func (m *Monitor) appendThresholds(ctx context.Context, next models.AlertThresholds) (*models.AlertThresholds, error) {
	logger := thresholdsLogger()

	// a new version, never an update of the row it was copied from
	next.ID = 0
	next.CreatedAt = time.Time{}
	if err := m.Db.Conn.WithContext(ctx).Create(&next).Error; err != nil {
		return nil, &StorageError{Op: "append thresholds", Err: err}
	}

	metrics.ThresholdVersions.Inc()
	logger.Info("Appended thresholds version", zap.Reflect("thresholds", next))

	m.refreshCache(ctx, &next)
	return &next, nil
}

func integral(field string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, &ValidationError{Code: CodeInvalidValue, Field: field, Message: fmt.Sprintf("%v is not a whole number", v)}
	}
	return int(v), nil
}

func (m *Monitor) setPartialThresholds(ctx context.Context, kind models.SignalKind, min, max float64) (*models.AlertThresholds, error) {
	current, err := m.currentFromStore(ctx)
	if err != nil {
		return nil, err
	}
	next := *current

	switch kind {
	case models.SignalTemperature:
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil, &ValidationError{Code: CodeInvalidValue, Field: "temperature", Message: "bounds must be finite numbers"}
		}
		next.TemperatureMin, next.TemperatureMax = min, max
	case models.SignalHeartRate:
		lo, err := integral("heart_rate_min", min)
		if err != nil {
			return nil, err
		}
		hi, err := integral("heart_rate_max", max)
		if err != nil {
			return nil, err
		}
		next.HeartRateMin, next.HeartRateMax = lo, hi
	case models.SignalSaturation:
		lo, err := integral("saturation_min", min)
		if err != nil {
			return nil, err
		}
		next.SaturationMin = lo
	case models.SignalBloodPressure:
		return nil, &ValidationError{
			Code:    CodeUnsupportedSignal,
			Field:   "signal",
			Message: "blood pressure bounds are \"sys/dia\" text, use the pressure range update",
		}
	default:
		return nil, &ValidationError{Code: CodeUnsupportedSignal, Field: "signal", Message: fmt.Sprintf("unknown signal %q", kind)}
	}

	return m.appendThresholds(ctx, next)
}

func (m *Monitor) setPressureRange(ctx context.Context, min, max string) (*models.AlertThresholds, error) {
	if _, err := ParseBloodPressure(min); err != nil {
		return nil, &ValidationError{Code: CodeMalformedFormat, Field: "blood_pressure_min", Message: MessageMalformedBloodPressure}
	}
	if _, err := ParseBloodPressure(max); err != nil {
		return nil, &ValidationError{Code: CodeMalformedFormat, Field: "blood_pressure_max", Message: MessageMalformedBloodPressure}
	}

	current, err := m.currentFromStore(ctx)
	if err != nil {
		return nil, err
	}
	next := *current
	next.BloodPressureMin, next.BloodPressureMax = min, max
	return m.appendThresholds(ctx, next)
}

func (m *Monitor) replaceThresholds(ctx context.Context, input *models.AlertThresholds) (*models.AlertThresholds, error) {
	if input == nil {
		return nil, &ValidationError{Code: CodeInvalidValue, Field: "thresholds", Message: "thresholds are required"}
	}
	if math.IsNaN(input.TemperatureMin) || math.IsNaN(input.TemperatureMax) {
		return nil, &ValidationError{Code: CodeInvalidValue, Field: "temperature", Message: "bounds must be finite numbers"}
	}
	if _, err := ParseBloodPressure(input.BloodPressureMin); err != nil {
		return nil, &ValidationError{Code: CodeMalformedFormat, Field: "blood_pressure_min", Message: MessageMalformedBloodPressure}
	}
	if _, err := ParseBloodPressure(input.BloodPressureMax); err != nil {
		return nil, &ValidationError{Code: CodeMalformedFormat, Field: "blood_pressure_max", Message: MessageMalformedBloodPressure}
	}

	next := models.AlertThresholds{
		TemperatureMin:   input.TemperatureMin,
		TemperatureMax:   input.TemperatureMax,
		HeartRateMin:     input.HeartRateMin,
		HeartRateMax:     input.HeartRateMax,
		SaturationMin:    input.SaturationMin,
		BloodPressureMin: input.BloodPressureMin,
		BloodPressureMax: input.BloodPressureMax,
	}
	return m.appendThresholds(ctx, next)
}

func (m *Monitor) thresholdsHistory(ctx context.Context, limit int) ([]models.AlertThresholds, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var history []models.AlertThresholds
	err := m.Db.Conn.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&history).Error
	if err != nil {
		return nil, &StorageError{Op: "list thresholds", Err: err}
	}
	return history, nil
}

type IThresholdsImpl struct {
	monitor *Monitor
}

func (it *IThresholdsImpl) GetCurrent(ctx context.Context) (*models.AlertThresholds, error) {
	return it.monitor.getCurrentThresholds(ctx)
}

func (it *IThresholdsImpl) SetPartial(ctx context.Context, kind models.SignalKind, min, max float64) (*models.AlertThresholds, error) {
	return it.monitor.setPartialThresholds(ctx, kind, min, max)
}

func (it *IThresholdsImpl) SetPressureRange(ctx context.Context, min, max string) (*models.AlertThresholds, error) {
	return it.monitor.setPressureRange(ctx, min, max)
}

func (it *IThresholdsImpl) Replace(ctx context.Context, input *models.AlertThresholds) (*models.AlertThresholds, error) {
	return it.monitor.replaceThresholds(ctx, input)
}

func (it *IThresholdsImpl) History(ctx context.Context, limit int) ([]models.AlertThresholds, error) {
	return it.monitor.thresholdsHistory(ctx, limit)
}

func (m *Monitor) GetIThresholds() IThresholds {
	return &IThresholdsImpl{monitor: m}
}
