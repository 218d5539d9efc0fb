package monitor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

// formatDecimal renders floats the way the staff screens always showed them:
// shortest form, but never without a fractional digit (35 -> "35.0").
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

func temperatureAlert(value float64, t *models.AlertThresholds) *models.AlertDescription {
	if value >= t.TemperatureMin && value <= t.TemperatureMax {
		return nil
	}
	bound := t.TemperatureMax
	if value < t.TemperatureMin {
		bound = t.TemperatureMin
	}
	return &models.AlertDescription{
		Kind:   models.AlertKindTemperatureOutOfRange,
		Signal: models.SignalTemperature,
		Value:  formatDecimal(value),
		Bound:  formatDecimal(bound),
		Text: fmt.Sprintf("Temperatura fora do padrão: %s°C (Limite: %s–%s°C)",
			formatDecimal(value), formatDecimal(t.TemperatureMin), formatDecimal(t.TemperatureMax)),
	}
}

// thresholdPressure parses a configured bound. A broken bound disables only
// its own comparison.
func thresholdPressure(text string, which string) (BloodPressure, bool) {
	bp, err := ParseBloodPressure(text)
	if err != nil {
		common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAlert).Warn(
			"Ignoring malformed blood pressure threshold",
			zap.String("bound", which),
			zap.String("value", text),
		)
		return BloodPressure{}, false
	}
	return bp, true
}

func bloodPressureAlerts(value string, t *models.AlertThresholds) []models.AlertDescription {
	bp, err := ParseBloodPressure(value)
	if err != nil {
		reason := MessageMalformedBloodPressure
		if v, ok := err.(*ValidationError); ok {
			reason = v.Message
		}
		return []models.AlertDescription{{
			Kind:   models.AlertKindPressureInvalidFormat,
			Signal: models.SignalBloodPressure,
			Value:  value,
			Reason: reason,
			Text:   "Pressão arterial: " + reason,
		}}
	}

	var alerts []models.AlertDescription

	if hi, ok := thresholdPressure(t.BloodPressureMax, "max"); ok &&
		(bp.Systolic > hi.Systolic || bp.Diastolic > hi.Diastolic) {
		alerts = append(alerts, models.AlertDescription{
			Kind:   models.AlertKindPressureHigh,
			Signal: models.SignalBloodPressure,
			Value:  value,
			Bound:  t.BloodPressureMax,
			Text:   fmt.Sprintf("Pressão Alta: %s mmHg (Limite: %s mmHg)", value, t.BloodPressureMax),
		})
	}

	// evaluated independently of the high check, inverted bounds may raise both
	if lo, ok := thresholdPressure(t.BloodPressureMin, "min"); ok &&
		(bp.Systolic < lo.Systolic || bp.Diastolic < lo.Diastolic) {
		alerts = append(alerts, models.AlertDescription{
			Kind:   models.AlertKindPressureLow,
			Signal: models.SignalBloodPressure,
			Value:  value,
			Bound:  t.BloodPressureMin,
			Text:   fmt.Sprintf("Pressão Baixa: %s mmHg (Limite: %s mmHg)", value, t.BloodPressureMin),
		})
	}

	return alerts
}

func heartRateAlert(value int, t *models.AlertThresholds) *models.AlertDescription {
	if value >= t.HeartRateMin && value <= t.HeartRateMax {
		return nil
	}
	bound := t.HeartRateMax
	if value < t.HeartRateMin {
		bound = t.HeartRateMin
	}
	return &models.AlertDescription{
		Kind:   models.AlertKindHeartRateOutOfRange,
		Signal: models.SignalHeartRate,
		Value:  strconv.Itoa(value),
		Bound:  strconv.Itoa(bound),
		Text: fmt.Sprintf("Frequência cardíaca fora do padrão: %d bpm (Limite: %d–%d bpm)",
			value, t.HeartRateMin, t.HeartRateMax),
	}
}

func saturationAlert(value int, t *models.AlertThresholds) *models.AlertDescription {
	if value >= t.SaturationMin {
		return nil
	}
	return &models.AlertDescription{
		Kind:   models.AlertKindSaturationLow,
		Signal: models.SignalSaturation,
		Value:  strconv.Itoa(value),
		Bound:  strconv.Itoa(t.SaturationMin),
		Text:   fmt.Sprintf("Saturação baixa: %d%% (Mínimo: %d%%)", value, t.SaturationMin),
	}
}

// Evaluate compares a reading with the thresholds. The order is fixed:
// temperature, blood pressure, heart rate, saturation. An empty result means
// every signal is in range.
func Evaluate(reading *models.VitalReading, thresholds *models.AlertThresholds) []models.AlertDescription {
	alerts := make([]models.AlertDescription, 0, 4)

	if a := temperatureAlert(reading.TemperatureC, thresholds); a != nil {
		alerts = append(alerts, *a)
	}
	alerts = append(alerts, bloodPressureAlerts(reading.BloodPressure, thresholds)...)
	if a := heartRateAlert(reading.HeartRateBpm, thresholds); a != nil {
		alerts = append(alerts, *a)
	}
	if a := saturationAlert(reading.OxygenSaturationPct, thresholds); a != nil {
		alerts = append(alerts, *a)
	}

	return alerts
}

// CheckSignal evaluates a single typed-in value against the thresholds of one signal.
func CheckSignal(kind models.SignalKind, value string, thresholds *models.AlertThresholds) ([]models.AlertDescription, error) {
	value = strings.TrimSpace(value)
	invalid := &ValidationError{Code: CodeInvalidValue, Field: "value", Message: fmt.Sprintf("%q is not a valid %s value", value, kind)}

	switch kind {
	case models.SignalTemperature:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(v) {
			return nil, invalid
		}
		return optional(temperatureAlert(v, thresholds)), nil
	case models.SignalHeartRate:
		v, err := strconv.Atoi(value)
		if err != nil {
			return nil, invalid
		}
		return optional(heartRateAlert(v, thresholds)), nil
	case models.SignalSaturation:
		v, err := strconv.Atoi(value)
		if err != nil {
			return nil, invalid
		}
		return optional(saturationAlert(v, thresholds)), nil
	case models.SignalBloodPressure:
		alerts := bloodPressureAlerts(value, thresholds)
		if alerts == nil {
			alerts = []models.AlertDescription{}
		}
		return alerts, nil
	default:
		return nil, &ValidationError{Code: CodeUnsupportedSignal, Field: "signal", Message: fmt.Sprintf("unknown signal %q", kind)}
	}
}

func optional(a *models.AlertDescription) []models.AlertDescription {
	if a == nil {
		return []models.AlertDescription{}
	}
	return []models.AlertDescription{*a}
}
