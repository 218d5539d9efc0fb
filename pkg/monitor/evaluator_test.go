package monitor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
	_ "liyu1981.xyz/telemonitoring-service/pkg/testing"
)

func defaults() *models.AlertThresholds {
	d := models.DefaultAlertThresholds()
	return &d
}

func kinds(alerts []models.AlertDescription) []models.AlertKind {
	return common.Mapper(alerts, func(a models.AlertDescription) models.AlertKind { return a.Kind })
}

func TestEvaluate_AllInRange(t *testing.T) {
	alerts := Evaluate(normalReading(1), defaults())
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestEvaluate_BoundsAreInclusive(t *testing.T) {
	r := &models.VitalReading{TemperatureC: 38.0, BloodPressure: "140/90", HeartRateBpm: 50, OxygenSaturationPct: 90}
	assert.Empty(t, Evaluate(r, defaults()))

	r = &models.VitalReading{TemperatureC: 35.0, BloodPressure: "90/60", HeartRateBpm: 120, OxygenSaturationPct: 100}
	assert.Empty(t, Evaluate(r, defaults()))
}

func TestEvaluate_Fever(t *testing.T) {
	r := normalReading(1)
	r.TemperatureC = 39.2

	alerts := Evaluate(r, defaults())
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertKindTemperatureOutOfRange, alerts[0].Kind)
	assert.Equal(t, "39.2", alerts[0].Value)
	assert.Equal(t, "38.0", alerts[0].Bound)
	assert.Equal(t, "Temperatura fora do padrão: 39.2°C (Limite: 35.0–38.0°C)", alerts[0].Text)
}

func TestEvaluate_MalformedPressure(t *testing.T) {
	r := normalReading(1)
	r.BloodPressure = "abc"

	alerts := Evaluate(r, defaults())
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertKindPressureInvalidFormat, alerts[0].Kind)
	assert.Equal(t, MessageMalformedBloodPressure, alerts[0].Reason)
	assert.Equal(t, "Pressão arterial: Formato inválido. Use: 120/80", alerts[0].Text)
	assert.Empty(t, alerts[0].Bound)
}

func TestEvaluate_HighPressure(t *testing.T) {
	r := normalReading(1)
	r.BloodPressure = "200/130"

	alerts := Evaluate(r, defaults())
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertKindPressureHigh, alerts[0].Kind)
	assert.Equal(t, "Pressão Alta: 200/130 mmHg (Limite: 140/90 mmHg)", alerts[0].Text)
}

func TestEvaluate_LowPressure(t *testing.T) {
	r := normalReading(1)
	r.BloodPressure = "80/50"

	alerts := Evaluate(r, defaults())
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertKindPressureLow, alerts[0].Kind)
	assert.Equal(t, "Pressão Baixa: 80/50 mmHg (Limite: 90/60 mmHg)", alerts[0].Text)
}

func TestEvaluate_PressureComponentsAreIndependent(t *testing.T) {
	r := normalReading(1)
	// diastolic alone above the maximum
	r.BloodPressure = "120/95"
	assert.Equal(t, []models.AlertKind{models.AlertKindPressureHigh}, kinds(Evaluate(r, defaults())))

	// systolic high and diastolic low in the same reading
	r.BloodPressure = "150/55"
	assert.Equal(t, []models.AlertKind{models.AlertKindPressureHigh, models.AlertKindPressureLow}, kinds(Evaluate(r, defaults())))
}

func TestEvaluate_HeartRateAndSaturation(t *testing.T) {
	r := normalReading(1)
	r.HeartRateBpm = 130
	r.OxygenSaturationPct = 85

	alerts := Evaluate(r, defaults())
	require.Len(t, alerts, 2)
	assert.Equal(t, "Frequência cardíaca fora do padrão: 130 bpm (Limite: 50–120 bpm)", alerts[0].Text)
	assert.Equal(t, "Saturação baixa: 85% (Mínimo: 90%)", alerts[1].Text)
}

func TestEvaluate_Order(t *testing.T) {
	r := &models.VitalReading{TemperatureC: 34.0, BloodPressure: "abc", HeartRateBpm: 40, OxygenSaturationPct: 80}

	assert.Equal(t, []models.AlertKind{
		models.AlertKindTemperatureOutOfRange,
		models.AlertKindPressureInvalidFormat,
		models.AlertKindHeartRateOutOfRange,
		models.AlertKindSaturationLow,
	}, kinds(Evaluate(r, defaults())))
}

func TestEvaluate_InvertedBounds(t *testing.T) {
	th := defaults()
	th.TemperatureMin, th.TemperatureMax = 38.0, 35.0
	th.BloodPressureMin, th.BloodPressureMax = "140/90", "90/60"

	r := normalReading(1)
	alerts := Evaluate(r, th)

	assert.Equal(t, []models.AlertKind{
		models.AlertKindTemperatureOutOfRange,
		models.AlertKindPressureHigh,
		models.AlertKindPressureLow,
	}, kinds(alerts))
}

func TestEvaluate_MalformedThresholdBoundIsSkipped(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	th := defaults()
	th.BloodPressureMax = "high"

	r := normalReading(1)
	r.BloodPressure = "200/130"
	assert.Empty(t, Evaluate(r, th))

	r.BloodPressure = "80/50"
	assert.Equal(t, []models.AlertKind{models.AlertKindPressureLow}, kinds(Evaluate(r, th)))

	logs := ParseLogs(buf)
	assert.True(t, findLog(logs, func(l map[string]any) bool {
		return l["logger"] == "monitor_core" &&
			l["category"] == "alert" &&
			l["level"] == "warn" &&
			l["msg"] == "Ignoring malformed blood pressure threshold" &&
			l["bound"] == "max" &&
			l["value"] == "high"
	}))
}

func TestEvaluate_Deterministic(t *testing.T) {
	r := &models.VitalReading{TemperatureC: 39.2, BloodPressure: "200/130", HeartRateBpm: 130, OxygenSaturationPct: 85}
	assert.Equal(t, Evaluate(r, defaults()), Evaluate(r, defaults()))
}

func TestCheckSignal(t *testing.T) {
	th := defaults()

	alerts, err := CheckSignal(models.SignalTemperature, "39.2", th)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertKindTemperatureOutOfRange, alerts[0].Kind)

	alerts, err = CheckSignal(models.SignalHeartRate, " 80 ", th)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	alerts, err = CheckSignal(models.SignalSaturation, "85", th)
	require.NoError(t, err)
	assert.Equal(t, []models.AlertKind{models.AlertKindSaturationLow}, kinds(alerts))

	alerts, err = CheckSignal(models.SignalBloodPressure, "120/80", th)
	require.NoError(t, err)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)

	alerts, err = CheckSignal(models.SignalBloodPressure, "abc", th)
	require.NoError(t, err)
	assert.Equal(t, []models.AlertKind{models.AlertKindPressureInvalidFormat}, kinds(alerts))

	_, err = CheckSignal(models.SignalHeartRate, "fast", th)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeInvalidValue, verr.Code)

	_, err = CheckSignal(models.SignalKind("weight"), "80", th)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeUnsupportedSignal, verr.Code)
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "35.0", formatDecimal(35))
	assert.Equal(t, "39.2", formatDecimal(39.2))
	assert.Equal(t, "37.25", formatDecimal(37.25))
}

func TestEvaluate_MalformedPressureVariants(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"systolic too short", "1/80"},
		{"systolic too long", "1200/80"},
		{"wrong separator", "120-80"},
		{"trailing space", "120/80 "},
		{"empty", ""},
		{"letter in systolic", "12a/80"},
		{"full width digits", "１２０/80"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateBloodPressure(tc.value)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, CodeMalformedFormat, verr.Code)

			r := normalReading(1)
			r.BloodPressure = tc.value

			alerts := Evaluate(r, defaults())
			require.Len(t, alerts, 1)
			assert.Equal(t, models.AlertKindPressureInvalidFormat, alerts[0].Kind)
			assert.Equal(t, tc.value, alerts[0].Value)
		})
	}
}
