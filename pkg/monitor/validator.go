package monitor

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

const (
	MessageMalformedBloodPressure   = "Formato inválido. Use: 120/80"
	MessageImplausibleBloodPressure = "Valores fora do intervalo normal"
)

var bloodPressurePattern = regexp.MustCompile(`^[0-9]{2,3}/[0-9]{2,3}$`)

// Bounds a reading can ever plausibly have, independent of alert thresholds.
const (
	PlausibleSystolicMin  = 90
	PlausibleSystolicMax  = 180
	PlausibleDiastolicMin = 60
	PlausibleDiastolicMax = 110
)

// Hard limits of the reading entry form.
const (
	InputTemperatureMin      = 25.0
	InputTemperatureMax      = 45.0
	InputHeartRateMin        = 20
	InputHeartRateMax        = 220
	InputSaturationMin       = 50
	InputSaturationMax       = 100
	InputBloodPressureMaxLen = 10
)

type BloodPressure struct {
	Systolic  int
	Diastolic int
}

func (bp BloodPressure) String() string {
	return fmt.Sprintf("%d/%d", bp.Systolic, bp.Diastolic)
}

func malformedBloodPressure() *ValidationError {
	return &ValidationError{Code: CodeMalformedFormat, Field: "blood_pressure", Message: MessageMalformedBloodPressure}
}

// ParseBloodPressure only checks the "sys/dia" shape.
func ParseBloodPressure(text string) (BloodPressure, error) {
	if !bloodPressurePattern.MatchString(text) {
		return BloodPressure{}, malformedBloodPressure()
	}

	sys, dia, _ := strings.Cut(text, "/")
	systolic, err := strconv.Atoi(sys)
	if err != nil {
		return BloodPressure{}, malformedBloodPressure()
	}
	diastolic, err := strconv.Atoi(dia)
	if err != nil {
		return BloodPressure{}, malformedBloodPressure()
	}
	return BloodPressure{Systolic: systolic, Diastolic: diastolic}, nil
}

// ValidateBloodPressure checks the shape and then the plausibility range.
func ValidateBloodPressure(text string) (BloodPressure, error) {
	bp, err := ParseBloodPressure(text)
	if err != nil {
		return BloodPressure{}, err
	}

	if bp.Systolic < PlausibleSystolicMin || bp.Systolic > PlausibleSystolicMax ||
		bp.Diastolic < PlausibleDiastolicMin || bp.Diastolic > PlausibleDiastolicMax {
		return BloodPressure{}, &ValidationError{
			Code:    CodeOutOfPlausibleRange,
			Field:   "blood_pressure",
			Message: MessageImplausibleBloodPressure,
		}
	}
	return bp, nil
}

func outOfInput(field string, format string, args ...any) *ValidationError {
	return &ValidationError{Code: CodeOutOfInputRange, Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateReading applies the entry form limits. The blood pressure value is
// only required to be present here; its format is judged by the evaluator.
func ValidateReading(reading *models.VitalReading) error {
	if reading == nil {
		return &ValidationError{Code: CodeInvalidValue, Field: "reading", Message: "reading is required"}
	}
	if reading.PatientID == 0 {
		return &ValidationError{Code: CodeInvalidValue, Field: "patient_id", Message: "patient is required"}
	}

	t := reading.TemperatureC
	if math.IsNaN(t) || t < InputTemperatureMin || t > InputTemperatureMax {
		return outOfInput("temperature_c", "must be between %.1f and %.1f", InputTemperatureMin, InputTemperatureMax)
	}
	if reading.HeartRateBpm < InputHeartRateMin || reading.HeartRateBpm > InputHeartRateMax {
		return outOfInput("heart_rate_bpm", "must be between %d and %d", InputHeartRateMin, InputHeartRateMax)
	}
	if reading.OxygenSaturationPct < InputSaturationMin || reading.OxygenSaturationPct > InputSaturationMax {
		return outOfInput("oxygen_saturation_pct", "must be between %d and %d", InputSaturationMin, InputSaturationMax)
	}

	bp := strings.TrimSpace(reading.BloodPressure)
	if bp == "" {
		return outOfInput("blood_pressure", "is required")
	}
	if len(reading.BloodPressure) > InputBloodPressureMaxLen {
		return outOfInput("blood_pressure", "must be at most %d characters", InputBloodPressureMaxLen)
	}
	return nil
}
