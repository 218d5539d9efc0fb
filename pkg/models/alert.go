package models

type AlertKind string

const (
	AlertKindTemperatureOutOfRange AlertKind = "temperature_out_of_range"
	AlertKindPressureInvalidFormat AlertKind = "pressure_invalid_format"
	AlertKindPressureHigh          AlertKind = "pressure_high"
	AlertKindPressureLow           AlertKind = "pressure_low"
	AlertKindHeartRateOutOfRange   AlertKind = "heart_rate_out_of_range"
	AlertKindSaturationLow         AlertKind = "saturation_low"
)

// AlertDescription is one abnormal finding of an evaluation. It is not stored
// as such; only Text ends up in the alert log.
type AlertDescription struct {
	Kind   AlertKind
	Signal SignalKind
	// Value is the measured value and Bound the violated threshold, both as
	// displayed. Bound is empty for AlertKindPressureInvalidFormat.
	Value  string
	Bound  string
	Reason string
	Text   string
}

func (a AlertDescription) String() string {
	return a.Text
}
