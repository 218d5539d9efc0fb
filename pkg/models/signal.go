package models

import "fmt"

// SignalKind is the closed set of vital signs a threshold can be configured for.
type SignalKind string

const (
	SignalTemperature   SignalKind = "temperature"
	SignalHeartRate     SignalKind = "heart_rate"
	SignalSaturation    SignalKind = "saturation"
	SignalBloodPressure SignalKind = "blood_pressure"
)

var signalKinds = []SignalKind{SignalTemperature, SignalHeartRate, SignalSaturation, SignalBloodPressure}

func SignalKinds() []SignalKind {
	return append([]SignalKind(nil), signalKinds...)
}

func ParseSignalKind(s string) (SignalKind, error) {
	for _, k := range signalKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown signal kind %q", s)
}
