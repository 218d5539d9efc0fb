package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
	"liyu1981.xyz/telemonitoring-service/pkg/monitor"
)

func validationFailure(err any) (*structpb.Struct, error) {
	return failure(fmt.Sprintf("validation error: %v", err))
}

// errorReply turns a monitor error into a failed status; input problems keep the validation prefix.
func errorReply(err error) (*structpb.Struct, error) {
	var verr *monitor.ValidationError
	if errors.As(err, &verr) {
		return validationFailure(verr)
	}
	return failure(err.Error())
}

// authorize applies the same screen access rules as the REST session.
func authorize(ctx context.Context, screen models.Screen) (Actor, error) {
	actor, err := ActorFromContext(ctx)
	if err != nil {
		return Actor{}, status.Error(codes.Unauthenticated, err.Error())
	}
	if !models.CanEnter(actor.Role, screen) {
		return Actor{}, status.Errorf(codes.PermissionDenied, "screen %s not allowed for role %s", screen, actor.Role)
	}
	return actor, nil
}

func (s *MonitoringServer) audit(ctx context.Context, actor Actor, action string, detail string) {
	if s.Monitor.Audit == nil {
		return
	}
	if err := s.Monitor.Audit.Record(ctx, actor.UserID, action, detail); err != nil {
		common.GetLoggerWith(common.LoggerNameGrpcServer, zap.String("request_id", monitor.RequestIDFromContext(ctx))).
			Warn("Audit failed", zap.String("action", action), zap.Error(err))
	}
}

type readingPayload struct {
	PatientID           int       `json:"patient_id"`
	TemperatureC        float64   `json:"temperature_c"`
	BloodPressure       string    `json:"blood_pressure"`
	HeartRateBpm        int       `json:"heart_rate_bpm"`
	OxygenSaturationPct int       `json:"oxygen_saturation_pct"`
	RecordedAt          time.Time `json:"recorded_at"`
}

var readingPayloadValidator = z.Struct(z.Shape{
	"PatientID":           z.Int().Required().GT(0),
	"TemperatureC":        z.Float64().Required(),
	"BloodPressure":       z.String().Required(),
	"HeartRateBpm":        z.Int().Required(),
	"OxygenSaturationPct": z.Int().Required(),
})

func (s *MonitoringServer) RegisterReading(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := authorize(ctx, models.ScreenReadings)
	if err != nil {
		return nil, err
	}

	var p readingPayload
	if err := decodePayload(req, &p); err != nil {
		return validationFailure(err)
	}
	if err := readingPayloadValidator.Validate(&p); err != nil {
		return validationFailure(err)
	}

	result, err := s.Monitor.Reading.RegisterReading(ctx, actor.UserID, &models.VitalReading{
		PatientID:           uint(p.PatientID),
		TemperatureC:        p.TemperatureC,
		BloodPressure:       p.BloodPressure,
		HeartRateBpm:        p.HeartRateBpm,
		OxygenSaturationPct: p.OxygenSaturationPct,
		RecordedAt:          p.RecordedAt,
	})
	if err != nil {
		return errorReply(err)
	}

	return reply(true, "OK", map[string]any{
		"reading":        result.Reading,
		"alerts":         result.Alerts,
		"notification":   result.Outcome,
		"states":         result.States,
		"confirmation":   result.Confirmation,
		"audit_recorded": result.AuditErr == nil,
	})
}

func (s *MonitoringServer) GetThresholds(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if _, err := authorize(ctx, models.ScreenThresholds); err != nil {
		return nil, err
	}

	current, err := s.Monitor.Thresholds.GetCurrent(ctx)
	if err != nil {
		return errorReply(err)
	}

	return reply(true, "OK", map[string]any{"thresholds": current})
}

type thresholdPayload struct {
	Signal string `json:"signal"`
	// numbers for temperature, heart_rate and saturation; "sys/dia" strings for blood_pressure
	Min any `json:"min"`
	Max any `json:"max"`
}

var thresholdPayloadValidator = z.Struct(z.Shape{
	"Signal": z.String().Required(),
})

func (s *MonitoringServer) SetThreshold(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := authorize(ctx, models.ScreenThresholds)
	if err != nil {
		return nil, err
	}

	var p thresholdPayload
	if err := decodePayload(req, &p); err != nil {
		return validationFailure(err)
	}
	if err := thresholdPayloadValidator.Validate(&p); err != nil {
		return validationFailure(err)
	}

	kind, err := models.ParseSignalKind(p.Signal)
	if err != nil {
		return validationFailure(err)
	}

	var saved *models.AlertThresholds
	if kind == models.SignalBloodPressure {
		lo, okMin := p.Min.(string)
		hi, okMax := p.Max.(string)
		if !okMin || !okMax {
			return validationFailure(`blood_pressure bounds must be "sys/dia" strings`)
		}
		saved, err = s.Monitor.Thresholds.SetPressureRange(ctx, lo, hi)
	} else {
		lo, ok := p.Min.(float64)
		if !ok {
			return validationFailure("min must be a number")
		}
		// saturation has no ceiling, so max may be absent there only
		hi, ok := p.Max.(float64)
		if !ok && kind != models.SignalSaturation {
			return validationFailure("max must be a number")
		}
		saved, err = s.Monitor.Thresholds.SetPartial(ctx, kind, lo, hi)
	}
	if err != nil {
		return errorReply(err)
	}
	s.audit(ctx, actor, models.ActionThresholdsUpdated, fmt.Sprintf("%s min=%v max=%v", kind, p.Min, p.Max))

	return reply(true, "OK", map[string]any{"thresholds": saved})
}

type patientPayload struct {
	PatientID int `json:"patient_id"`
}

var patientPayloadValidator = z.Struct(z.Shape{
	"PatientID": z.Int().Required().GT(0),
})

func (s *MonitoringServer) GetAlerts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if _, err := authorize(ctx, models.ScreenAlerts); err != nil {
		return nil, err
	}

	var p patientPayload
	if err := decodePayload(req, &p); err != nil {
		return validationFailure(err)
	}
	if err := patientPayloadValidator.Validate(&p); err != nil {
		return validationFailure(err)
	}

	alerts, err := s.Monitor.Alert.GetPatientAlerts(ctx, uint(p.PatientID))
	if err != nil {
		return errorReply(err)
	}

	return reply(true, "OK", map[string]any{"alerts": alerts})
}

type limiterPayload struct {
	UserID int     `json:"user_id"`
	Rate   float64 `json:"rate"`
	Burst  int     `json:"burst"`
}

var limiterPayloadValidator = z.Struct(z.Shape{
	"UserID": z.Int().Required().GT(0),
	"Rate":   z.Float64().Required(),
	"Burst":  z.Int().Required(),
})

func (s *MonitoringServer) PostLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	actor, err := authorize(ctx, models.ScreenLimiter)
	if err != nil {
		return nil, err
	}

	var p limiterPayload
	if err := decodePayload(req, &p); err != nil {
		return validationFailure(err)
	}
	if err := limiterPayloadValidator.Validate(&p); err != nil {
		return validationFailure(err)
	}

	if s.RateLimiterStore == nil {
		return failure("RateLimiterStore is not used. No effect.")
	}

	s.RateLimiterStore.SetLimiter(monitor.ActorKey(uint(p.UserID)), rate.Limit(p.Rate), p.Burst)
	s.audit(ctx, actor, models.ActionLimiterUpdated, fmt.Sprintf("user=%d rate=%v burst=%d", p.UserID, p.Rate, p.Burst))

	return reply(true, "OK", nil)
}
