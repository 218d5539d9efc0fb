package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/telemonitoring-service/pkg/models"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type ReadingRequest struct {
	TemperatureC        float64   `json:"temperature_c" zog:"temperature_c"`
	BloodPressure       string    `json:"blood_pressure" zog:"blood_pressure"`
	HeartRateBpm        int       `json:"heart_rate_bpm" zog:"heart_rate_bpm"`
	OxygenSaturationPct int       `json:"oxygen_saturation_pct" zog:"oxygen_saturation_pct"`
	RecordedAt          time.Time `json:"recorded_at" zog:"recorded_at"`
}

var readingRequestSchema = z.Struct(z.Shape{
	"TemperatureC":        z.Float64().Required(),
	"BloodPressure":       z.String().Required(),
	"HeartRateBpm":        z.Int().Required(),
	"OxygenSaturationPct": z.Int().Required(),
	"RecordedAt":          z.Time(),
})

func (rs *RestfulServer) PostReading(c *gin.Context) {
	session, ok := enter(c, ScreenReadings)
	if !ok {
		return
	}
	patientID, ok := uintParam(c, "patient_id")
	if !ok {
		return
	}

	var req ReadingRequest
	if err := readingRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	result, err := rs.Monitor.Reading.RegisterReading(c.Request.Context(), session.UserID, &models.VitalReading{
		PatientID:           patientID,
		TemperatureC:        req.TemperatureC,
		BloodPressure:       req.BloodPressure,
		HeartRateBpm:        req.HeartRateBpm,
		OxygenSaturationPct: req.OxygenSaturationPct,
		RecordedAt:          req.RecordedAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reading":        result.Reading,
		"alerts":         result.Alerts,
		"notification":   result.Outcome,
		"states":         result.States,
		"confirmation":   result.Confirmation,
		"audit_recorded": result.AuditErr == nil,
	})
}

type ReadingsQuery struct {
	Days int `json:"days" zog:"days"`
}

var readingsQuerySchema = z.Struct(z.Shape{
	"Days": z.Int().GTE(0).LTE(3650),
})

func (rs *RestfulServer) GetReadings(c *gin.Context) {
	if _, ok := enter(c, ScreenReadings); !ok {
		return
	}
	patientID, ok := uintParam(c, "patient_id")
	if !ok {
		return
	}

	var q ReadingsQuery
	if err := readingsQuerySchema.Parse(zhttp.Request(c.Request), &q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	var since time.Time
	if q.Days > 0 {
		since = time.Now().AddDate(0, 0, -q.Days)
	}

	readings, err := rs.Monitor.Reading.GetPatientReadings(c.Request.Context(), patientID, since)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, readings)
}

func (rs *RestfulServer) GetReadingToday(c *gin.Context) {
	if _, ok := enter(c, ScreenReadings); !ok {
		return
	}
	patientID, ok := uintParam(c, "patient_id")
	if !ok {
		return
	}

	today := time.Now()
	has, err := rs.Monitor.Reading.HasReadingOn(c.Request.Context(), patientID, today)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": today.Format(time.DateOnly), "has_reading": has})
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	if _, ok := enter(c, ScreenAlerts); !ok {
		return
	}
	patientID, ok := uintParam(c, "patient_id")
	if !ok {
		return
	}

	alerts, err := rs.Monitor.Alert.GetPatientAlerts(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) ResolveAlert(c *gin.Context) {
	session, ok := enter(c, ScreenAlerts)
	if !ok {
		return
	}
	alertID, ok := uintParam(c, "alert_id")
	if !ok {
		return
	}

	alert, err := rs.Monitor.Alert.ResolveAlert(c.Request.Context(), alertID)
	if err != nil {
		respondError(c, err)
		return
	}
	rs.audit(c, session, models.ActionAlertResolved, fmt.Sprintf("alert=%d patient=%d", alert.ID, alert.PatientID))

	c.JSON(http.StatusOK, alert)
}
