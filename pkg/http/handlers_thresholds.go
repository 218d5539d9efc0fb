package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
	"liyu1981.xyz/telemonitoring-service/pkg/monitor"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func (rs *RestfulServer) GetThresholds(c *gin.Context) {
	if _, ok := enter(c, ScreenThresholds); !ok {
		return
	}

	current, err := rs.Monitor.Thresholds.GetCurrent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, current)
}

type HistoryQuery struct {
	Limit int `json:"limit" zog:"limit"`
}

var historyQuerySchema = z.Struct(z.Shape{
	"Limit": z.Int().GTE(0).LTE(1000),
})

func (rs *RestfulServer) GetThresholdsHistory(c *gin.Context) {
	if _, ok := enter(c, ScreenThresholds); !ok {
		return
	}

	var q HistoryQuery
	if err := historyQuerySchema.Parse(zhttp.Request(c.Request), &q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	history, err := rs.Monitor.Thresholds.History(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

type ThresholdsRequest struct {
	TemperatureMin   float64 `json:"temperature_min" zog:"temperature_min"`
	TemperatureMax   float64 `json:"temperature_max" zog:"temperature_max"`
	HeartRateMin     int     `json:"heart_rate_min" zog:"heart_rate_min"`
	HeartRateMax     int     `json:"heart_rate_max" zog:"heart_rate_max"`
	SaturationMin    int     `json:"saturation_min" zog:"saturation_min"`
	BloodPressureMin string  `json:"blood_pressure_min" zog:"blood_pressure_min"`
	BloodPressureMax string  `json:"blood_pressure_max" zog:"blood_pressure_max"`
}

var thresholdsRequestSchema = z.Struct(z.Shape{
	"TemperatureMin":   z.Float64().Required(),
	"TemperatureMax":   z.Float64().Required(),
	"HeartRateMin":     z.Int().Required(),
	"HeartRateMax":     z.Int().Required(),
	"SaturationMin":    z.Int().Required(),
	"BloodPressureMin": z.String().Required(),
	"BloodPressureMax": z.String().Required(),
})

func (rs *RestfulServer) ReplaceThresholds(c *gin.Context) {
	session, ok := enter(c, ScreenThresholds)
	if !ok {
		return
	}

	var req ThresholdsRequest
	if err := thresholdsRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	saved, err := rs.Monitor.Thresholds.Replace(c.Request.Context(), &models.AlertThresholds{
		TemperatureMin:   req.TemperatureMin,
		TemperatureMax:   req.TemperatureMax,
		HeartRateMin:     req.HeartRateMin,
		HeartRateMax:     req.HeartRateMax,
		SaturationMin:    req.SaturationMin,
		BloodPressureMin: req.BloodPressureMin,
		BloodPressureMax: req.BloodPressureMax,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	rs.audit(c, session, models.ActionThresholdsUpdated, fmt.Sprintf("version=%d all fields", saved.ID))

	c.JSON(http.StatusOK, saved)
}

type RangeRequest struct {
	Min float64 `json:"min" zog:"min"`
	Max float64 `json:"max" zog:"max"`
}

var rangeRequestSchema = z.Struct(z.Shape{
	"Min": z.Float64().Required(),
	"Max": z.Float64().Required(),
})

// saturation has no ceiling
var minRequestSchema = z.Struct(z.Shape{
	"Min": z.Float64().Required(),
	"Max": z.Float64(),
})

type PressureRangeRequest struct {
	Min string `json:"min" zog:"min"`
	Max string `json:"max" zog:"max"`
}

var pressureRangeRequestSchema = z.Struct(z.Shape{
	"Min": z.String().Required(),
	"Max": z.String().Required(),
})

func (rs *RestfulServer) SetThreshold(c *gin.Context) {
	session, ok := enter(c, ScreenThresholds)
	if !ok {
		return
	}

	kind, err := models.ParseSignalKind(c.Param("signal"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		saved  *models.AlertThresholds
		detail string
	)
	if kind == models.SignalBloodPressure {
		var req PressureRangeRequest
		if err := pressureRangeRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err})
			return
		}
		saved, err = rs.Monitor.Thresholds.SetPressureRange(c.Request.Context(), req.Min, req.Max)
		detail = fmt.Sprintf("%s min=%s max=%s", kind, req.Min, req.Max)
	} else {
		schema := rangeRequestSchema
		if kind == models.SignalSaturation {
			schema = minRequestSchema
		}
		var req RangeRequest
		if err := schema.Parse(zhttp.Request(c.Request), &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err})
			return
		}
		saved, err = rs.Monitor.Thresholds.SetPartial(c.Request.Context(), kind, req.Min, req.Max)
		detail = fmt.Sprintf("%s min=%v max=%v", kind, req.Min, req.Max)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	rs.audit(c, session, models.ActionThresholdsUpdated, detail)

	c.JSON(http.StatusOK, saved)
}

type CheckRequest struct {
	Signal string `json:"signal" zog:"signal"`
	Value  string `json:"value" zog:"value"`
}

var checkRequestSchema = z.Struct(z.Shape{
	"Signal": z.String().Required(),
	"Value":  z.String().Required(),
})

func (rs *RestfulServer) CheckSignal(c *gin.Context) {
	if _, ok := enter(c, ScreenThresholds); !ok {
		return
	}

	var req CheckRequest
	if err := checkRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	current, err := rs.Monitor.Thresholds.GetCurrent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	alerts, err := monitor.CheckSignal(models.SignalKind(req.Signal), req.Value, current)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "in_range": len(alerts) == 0})
}
