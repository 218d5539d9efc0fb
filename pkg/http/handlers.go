package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
	"liyu1981.xyz/telemonitoring-service/pkg/monitor"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

func logger(c *gin.Context) *zap.Logger {
	l := common.GetLoggerWith(common.LoggerNameRestfulServer)
	if s := GetSession(c); s != nil {
		l = l.With(zap.String("request_id", s.RequestID), zap.Uint("actor_user_id", s.UserID))
	}
	return l
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return uint(v), true
}

func respondError(c *gin.Context, err error) {
	var verr *monitor.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": verr.Code, "field": verr.Field, "message": verr.Message}})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger(c).Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// audit records an action taken through the API. Failures are logged only.
func (rs *RestfulServer) audit(c *gin.Context, session *Session, action string, detail string) {
	if rs.Monitor.Audit == nil {
		return
	}
	if err := rs.Monitor.Audit.Record(c.Request.Context(), session.UserID, action, detail); err != nil {
		logger(c).Error("Failed to audit action", zap.String("action", action), zap.Error(err))
	}
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type BloodPressureRequest struct {
	BloodPressure string `json:"blood_pressure" zog:"blood_pressure"`
}

var bloodPressureRequestSchema = z.Struct(z.Shape{
	"BloodPressure": z.String().Required(),
})

func (rs *RestfulServer) ValidateBloodPressure(c *gin.Context) {
	if _, ok := enter(c, ScreenReadings); !ok {
		return
	}

	var req BloodPressureRequest
	if err := bloodPressureRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	bp, err := monitor.ValidateBloodPressure(req.BloodPressure)
	var verr *monitor.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusOK, gin.H{"valid": false, "code": verr.Code, "message": verr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "systolic": bp.Systolic, "diastolic": bp.Diastolic})
}

type AuditQuery struct {
	ActorUserID int       `json:"actor_user_id" zog:"actor_user_id"`
	Action      string    `json:"action" zog:"action"`
	From        time.Time `json:"from" zog:"from"`
	To          time.Time `json:"to" zog:"to"`
	Limit       int       `json:"limit" zog:"limit"`
}

var auditQuerySchema = z.Struct(z.Shape{
	"ActorUserID": z.Int().GTE(0),
	"Action":      z.String(),
	"From":        z.Time(),
	"To":          z.Time(),
	"Limit":       z.Int().GTE(0).LTE(1000),
})

func (rs *RestfulServer) GetAudit(c *gin.Context) {
	if _, ok := enter(c, ScreenAudit); !ok {
		return
	}

	var q AuditQuery
	if err := auditQuerySchema.Parse(zhttp.Request(c.Request), &q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	entries, err := rs.Monitor.Audit.ListEntries(c.Request.Context(), models.AuditFilter{
		ActorUserID: uint(q.ActorUserID),
		Action:      q.Action,
		From:        q.From,
		To:          q.To,
		Limit:       q.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

type MessageRequest struct {
	RecipientID int    `json:"recipient_id" zog:"recipient_id"`
	Text        string `json:"text" zog:"text"`
}

var messageRequestSchema = z.Struct(z.Shape{
	"RecipientID": z.Int().Required().GT(0),
	"Text":        z.String().Required(),
})

func (rs *RestfulServer) PostMessage(c *gin.Context) {
	session, ok := enter(c, ScreenMessages)
	if !ok {
		return
	}

	var req MessageRequest
	if err := messageRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	result, err := rs.Monitor.Message.SendMessage(c.Request.Context(), session.UserID, uint(req.RecipientID), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      result.Message,
		"notification": result.Outcome,
		"confirmation": result.Confirmation,
	})
}

func (rs *RestfulServer) GetInbox(c *gin.Context) {
	session, ok := enter(c, ScreenMessages)
	if !ok {
		return
	}
	userID, ok := uintParam(c, "user_id")
	if !ok {
		return
	}
	if userID != session.UserID && !session.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "inbox of another user"})
		return
	}

	messages, err := rs.Monitor.Message.GetInbox(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate" zog:"rate"`
	Burst int     `json:"burst" zog:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().Required(),
	"Burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	session, ok := enter(c, ScreenLimiter)
	if !ok {
		return
	}
	userID, ok := uintParam(c, "user_id")
	if !ok {
		return
	}

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(monitor.ActorKey(userID), req.Rate, req.Burst)
	rs.audit(c, session, models.ActionLimiterUpdated, fmt.Sprintf("user=%d rate=%v burst=%d", userID, req.Rate, req.Burst))

	c.Status(http.StatusOK)
}
