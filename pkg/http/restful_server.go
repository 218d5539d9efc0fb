package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/telemonitoring-service/pkg/metrics"
	"liyu1981.xyz/telemonitoring-service/pkg/monitor"
)

type RestfulServer struct {
	Server           *gin.Engine
	Monitor          *monitor.Monitor
	RateLimiterStore *monitor.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(actor string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(actor)
	}
}

func (rs *RestfulServer) CheckActorLimiter(actor string) bool {
	limiter := rs.GetLimiter(actor)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(actor string, actorRate float64, actorBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(actor, rate.Limit(actorRate), actorBurst)
}

// RateLimited applies the per-actor token bucket. It runs after SessionRequired.
func (rs *RestfulServer) RateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session != nil && !rs.CheckActorLimiter(monitor.ActorKey(session.UserID)) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}

func (rs *RestfulServer) Setup() {
	rs.Server.Use(metrics.Instrument())

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := rs.Server.Group("/", SessionRequired(), rs.RateLimited())
	{
		api.POST("/blood-pressure/validate", rs.ValidateBloodPressure)

		patients := api.Group("/patients/:patient_id")
		{
			patients.POST("/readings", rs.PostReading)
			patients.GET("/readings", rs.GetReadings)
			patients.GET("/readings/today", rs.GetReadingToday)
			patients.GET("/alerts", rs.GetAlerts)
		}

		api.POST("/alerts/:alert_id/resolve", rs.ResolveAlert)

		thresholds := api.Group("/thresholds")
		{
			thresholds.GET("", rs.GetThresholds)
			thresholds.GET("/history", rs.GetThresholdsHistory)
			thresholds.PUT("", rs.ReplaceThresholds)
			thresholds.POST("/check", rs.CheckSignal)
			thresholds.POST("/:signal", rs.SetThreshold)
		}

		api.GET("/audit", rs.GetAudit)

		api.POST("/messages", rs.PostMessage)
		api.GET("/users/:user_id/messages", rs.GetInbox)
	}

	// not rate limited, an admin must always be able to lift a limit
	rs.Server.POST("/actors/:user_id/limiter", SessionRequired(), rs.PostLimiter)
}
