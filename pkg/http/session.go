package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
	"liyu1981.xyz/telemonitoring-service/pkg/monitor"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserRole  = "X-User-Role"
	HeaderRequestID = "X-Request-ID"

	sessionKey = "session"
)

type Screen = models.Screen

const (
	ScreenHome       = models.ScreenHome
	ScreenReadings   = models.ScreenReadings
	ScreenAlerts     = models.ScreenAlerts
	ScreenThresholds = models.ScreenThresholds
	ScreenAudit      = models.ScreenAudit
	ScreenMessages   = models.ScreenMessages
	ScreenLimiter    = models.ScreenLimiter
)

var (
	ErrNoSession       = errors.New("missing or invalid session")
	ErrForbiddenScreen = errors.New("screen not allowed for role")
)

// Session is the per-request navigation state of one authenticated user.
type Session struct {
	UserID    uint
	Role      models.UserRole
	RequestID string
	Screen    Screen
}

// Enter moves the session to screen when the role may see it.
func (s *Session) Enter(screen Screen) error {
	if !models.CanEnter(s.Role, screen) {
		return ErrForbiddenScreen
	}
	s.Screen = screen
	return nil
}

func (s *Session) IsAdmin() bool {
	return s.Role == models.UserRoleAdmin
}

func sessionFromHeaders(h http.Header) (*Session, error) {
	userID, err := strconv.ParseUint(strings.TrimSpace(h.Get(HeaderUserID)), 10, 0)
	if err != nil || userID == 0 {
		return nil, ErrNoSession
	}

	role := models.UserRole(strings.ToLower(strings.TrimSpace(h.Get(HeaderUserRole))))
	if !models.ValidRole(role) {
		return nil, ErrNoSession
	}

	requestID := strings.TrimSpace(h.Get(HeaderRequestID))
	if requestID == "" {
		requestID = monitor.NewID()
	}

	return &Session{UserID: uint(userID), Role: role, RequestID: requestID, Screen: ScreenHome}, nil
}

// SessionRequired rejects requests without gateway identity headers.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessionFromHeaders(c.Request.Header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Header(HeaderRequestID, session.RequestID)
		c.Request = c.Request.WithContext(monitor.WithRequestID(c.Request.Context(), session.RequestID))
		c.Set(sessionKey, session)
		c.Next()
	}
}

func GetSession(c *gin.Context) *Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// enter performs the screen transition for the current request, answering 403 when refused.
func enter(c *gin.Context, screen Screen) (*Session, bool) {
	session := GetSession(c)
	if session == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoSession.Error()})
		return nil, false
	}
	if err := session.Enter(screen); err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error(), "screen": screen})
		return nil, false
	}
	return session, true
}
