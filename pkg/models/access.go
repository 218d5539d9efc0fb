package models

// Screen is an area of the application a role may or may not enter.
type Screen string

const (
	ScreenHome       Screen = "home"
	ScreenReadings   Screen = "readings"
	ScreenAlerts     Screen = "alerts"
	ScreenThresholds Screen = "thresholds"
	ScreenAudit      Screen = "audit"
	ScreenMessages   Screen = "messages"
	ScreenLimiter    Screen = "limiter"
)

var screenRoles = map[Screen][]UserRole{
	ScreenReadings:   {UserRoleAdmin, UserRoleProfessional, UserRolePatient},
	ScreenAlerts:     {UserRoleAdmin, UserRoleProfessional},
	ScreenThresholds: {UserRoleAdmin},
	ScreenAudit:      {UserRoleAdmin},
	ScreenMessages:   {UserRoleAdmin, UserRoleProfessional, UserRolePatient},
	ScreenLimiter:    {UserRoleAdmin},
}

func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleAdmin, UserRoleProfessional, UserRolePatient:
		return true
	}
	return false
}

// CanEnter reports whether role may use screen. Unknown screens are closed to everyone.
func CanEnter(role UserRole, screen Screen) bool {
	for _, allowed := range screenRoles[screen] {
		if allowed == role {
			return true
		}
	}
	return false
}
