package models

import "time"

type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleProfessional UserRole = "professional"
	UserRolePatient      UserRole = "patient"
)

type AlertStatus string

const (
	AlertStatusPending  AlertStatus = "pending"
	AlertStatusResolved AlertStatus = "resolved"
)

type User struct {
	ID    uint     `gorm:"primaryKey"`
	Name  string   `gorm:"not null"`
	Email string   `gorm:"index"`
	Role  UserRole `gorm:"type:varchar(16);check:role IN ('admin','professional','patient')"`
}

type Patient struct {
	ID                        uint `gorm:"primaryKey"`
	UserID                    uint `gorm:"not null"`
	User                      User `gorm:"foreignKey:UserID"`
	ResponsibleProfessionalID *uint
	ResponsibleProfessional   *User `gorm:"foreignKey:ResponsibleProfessionalID"`

	Readings []VitalReading `gorm:"foreignKey:PatientID"`
	Alerts   []Alert        `gorm:"foreignKey:PatientID"`
}

// VitalReading is never updated once stored.
type VitalReading struct {
	ID                  uint   `gorm:"primaryKey"`
	PatientID           uint   `gorm:"index;not null"`
	TemperatureC        float64
	BloodPressure       string `gorm:"type:varchar(10)"`
	HeartRateBpm        int
	OxygenSaturationPct int
	RecordedAt          time.Time `gorm:"index"`
	RecordedBy          uint
}

// AlertThresholds rows are append-only. The newest row is the one in force.
type AlertThresholds struct {
	ID               uint      `gorm:"primaryKey"`
	TemperatureMin   float64   `gorm:"column:temp_min"`
	TemperatureMax   float64   `gorm:"column:temp_max"`
	HeartRateMin     int       `gorm:"column:freq_min"`
	HeartRateMax     int       `gorm:"column:freq_max"`
	SaturationMin    int       `gorm:"column:sat_min"`
	BloodPressureMin string    `gorm:"column:pressao_min;type:varchar(10)"`
	BloodPressureMax string    `gorm:"column:pressao_max;type:varchar(10)"`
	CreatedAt        time.Time `gorm:"index"`
}

func (AlertThresholds) TableName() string {
	return "alert_thresholds"
}

func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		TemperatureMin:   35.0,
		TemperatureMax:   38.0,
		HeartRateMin:     50,
		HeartRateMax:     120,
		SaturationMin:    90,
		BloodPressureMin: "90/60",
		BloodPressureMax: "140/90",
	}
}

type Alert struct {
	ID          uint        `gorm:"primaryKey"`
	PatientID   uint        `gorm:"index;not null"`
	ReadingID   uint        `gorm:"index"`
	Kind        AlertKind   `gorm:"type:varchar(32);check:kind IN ('temperature_out_of_range','pressure_invalid_format','pressure_high','pressure_low','heart_rate_out_of_range','saturation_low')"`
	Description string
	Status      AlertStatus `gorm:"type:varchar(16);default:pending"`
	Timestamp   time.Time   `gorm:"index"`
}

type AuditEntry struct {
	ID          uint   `gorm:"primaryKey"`
	ActorUserID uint   `gorm:"index"`
	Action      string `gorm:"type:varchar(64);index"`
	Detail      string
	RequestID   string    `gorm:"type:varchar(26)"`
	Timestamp   time.Time `gorm:"index"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

type Message struct {
	ID          uint `gorm:"primaryKey"`
	SenderID    uint `gorm:"index"`
	RecipientID uint `gorm:"index"`
	Text        string
	SentAt      time.Time
}
