package monitor

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/telemonitoring-service/pkg/db"
	mailermocks "liyu1981.xyz/telemonitoring-service/pkg/mailer/mocks"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
	"liyu1981.xyz/telemonitoring-service/pkg/monitor/mocks"
)

type useMocks struct {
	Thresholds bool
	Alert      bool
	Notifier   bool
	Audit      bool
}

type monitorMocks struct {
	Thresholds *mocks.MockIThresholds
	Alert      *mocks.MockIAlert
	Notifier   *mocks.MockINotifier
	Audit      *mocks.MockIAudit
	Mailer     *mailermocks.MockMailer
}

// GetMockMonitorWithMemorySqliteDialector builds a monitor on its own in-memory
// database. The mailer is always a mock.
func GetMockMonitorWithMemorySqliteDialector(t *testing.T, use useMocks) (*gomock.Controller, *Monitor, monitorMocks) {
	ctrl := gomock.NewController(t)

	mm := monitorMocks{
		Thresholds: mocks.NewMockIThresholds(ctrl),
		Alert:      mocks.NewMockIAlert(ctrl),
		Notifier:   mocks.NewMockINotifier(ctrl),
		Audit:      mocks.NewMockIAudit(ctrl),
		Mailer:     mailermocks.NewMockMailer(ctrl),
	}

	dbInstance, err := db.Open(db.UseIsolatedMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := dbInstance.Conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	m := &Monitor{
		Db:     *dbInstance,
		Mailer: mm.Mailer,
		Notify: NotifyOptions{Sender: "alerts@telemonitoring.test"},
	}
	m.WithDefaultServices()

	opts := ServiceOpts{}
	if use.Thresholds {
		opts.Thresholds = mm.Thresholds
	}
	if use.Alert {
		opts.Alert = mm.Alert
	}
	if use.Notifier {
		opts.Notifier = mm.Notifier
	}
	if use.Audit {
		opts.Audit = mm.Audit
	}
	m.WithServices(opts)

	return ctrl, m, mm
}

type seededPatient struct {
	Patient      models.Patient
	User         models.User
	Professional models.User
}

func seedPatient(t *testing.T, m *Monitor, profEmail string) seededPatient {
	t.Helper()

	prof := models.User{Name: "Dra. Ana", Email: profEmail, Role: models.UserRoleProfessional}
	require.NoError(t, m.Db.Conn.Create(&prof).Error)

	user := models.User{Name: "João Silva", Email: "joao@example.com", Role: models.UserRolePatient}
	require.NoError(t, m.Db.Conn.Create(&user).Error)

	patient := models.Patient{UserID: user.ID, ResponsibleProfessionalID: &prof.ID}
	require.NoError(t, m.Db.Conn.Create(&patient).Error)

	return seededPatient{Patient: patient, User: user, Professional: prof}
}

func seedUnassignedPatient(t *testing.T, m *Monitor) models.Patient {
	t.Helper()

	user := models.User{Name: "Maria", Email: "maria@example.com", Role: models.UserRolePatient}
	require.NoError(t, m.Db.Conn.Create(&user).Error)

	patient := models.Patient{UserID: user.ID}
	require.NoError(t, m.Db.Conn.Create(&patient).Error)
	return patient
}

func normalReading(patientID uint) *models.VitalReading {
	return &models.VitalReading{
		PatientID:           patientID,
		TemperatureC:        36.5,
		BloodPressure:       "120/80",
		HeartRateBpm:        72,
		OxygenSaturationPct: 97,
	}
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func findLog(logs []any, match func(map[string]any) bool) bool {
	for _, log := range logs {
		if lobj, ok := log.(map[string]any); ok && match(lobj) {
			return true
		}
	}
	return false
}
