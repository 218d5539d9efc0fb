package monitor

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"liyu1981.xyz/telemonitoring-service/pkg/cache"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/db"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
	_ "liyu1981.xyz/telemonitoring-service/pkg/testing"
)

// newSqlmockMonitor runs the monitor on the postgres dialector over sqlmock,
// so storage failures can be injected.
func newSqlmockMonitor(t *testing.T) (*Monitor, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	m := &Monitor{Db: db.DB{Conn: conn}}
	m.WithDefaultServices()
	return m, mock
}

func TestGetCurrent_DefaultsWhenEmpty(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	ctx := context.Background()
	first, err := m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAlertThresholds(), *first)

	second, err := m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, m.Db.Conn.Model(&models.AlertThresholds{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetCurrent_StorageFailure(t *testing.T) {
	common.SetTestLoggerNop()

	m, mock := newSqlmockMonitor(t)
	mock.ExpectQuery(`SELECT \* FROM "alert_thresholds"`).WillReturnError(errors.New("connection reset"))

	got, err := m.Thresholds.GetCurrent(context.Background())
	assert.Nil(t, got)
	require.True(t, IsStorageError(err))
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPartial_SaturationOnlyTouchesMinimum(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	ctx := context.Background()
	before, err := m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)

	saved, err := m.Thresholds.SetPartial(ctx, models.SignalSaturation, 92, 100)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	after, err := m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, after.ID)
	assert.Equal(t, 92, after.SaturationMin)

	expected := *before
	expected.SaturationMin = 92
	expected.ID, expected.CreatedAt = after.ID, after.CreatedAt
	assert.Equal(t, expected, *after)
}

func TestSetPartial_TemperatureAndHeartRate(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	ctx := context.Background()
	_, err := m.Thresholds.SetPartial(ctx, models.SignalTemperature, 35.5, 37.8)
	require.NoError(t, err)
	_, err = m.Thresholds.SetPartial(ctx, models.SignalHeartRate, 55, 110)
	require.NoError(t, err)

	current, err := m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 35.5, current.TemperatureMin)
	assert.Equal(t, 37.8, current.TemperatureMax)
	assert.Equal(t, 55, current.HeartRateMin)
	assert.Equal(t, 110, current.HeartRateMax)
	assert.Equal(t, 90, current.SaturationMin)

	history, err := m.Thresholds.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, current.ID, history[0].ID)
	// the first version is untouched by the second update
	assert.Equal(t, 50, history[1].HeartRateMin)
}

func TestSetPartial_Rejections(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	ctx := context.Background()
	tests := []struct {
		name     string
		kind     models.SignalKind
		min, max float64
		code     ValidationCode
	}{
		{"fractional heart rate", models.SignalHeartRate, 50.5, 120, CodeInvalidValue},
		{"fractional saturation", models.SignalSaturation, 90.1, 0, CodeInvalidValue},
		{"nan temperature", models.SignalTemperature, math.NaN(), 38, CodeInvalidValue},
		{"blood pressure", models.SignalBloodPressure, 90, 140, CodeUnsupportedSignal},
		{"unknown", models.SignalKind("weight"), 1, 2, CodeUnsupportedSignal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Thresholds.SetPartial(ctx, tt.kind, tt.min, tt.max)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.code, verr.Code)
		})
	}

	history, err := m.Thresholds.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSetPartial_InvertedBoundsAccepted(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	saved, err := m.Thresholds.SetPartial(context.Background(), models.SignalHeartRate, 120, 50)
	require.NoError(t, err)
	assert.Equal(t, 120, saved.HeartRateMin)
	assert.Equal(t, 50, saved.HeartRateMax)
}

func TestSetPartial_WriteFailure(t *testing.T) {
	common.SetTestLoggerNop()

	m, mock := newSqlmockMonitor(t)
	mock.ExpectQuery(`SELECT \* FROM "alert_thresholds"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "alert_thresholds"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := m.Thresholds.SetPartial(context.Background(), models.SignalSaturation, 92, 0)
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "append thresholds", serr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetPressureRange(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	ctx := context.Background()
	saved, err := m.Thresholds.SetPressureRange(ctx, "100/65", "135/85")
	require.NoError(t, err)
	assert.Equal(t, "100/65", saved.BloodPressureMin)
	assert.Equal(t, "135/85", saved.BloodPressureMax)
	assert.Equal(t, 35.0, saved.TemperatureMin)

	_, err = m.Thresholds.SetPressureRange(ctx, "100-65", "135/85")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "blood_pressure_min", verr.Field)
	assert.Equal(t, CodeMalformedFormat, verr.Code)
}

func TestReplaceAndHistory(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	ctx := context.Background()
	input := &models.AlertThresholds{
		ID:               99,
		TemperatureMin:   35.2,
		TemperatureMax:   37.9,
		HeartRateMin:     55,
		HeartRateMax:     115,
		SaturationMin:    93,
		BloodPressureMin: "95/60",
		BloodPressureMax: "135/85",
	}

	for range 3 {
		_, err := m.Thresholds.Replace(ctx, input)
		require.NoError(t, err)
	}

	history, err := m.Thresholds.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Greater(t, history[0].ID, history[1].ID)
	assert.NotEqual(t, uint(99), history[0].ID)

	_, err = m.Thresholds.Replace(ctx, nil)
	assert.True(t, IsValidationError(err))

	input.BloodPressureMax = "high"
	_, err = m.Thresholds.Replace(ctx, input)
	assert.True(t, IsValidationError(err))
}

func TestAppendThresholds_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	_, err := m.Thresholds.SetPartial(context.Background(), models.SignalSaturation, 88, 0)
	require.NoError(t, err)

	assert.True(t, findLog(ParseLogs(buf), func(l map[string]any) bool {
		th, ok := l["thresholds"].(map[string]any)
		return ok &&
			l["logger"] == "monitor_core" &&
			l["category"] == "thresholds" &&
			l["msg"] == "Appended thresholds version" &&
			th["SaturationMin"] == float64(88)
	}))
}

func withRedisCache(t *testing.T, m *Monitor) *miniredis.Miniredis {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	m.Cache = cache.NewRedisThresholdCache(client, time.Minute)
	return mr
}

func TestGetCurrent_Cache(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()
	mr := withRedisCache(t, m)

	ctx := context.Background()

	// defaults are never cached
	_, err := m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.DefaultThresholdsKey))

	saved, err := m.Thresholds.SetPartial(ctx, models.SignalSaturation, 91, 0)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.DefaultThresholdsKey))

	// a row written behind the cache is not seen until the snapshot expires
	behind := models.DefaultAlertThresholds()
	behind.SaturationMin = 80
	require.NoError(t, m.Db.Conn.Create(&behind).Error)

	current, err := m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, current.ID)
	assert.Equal(t, 91, current.SaturationMin)

	mr.FastForward(2 * time.Minute)

	current, err = m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, behind.ID, current.ID)
	assert.True(t, mr.Exists(cache.DefaultThresholdsKey))
}

func TestGetCurrent_StaleWriteBackIgnored(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()
	withRedisCache(t, m)

	ctx := context.Background()
	older, err := m.Thresholds.SetPartial(ctx, models.SignalSaturation, 91, 0)
	require.NoError(t, err)
	newer, err := m.Thresholds.SetPartial(ctx, models.SignalSaturation, 87, 0)
	require.NoError(t, err)
	require.Greater(t, newer.ID, older.ID)

	// a reader that loaded the older version before the append finished
	m.refreshCache(ctx, older)

	current, err := m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, current.ID)
	assert.Equal(t, 87, current.SaturationMin)
}

func TestGetCurrent_CacheDown(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()
	mr := withRedisCache(t, m)

	ctx := context.Background()
	saved, err := m.Thresholds.SetPartial(ctx, models.SignalSaturation, 91, 0)
	require.NoError(t, err)

	mr.Close()

	current, err := m.Thresholds.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, current.ID)

	assert.True(t, findLog(ParseLogs(buf), func(l map[string]any) bool {
		return l["level"] == "warn" && l["msg"] == "Thresholds cache read failed"
	}))
}
