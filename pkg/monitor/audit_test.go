package monitor

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
	_ "liyu1981.xyz/telemonitoring-service/pkg/testing"
)

func TestRecord_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	requestID := NewID()
	ctx := WithRequestID(context.Background(), requestID)

	require.NoError(t, m.Audit.Record(ctx, 7, models.ActionThresholdsUpdated, "saturation min=92"))

	entries, err := m.Audit.ListEntries(context.Background(), models.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(7), entries[0].ActorUserID)
	assert.Equal(t, models.ActionThresholdsUpdated, entries[0].Action)
	assert.Equal(t, "saturation min=92", entries[0].Detail)
	assert.Equal(t, requestID, entries[0].RequestID)
	assert.False(t, entries[0].Timestamp.IsZero())

	assert.True(t, findLog(ParseLogs(buf), func(l map[string]any) bool {
		return l["logger"] == "monitor_core" &&
			l["category"] == "audit" &&
			l["msg"] == "Audit" &&
			l["action"] == models.ActionThresholdsUpdated &&
			l["request_id"] == requestID
	}))
}

func TestRecord_StorageFailure(t *testing.T) {
	common.SetTestLoggerNop()

	m, mock := newSqlmockMonitor(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_entries"`).WillReturnError(errors.New("read-only transaction"))
	mock.ExpectRollback()

	err := m.Audit.Record(context.Background(), 1, models.ActionAlertResolved, "alert=1")
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "record audit", serr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEntries_Filter(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, m, _ := GetMockMonitorWithMemorySqliteDialector(t, useMocks{})
	defer ctrl.Finish()

	ctx := context.Background()
	require.NoError(t, m.Audit.Record(ctx, 1, models.ActionReadingRegistered, "a"))
	require.NoError(t, m.Audit.Record(ctx, 2, models.ActionReadingRegistered, "b"))
	require.NoError(t, m.Audit.Record(ctx, 1, models.ActionMessageSent, "c"))

	byActor, err := m.Audit.ListEntries(ctx, models.AuditFilter{ActorUserID: 1})
	require.NoError(t, err)
	require.Len(t, byActor, 2)
	// newest first
	assert.Equal(t, "c", byActor[0].Detail)

	byAction, err := m.Audit.ListEntries(ctx, models.AuditFilter{Action: models.ActionReadingRegistered})
	require.NoError(t, err)
	assert.Len(t, byAction, 2)

	limited, err := m.Audit.ListEntries(ctx, models.AuditFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	future, err := m.Audit.ListEntries(ctx, models.AuditFilter{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)

	past, err := m.Audit.ListEntries(ctx, models.AuditFilter{To: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, past)
}
