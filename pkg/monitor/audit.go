package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/metrics"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

const DefaultAuditListLimit = 100

func (m *Monitor) record(ctx context.Context, actorUserID uint, action string, detail string) error {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAudit)

	entry := models.AuditEntry{
		ActorUserID: actorUserID,
		Action:      action,
		Detail:      detail,
		RequestID:   RequestIDFromContext(ctx),
		Timestamp:   time.Now(),
	}

	if err := m.Db.Conn.WithContext(ctx).Create(&entry).Error; err != nil {
		metrics.AuditFailures.Inc()
		logger.Error("Failed to record audit entry",
			zap.Uint("actor_user_id", actorUserID),
			zap.String("action", action),
			zap.Error(err),
		)
		return &StorageError{Op: "record audit", Err: err}
	}

	logger.Info("Audit",
		zap.Uint("actor_user_id", actorUserID),
		zap.String("action", action),
		zap.String("detail", detail),
		zap.String("request_id", entry.RequestID),
	)
	return nil
}

func (m *Monitor) listEntries(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultAuditListLimit
	}

	q := m.Db.Conn.WithContext(ctx)
	if filter.ActorUserID != 0 {
		q = q.Where("actor_user_id = ?", filter.ActorUserID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if !filter.From.IsZero() {
		q = q.Where("timestamp >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("timestamp < ?", filter.To)
	}

	var entries []models.AuditEntry
	if err := q.Order("timestamp desc").Order("id desc").Limit(limit).Find(&entries).Error; err != nil {
		return nil, &StorageError{Op: "list audit entries", Err: err}
	}
	return entries, nil
}

type IAuditImpl struct {
	monitor *Monitor
}

func (ia *IAuditImpl) Record(ctx context.Context, actorUserID uint, action string, detail string) error {
	return ia.monitor.record(ctx, actorUserID, action, detail)
}

func (ia *IAuditImpl) ListEntries(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	return ia.monitor.listEntries(ctx, filter)
}

func (m *Monitor) GetIAudit() IAudit {
	return &IAuditImpl{monitor: m}
}
