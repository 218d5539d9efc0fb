package monitor

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

const (
	ConfirmationMessageSent = "Mensagem enviada!"
	MessageEmptyText        = "Digite uma mensagem!"
	DefaultInboxLimit       = 50
)

func (m *Monitor) loadUser(ctx context.Context, field string, userID uint) (*models.User, error) {
	var user models.User
	err := m.Db.Conn.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ValidationError{Code: CodeInvalidValue, Field: field, Message: "user not found"}
	}
	if err != nil {
		return nil, &StorageError{Op: "load user", Err: err}
	}
	return &user, nil
}

func (m *Monitor) sendMessage(ctx context.Context, senderID uint, recipientID uint, text string) (*models.MessageResult, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryMessage).
		With(zap.String("request_id", RequestIDFromContext(ctx)))

	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Code: CodeInvalidValue, Field: "text", Message: MessageEmptyText}
	}

	sender, err := m.loadUser(ctx, "sender_id", senderID)
	if err != nil {
		return nil, err
	}
	recipient, err := m.loadUser(ctx, "recipient_id", recipientID)
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Text:        text,
		SentAt:      time.Now(),
	}
	if err := m.Db.Conn.WithContext(ctx).Create(&msg).Error; err != nil {
		logger.Error("Failed to store message", zap.Error(err))
		return nil, &StorageError{Op: "store message", Err: err}
	}
	logger.Info("Message stored",
		zap.Uint("message_id", msg.ID),
		zap.Uint("sender_id", msg.SenderID),
		zap.Uint("recipient_id", msg.RecipientID),
	)

	result := &models.MessageResult{Message: msg, Confirmation: ConfirmationMessageSent}

	if m.Notifier != nil {
		result.Outcome = m.Notifier.NotifyMessage(ctx, toRecipient(sender), toRecipient(recipient), text)
	} else {
		result.Outcome = models.DispatchOutcome{Status: models.DispatchStatusSkipped}
	}

	if m.Audit != nil {
		result.AuditErr = m.Audit.Record(ctx, sender.ID, models.ActionMessageSent, strings.TrimSpace(text))
	} else {
		result.AuditErr = ErrServiceUnavailable
	}
	if result.AuditErr != nil {
		logger.Error("Message sent without audit entry", zap.Uint("message_id", msg.ID), zap.Error(result.AuditErr))
	}

	return result, nil
}

func (m *Monitor) getInbox(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := m.Db.Conn.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("sent_at desc").
		Order("id desc").
		Limit(DefaultInboxLimit).
		Find(&messages).Error
	if err != nil {
		return nil, &StorageError{Op: "list messages", Err: err}
	}
	return messages, nil
}

type IMessageImpl struct {
	monitor *Monitor
}

func (im *IMessageImpl) SendMessage(ctx context.Context, senderID uint, recipientID uint, text string) (*models.MessageResult, error) {
	return im.monitor.sendMessage(ctx, senderID, recipientID, text)
}

func (im *IMessageImpl) GetInbox(ctx context.Context, userID uint) ([]models.Message, error) {
	return im.monitor.getInbox(ctx, userID)
}

func (m *Monitor) GetIMessage() IMessage {
	return &IMessageImpl{monitor: m}
}
