package monitor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/metrics"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

type email struct {
	subject string
	body    string
}

func alertLines(alerts []models.AlertDescription) string {
	return strings.Join(common.Mapper(alerts, func(a models.AlertDescription) string {
		return "⚠️ " + a.Text
	}), "\n")
}

func professionalAlertEmail(patient models.Recipient, alerts []models.AlertDescription) email {
	return email{
		subject: fmt.Sprintf("[ALERTA] Sinais vitais alterados - %s", patient.Name),
		body: fmt.Sprintf("O paciente %s apresentou alterações nos seguintes sinais:\n\n", patient.Name) +
			alertLines(alerts) +
			"\n\nPor favor, avalie o caso e, se necessário, entre em contato.",
	}
}

func patientAlertEmail(patient models.Recipient, alerts []models.AlertDescription) email {
	return email{
		subject: "[ATENÇÃO] Alteração nos seus sinais vitais",
		body: fmt.Sprintf("Olá %s,\n\nDetectamos alterações em seus sinais vitais:\n\n", patient.Name) +
			alertLines(alerts) +
			"\n\nRecomendamos procurar orientação profissional caso não esteja se sentindo bem.",
	}
}

func messageEmail(sender models.Recipient, recipient models.Recipient, text string) email {
	senderName := sender.Name
	if senderName == "" {
		senderName = "Usuário"
	}
	return email{
		subject: "Nova mensagem no Telemonitoramento CEUB",
		body: fmt.Sprintf("Olá %s,\n\nVocê recebeu uma nova mensagem de %s no sistema de Telemonitoramento CEUB.\n\nMensagem: %s\n\nAcesse o sistema para responder.",
			recipient.Name, senderName, text),
	}
}

func outcomeStatus(o models.DispatchOutcome) models.DispatchStatus {
	switch {
	case len(o.Delivered) == 0:
		return models.DispatchStatusFailed
	case len(o.Failed) == 0:
		return models.DispatchStatusDelivered
	default:
		return models.DispatchStatusPartial
	}
}

// sendOne makes exactly one attempt, bounded by the notify timeout.
func (m *Monitor) sendOne(ctx context.Context, r models.Recipient, e email) error {
	if m.Mailer == nil {
		return ErrNoTransport
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrNoRecipientAddress
	}

	ctx, cancel := context.WithTimeout(ctx, m.notifyTimeout())
	defer cancel()

	return m.Mailer.SendEmail(ctx, m.Notify.Sender, r.Email, e.subject, e.body)
}

func (m *Monitor) deliver(ctx context.Context, batchID string, recipients []models.Recipient, compose func(models.Recipient) email) models.DispatchOutcome {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryNotify).
		With(zap.String("batch_id", batchID), zap.String("request_id", RequestIDFromContext(ctx)))

	outcome := models.DispatchOutcome{BatchID: batchID}

	for _, r := range recipients {
		if err := m.sendOne(ctx, r, compose(r)); err != nil {
			derr := &DeliveryError{Recipient: r, Err: err}
			logger.Warn("Delivery failed", zap.Uint("user_id", r.UserID), zap.String("role", string(r.Role)), zap.Error(derr))
			metrics.Deliveries.WithLabelValues("failed").Inc()
			outcome.Failed = append(outcome.Failed, models.FailedDelivery{Recipient: r, Reason: err.Error()})
			continue
		}
		logger.Info("Delivered", zap.Uint("user_id", r.UserID), zap.String("role", string(r.Role)))
		metrics.Deliveries.WithLabelValues("delivered").Inc()
		outcome.Delivered = append(outcome.Delivered, r)
	}

	outcome.Status = outcomeStatus(outcome)
	logger.Info("Dispatch finished",
		zap.String("status", string(outcome.Status)),
		zap.Int("delivered", len(outcome.Delivered)),
		zap.Int("failed", len(outcome.Failed)),
	)
	return outcome
}

func (m *Monitor) dispatch(ctx context.Context, patient models.Recipient, alerts []models.AlertDescription, recipients []models.Recipient) models.DispatchOutcome {
	batchID := NewID()
	if len(alerts) == 0 {
		return models.DispatchOutcome{BatchID: batchID, Status: models.DispatchStatusSkipped}
	}

	return m.deliver(ctx, batchID, recipients, func(r models.Recipient) email {
		if r.Role == models.UserRolePatient {
			return patientAlertEmail(patient, alerts)
		}
		return professionalAlertEmail(patient, alerts)
	})
}

func (m *Monitor) notifyMessage(ctx context.Context, sender models.Recipient, recipient models.Recipient, text string) models.DispatchOutcome {
	return m.deliver(ctx, NewID(), []models.Recipient{recipient}, func(r models.Recipient) email {
		return messageEmail(sender, r, text)
	})
}

type INotifierImpl struct {
	monitor *Monitor
}

func (in *INotifierImpl) Dispatch(ctx context.Context, patient models.Recipient, alerts []models.AlertDescription, recipients []models.Recipient) models.DispatchOutcome {
	return in.monitor.dispatch(ctx, patient, alerts, recipients)
}

func (in *INotifierImpl) NotifyMessage(ctx context.Context, sender models.Recipient, recipient models.Recipient, text string) models.DispatchOutcome {
	return in.monitor.notifyMessage(ctx, sender, recipient, text)
}

func (m *Monitor) GetINotifier() INotifier {
	return &INotifierImpl{monitor: m}
}
