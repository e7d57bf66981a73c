package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/notification/usecase"
	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"github.com/virasatlabs/virasat/internal/pkg/messaging"
	"github.com/virasatlabs/virasat/internal/pkg/uid"
	"github.com/virasatlabs/virasat/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) NomineeInvitedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "NomineeInvitedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: nominee invited notification", "msg_body", string(body))

	var payload event.NomineeInvitedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of nominee invited notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeNomineeInvited(ctx, usecase.ConsumeNomineeInvitedInput{
		OwnerMobile:   payload.OwnerMobile,
		NomineeID:     payload.NomineeID,
		NomineeName:   payload.NomineeName,
		NomineeMobile: payload.NomineeMobile,
		NomineeEmail:  payload.NomineeEmail,
		Relation:      payload.Relation,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume nominee invited", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) EmergencyRuleArmedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "EmergencyRuleArmedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: emergency rule armed notification", "msg_body", string(body))

	var payload event.EmergencyRuleArmedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of emergency rule armed notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeEmergencyRuleArmed(ctx, usecase.ConsumeEmergencyRuleArmedInput{
		OwnerMobile:       payload.OwnerMobile,
		OwnerEmail:        payload.OwnerEmail,
		InactivityDays:    payload.InactivityDays,
		RequireDeathProof: payload.RequireDeathProof,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume emergency rule armed", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
