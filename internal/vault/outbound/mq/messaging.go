package mq

import (
	"context"
	"encoding/json"

	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"github.com/virasatlabs/virasat/internal/pkg/messaging"
	"github.com/virasatlabs/virasat/internal/shared/event"
	"github.com/virasatlabs/virasat/internal/vault/usecase"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishNomineeInvited(ctx context.Context, msg usecase.NomineeInvitedEvent) error {
	ctx, span := m.ins.Tracer("vault.outbound.mq").Start(ctx, "PublishNomineeInvited")
	defer span.End()

	body, err := json.Marshal(event.NomineeInvitedMessage{
		OwnerMobile:   msg.OwnerMobile,
		NomineeID:     msg.NomineeID,
		NomineeName:   msg.NomineeName,
		NomineeMobile: msg.NomineeMobile,
		NomineeEmail:  msg.NomineeEmail,
		Relation:      msg.Relation,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.NomineeInvitedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishEmergencyRuleArmed(ctx context.Context, msg usecase.EmergencyRuleArmedEvent) error {
	ctx, span := m.ins.Tracer("vault.outbound.mq").Start(ctx, "PublishEmergencyRuleArmed")
	defer span.End()

	body, err := json.Marshal(event.EmergencyRuleArmedMessage{
		OwnerMobile:       msg.OwnerMobile,
		OwnerEmail:        msg.OwnerEmail,
		InactivityDays:    msg.InactivityDays,
		RequireDeathProof: msg.RequireDeathProof,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.EmergencyRuleArmedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
