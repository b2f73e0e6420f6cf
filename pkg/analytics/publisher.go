package analytics

import (
	"context"
	"time"

	"property-assistant-be/internal/pkg/logger"
	pkgEvents "property-assistant-be/pkg/events"
	pkgNats "property-assistant-be/pkg/nats"

	"github.com/google/uuid"
)

// Event types emitted by the resident assistant.
const (
	EventChatQuestion      = "chat_question"
	EventChatFallback      = "chat_fallback"
	EventDocumentView      = "document_view"
	EventDocumentOpen      = "document_open"
	EventDocumentDownload  = "document_download"
	EventSearch            = "search"
	EventUnanswered        = "unanswered"
	EventError             = "error"
	EventSessionStart      = "session_start"
	EventQrScan            = "qr_scan"
	EventPurchaserSignup   = "purchaser_signup"
	EventPurchaserActivate = "purchaser_activate"
	EventSessionActive     = "session_active"
)

// Params carries one analytics event. EventData is sanitized before
// publishing, SessionId is hashed and never leaves the process raw.
type Params struct {
	TenantId      uuid.UUID
	DevelopmentId *uuid.UUID
	HouseTypeCode string
	EventType     string
	EventCategory string
	EventData     map[string]interface{}
	SessionId     string
	UnitId        *uuid.UUID
}

// Publisher abstracts analytics event publishing for the chat flow.
type Publisher interface {
	PublishChatQuestion(ctx context.Context, params Params)
	PublishChatFallback(ctx context.Context, params Params)
	PublishUnanswered(ctx context.Context, params Params)
	PublishError(ctx context.Context, params Params)
}

// NatsPublisher implements Publisher over the NATS event bus. Publishing
// is fire-and-forget: analytics must never fail a chat request.
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) PublishChatQuestion(ctx context.Context, params Params) {
	params.EventType = EventChatQuestion
	p.publish(ctx, params)
}

func (p *NatsPublisher) PublishChatFallback(ctx context.Context, params Params) {
	params.EventType = EventChatFallback
	p.publish(ctx, params)
}

func (p *NatsPublisher) PublishUnanswered(ctx context.Context, params Params) {
	params.EventType = EventUnanswered
	p.publish(ctx, params)
}

func (p *NatsPublisher) PublishError(ctx context.Context, params Params) {
	params.EventType = EventError
	p.publish(ctx, params)
}

func (p *NatsPublisher) publish(ctx context.Context, params Params) {
	if p.publisher == nil {
		return
	}

	data := params.EventData
	if data == nil {
		data = map[string]interface{}{}
	}
	if params.UnitId != nil {
		data["unit_id"] = params.UnitId.String()
	}

	payload := map[string]interface{}{
		"tenant_id":  params.TenantId.String(),
		"event_type": params.EventType,
		"event_data": SanitizeEventData(data),
	}
	if params.DevelopmentId != nil {
		payload["development_id"] = params.DevelopmentId.String()
	}
	if params.HouseTypeCode != "" {
		payload["house_type_code"] = params.HouseTypeCode
	}
	if params.EventCategory != "" {
		payload["event_category"] = params.EventCategory
	}
	if hash := HashSession(params.SessionId, time.Now()); hash != "" {
		payload["session_hash"] = hash
	}

	evt := pkgEvents.BaseEvent{
		Type:       params.EventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ANALYTICS", "Failed to publish analytics event", map[string]interface{}{
			"event_type": params.EventType,
			"error":      err.Error(),
		})
	}
}
