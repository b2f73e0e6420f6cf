package mapper

import (
	"encoding/json"

	"property-assistant-be/internal/entity"
	"property-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type ChatSessionMapper struct{}

func NewChatSessionMapper() *ChatSessionMapper {
	return &ChatSessionMapper{}
}

func (m *ChatSessionMapper) ToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	return &entity.ChatSession{
		Id:            s.Id,
		TenantId:      s.TenantId,
		DevelopmentId: s.DevelopmentId,
		UnitId:        s.UnitId,
		StartedAt:     s.StartedAt,
		LastActiveAt:  s.LastActiveAt,
	}
}

func (m *ChatSessionMapper) ToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	return &model.ChatSession{
		Id:            s.Id,
		TenantId:      s.TenantId,
		DevelopmentId: s.DevelopmentId,
		UnitId:        s.UnitId,
		StartedAt:     s.StartedAt,
		LastActiveAt:  s.LastActiveAt,
	}
}

type ChatMessageMapper struct{}

func NewChatMessageMapper() *ChatMessageMapper {
	return &ChatMessageMapper{}
}

func (m *ChatMessageMapper) ToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var citedIds []string
	if len(msg.CitedDocumentIds) > 0 {
		// Malformed rows degrade to no citations rather than failing the read.
		_ = json.Unmarshal(msg.CitedDocumentIds, &citedIds)
	}

	return &entity.ChatMessage{
		Id:               msg.Id,
		TenantId:         msg.TenantId,
		DevelopmentId:    msg.DevelopmentId,
		SessionId:        msg.SessionId,
		UnitId:           msg.UnitId,
		UserMessage:      msg.UserMessage,
		AiMessage:        msg.AiMessage,
		Source:           msg.Source,
		TokenCount:       msg.TokenCount,
		CostUsd:          msg.CostUsd,
		LatencyMs:        msg.LatencyMs,
		CitedDocumentIds: citedIds,
		Metadata:         msg.Metadata,
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *ChatMessageMapper) ToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

func (m *ChatMessageMapper) ToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var citedIds datatypes.JSON
	if len(msg.CitedDocumentIds) > 0 {
		raw, err := json.Marshal(msg.CitedDocumentIds)
		if err == nil {
			citedIds = raw
		}
	}

	return &model.ChatMessage{
		Id:               msg.Id,
		TenantId:         msg.TenantId,
		DevelopmentId:    msg.DevelopmentId,
		SessionId:        msg.SessionId,
		UnitId:           msg.UnitId,
		UserMessage:      msg.UserMessage,
		AiMessage:        msg.AiMessage,
		Source:           msg.Source,
		TokenCount:       msg.TokenCount,
		CostUsd:          msg.CostUsd,
		LatencyMs:        msg.LatencyMs,
		CitedDocumentIds: citedIds,
		Metadata:         msg.Metadata,
		CreatedAt:        msg.CreatedAt,
	}
}

type ChatCitationMapper struct{}

func NewChatCitationMapper() *ChatCitationMapper {
	return &ChatCitationMapper{}
}

func (m *ChatCitationMapper) ToEntity(c *model.ChatCitation) *entity.ChatCitation {
	if c == nil {
		return nil
	}

	return &entity.ChatCitation{
		Id:            c.Id,
		ChatMessageId: c.ChatMessageId,
		DocumentId:    c.DocumentId,
		ChunkId:       c.ChunkId,
		Score:         c.Score,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatCitationMapper) ToEntities(citations []*model.ChatCitation) []*entity.ChatCitation {
	entities := make([]*entity.ChatCitation, len(citations))
	for i, c := range citations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChatCitationMapper) ToModel(c *entity.ChatCitation) *model.ChatCitation {
	if c == nil {
		return nil
	}

	return &model.ChatCitation{
		Id:            c.Id,
		ChatMessageId: c.ChatMessageId,
		DocumentId:    c.DocumentId,
		ChunkId:       c.ChunkId,
		Score:         c.Score,
		CreatedAt:     c.CreatedAt,
	}
}
