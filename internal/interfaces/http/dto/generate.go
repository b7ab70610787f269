package dto

import (
	"marketai-api/internal/domain/entity"
)

// MessageDTO 单条对话消息
type MessageDTO struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content"`
}

// GenerateRequest 生成请求，只接受 messages，其余字段一律忽略
type GenerateRequest struct {
	Messages []MessageDTO `json:"messages" binding:"required,min=1,dive"`
}

// ToEntities 转换为领域消息
func (r *GenerateRequest) ToEntities() []entity.ChatMessage {
	out := make([]entity.ChatMessage, 0, len(r.Messages))
	for _, m := range r.Messages {
		out = append(out, entity.ChatMessage{
			Role:    entity.Role(m.Role),
			Content: m.Content,
		})
	}
	return out
}
