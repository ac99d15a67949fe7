package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAttachmentRequest struct {
	Name         string                 `json:"name" validate:"required"`
	ContentType  string                 `json:"contentType" validate:"omitempty,oneof=text ocr docx xlsx"`
	Content      string                 `json:"content" validate:"required"`
	OriginalSize int64                  `json:"originalSize"`
	Metadata     map[string]interface{} `json:"metadata"`
}

type AttachmentResponse struct {
	Id           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	ContentType  string                 `json:"contentType"`
	Content      string                 `json:"content"`
	OriginalSize int64                  `json:"originalSize"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
}
