package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateActionRequest struct {
	Title       string `json:"title" validate:"required"`
	IsRecurring bool   `json:"isRecurring"`
	IsCompleted bool   `json:"isCompleted"`
}

// UpdateActionRequest is a partial update. Nil fields are left untouched.
type UpdateActionRequest struct {
	Id          uuid.UUID `json:"-"`
	Title       *string   `json:"title"`
	IsRecurring *bool     `json:"isRecurring"`
	IsCompleted *bool     `json:"isCompleted"`
}

type ActionResponse struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	IsRecurring bool      `json:"isRecurring"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}
