package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body" validate:"required"`
}

type UpdateNoteRequest struct {
	Id    uuid.UUID `json:"-"`
	Title string    `json:"title"`
	Body  string    `json:"body" validate:"required"`
}

type NoteResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
