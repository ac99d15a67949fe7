package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Link struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Url       string
	Title     string
	CreatedAt time.Time
}

type Action struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	IsRecurring bool
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Attachment stores the plain text already extracted from an uploaded
// file. Extraction itself (OCR, spreadsheet, docx) happens upstream;
// this core only ever sees the resulting text.
type Attachment struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Name         string
	ContentType  string // "text", "ocr", "docx", "xlsx"
	Content      string
	OriginalSize int64
	Metadata     map[string]interface{}
	CreatedAt    time.Time
}
