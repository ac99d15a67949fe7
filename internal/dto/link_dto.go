package dto

import (
	"time"

	"github.com/google/uuid"
)

// LinkItemDTO carries no per-item validation: blank urls are filtered by
// the service instead of rejecting the whole batch.
type LinkItemDTO struct {
	Url   string `json:"url"`
	Title string `json:"title"`
}

type CreateLinksRequest struct {
	Links []LinkItemDTO `json:"links" validate:"required,min=1"`
}

type LinkResponse struct {
	Id        uuid.UUID `json:"id"`
	Url       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateLinksResponse reports the rows actually written. Duplicate urls
// already held by the user are skipped, so Count can be lower than the
// request length.
type CreateLinksResponse struct {
	Links []*LinkResponse `json:"links"`
	Count int             `json:"count"`
}
