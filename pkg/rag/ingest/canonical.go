package ingest

import (
	"fmt"

	"averin-be/internal/entity"
)

// Canonical text builders, one per source kind. Each vault item is
// embedded as a single descriptive string, kept verbatim on the record
// for citation display. Formats are stable: changing them silently
// invalidates every previously indexed record.

func CanonicalNote(note *entity.Note) string {
	title := note.Title
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("Note: %s — %s", title, note.Content)
}

func CanonicalLink(link *entity.Link) string {
	title := link.Title
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("Link: %s — %s", title, link.Url)
}

func CanonicalAction(action *entity.Action) string {
	recurrence := "One-time"
	if action.IsRecurring {
		recurrence = "Recurring"
	}
	completion := "Not completed"
	if action.IsCompleted {
		completion = "Completed"
	}
	return fmt.Sprintf("Action: %s — %s — %s", action.Title, recurrence, completion)
}

func CanonicalAttachment(attachment *entity.Attachment) string {
	return fmt.Sprintf("Attachment: %s\nType: %s\nContent: %s",
		attachment.Name,
		attachment.ContentType,
		attachment.Content,
	)
}
