package mapper

import (
	"encoding/json"

	"averin-be/internal/entity"
	"averin-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}
	return &entity.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type LinkMapper struct{}

func NewLinkMapper() *LinkMapper {
	return &LinkMapper{}
}

func (m *LinkMapper) ToEntity(l *model.Link) *entity.Link {
	if l == nil {
		return nil
	}
	return &entity.Link{
		Id:        l.Id,
		UserId:    l.UserId,
		Url:       l.Url,
		Title:     l.Title,
		CreatedAt: l.CreatedAt,
	}
}

func (m *LinkMapper) ToModel(l *entity.Link) *model.Link {
	if l == nil {
		return nil
	}
	return &model.Link{
		Id:        l.Id,
		UserId:    l.UserId,
		Url:       l.Url,
		Title:     l.Title,
		CreatedAt: l.CreatedAt,
	}
}

type ActionMapper struct{}

func NewActionMapper() *ActionMapper {
	return &ActionMapper{}
}

func (m *ActionMapper) ToEntity(a *model.Action) *entity.Action {
	if a == nil {
		return nil
	}
	return &entity.Action{
		Id:          a.Id,
		UserId:      a.UserId,
		Title:       a.Title,
		IsRecurring: a.IsRecurring,
		IsCompleted: a.IsCompleted,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (m *ActionMapper) ToModel(a *entity.Action) *model.Action {
	if a == nil {
		return nil
	}
	return &model.Action{
		Id:          a.Id,
		UserId:      a.UserId,
		Title:       a.Title,
		IsRecurring: a.IsRecurring,
		IsCompleted: a.IsCompleted,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type AttachmentMapper struct{}

func NewAttachmentMapper() *AttachmentMapper {
	return &AttachmentMapper{}
}

func (m *AttachmentMapper) ToEntity(a *model.Attachment) *entity.Attachment {
	if a == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		// Metadata is operator-facing diagnostics; a corrupt blob should
		// not make the attachment unreadable.
		_ = json.Unmarshal(a.Metadata, &metadata)
	}

	return &entity.Attachment{
		Id:           a.Id,
		UserId:       a.UserId,
		Name:         a.Name,
		ContentType:  a.ContentType,
		Content:      a.Content,
		OriginalSize: a.OriginalSize,
		Metadata:     metadata,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *AttachmentMapper) ToModel(a *entity.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}

	var metadata datatypes.JSON
	if a.Metadata != nil {
		if raw, err := json.Marshal(a.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.Attachment{
		Id:           a.Id,
		UserId:       a.UserId,
		Name:         a.Name,
		ContentType:  a.ContentType,
		Content:      a.Content,
		OriginalSize: a.OriginalSize,
		Metadata:     metadata,
		CreatedAt:    a.CreatedAt,
	}
}
