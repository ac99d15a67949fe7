package contract

import (
	"context"

	"averin-be/internal/entity"
	"averin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type LinkRepository interface {
	// CreateBulk inserts links, silently skipping rows that collide with
	// an existing (user_id, url) pair. Returns the rows that now exist
	// for the given urls.
	CreateBulk(ctx context.Context, links []*entity.Link) ([]*entity.Link, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Link, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Link, error)
}

type ActionRepository interface {
	Create(ctx context.Context, action *entity.Action) error
	Update(ctx context.Context, action *entity.Action) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Action, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Action, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error)
}
