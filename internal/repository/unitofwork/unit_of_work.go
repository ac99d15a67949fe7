package unitofwork

import (
	"context"

	"averin-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	LinkRepository() contract.LinkRepository
	ActionRepository() contract.ActionRepository
	AttachmentRepository() contract.AttachmentRepository
	EmbeddingRepository() contract.EmbeddingRepository
}
