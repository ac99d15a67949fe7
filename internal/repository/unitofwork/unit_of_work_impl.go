package unitofwork

import (
	"context"
	"errors"

	"averin-be/internal/repository/contract"
	"averin-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type unitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func newUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWorkImpl{db: db}
}

// handle returns the transaction if one is open, the base connection
// otherwise. Repositories created before Begin run outside the
// transaction, so callers must call Begin first when they need one.
func (u *unitOfWorkImpl) handle() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *unitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *unitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return errors.New("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *unitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return nil // Commit already ran, deferred Rollback is a no-op
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *unitOfWorkImpl) NoteRepository() contract.NoteRepository {
	return implementation.NewNoteRepository(u.handle())
}

func (u *unitOfWorkImpl) LinkRepository() contract.LinkRepository {
	return implementation.NewLinkRepository(u.handle())
}

func (u *unitOfWorkImpl) ActionRepository() contract.ActionRepository {
	return implementation.NewActionRepository(u.handle())
}

func (u *unitOfWorkImpl) AttachmentRepository() contract.AttachmentRepository {
	return implementation.NewAttachmentRepository(u.handle())
}

func (u *unitOfWorkImpl) EmbeddingRepository() contract.EmbeddingRepository {
	return implementation.NewEmbeddingRepository(u.handle())
}
