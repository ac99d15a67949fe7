package implementation

import (
	"context"
	"errors"

	"averin-be/internal/entity"
	"averin-be/internal/mapper"
	"averin-be/internal/model"
	"averin-be/internal/repository/contract"
	"averin-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LinkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LinkMapper
}

func NewLinkRepository(db *gorm.DB) contract.LinkRepository {
	return &LinkRepositoryImpl{
		db:     db,
		mapper: mapper.NewLinkMapper(),
	}
}

func (r *LinkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// CreateBulk inserts with ON CONFLICT DO NOTHING on (user_id, url), then
// reads back the rows for the requested urls so callers see the ids that
// actually exist, including pre-existing duplicates.
func (r *LinkRepositoryImpl) CreateBulk(ctx context.Context, links []*entity.Link) ([]*entity.Link, error) {
	if len(links) == 0 {
		return []*entity.Link{}, nil
	}

	models := make([]*model.Link, len(links))
	urls := make([]string, len(links))
	for i, l := range links {
		models[i] = r.mapper.ToModel(l)
		urls[i] = l.Url
	}
	userId := links[0].UserId

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(models).Error
	if err != nil {
		return nil, err
	}

	var saved []*model.Link
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND url IN ?", userId, urls).
		Find(&saved).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.Link, len(saved))
	for i, m := range saved {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *LinkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Link{}, id).Error
}

func (r *LinkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Link, error) {
	var m model.Link
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LinkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Link, error) {
	var models []*model.Link
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Link, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
