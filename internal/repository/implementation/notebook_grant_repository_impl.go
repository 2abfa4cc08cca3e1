package implementation

import (
	"context"

	"conote-be/internal/entity"
	"conote-be/internal/mapper"
	"conote-be/internal/model"
	"conote-be/internal/repository/contract"
	"conote-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotebookGrantRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotebookGrantMapper
}

func NewNotebookGrantRepository(db *gorm.DB) contract.NotebookGrantRepository {
	return &NotebookGrantRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotebookGrantMapper(),
	}
}

func (r *NotebookGrantRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NotebookGrantRepositoryImpl) Create(ctx context.Context, grant *entity.NotebookGrant) error {
	m := r.mapper.ToModel(grant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*grant = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotebookGrantRepositoryImpl) DeleteAllByPair(ctx context.Context, notebookId, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("notebook_id = ? AND user_id = ?", notebookId, userId).
		Delete(&model.NotebookGrant{}).Error
}

func (r *NotebookGrantRepositoryImpl) DeleteAllByNotebookId(ctx context.Context, notebookId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("notebook_id = ?", notebookId).
		Delete(&model.NotebookGrant{}).Error
}

func (r *NotebookGrantRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NotebookGrant, error) {
	var models []*model.NotebookGrant
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NotebookGrantRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.NotebookGrant{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
