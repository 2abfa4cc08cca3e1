package implementation

import (
	"context"
	"errors"

	"conote-be/internal/entity"
	"conote-be/internal/mapper"
	"conote-be/internal/model"
	"conote-be/internal/repository/contract"
	"conote-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CommentMapper
}

func NewCommentRepository(db *gorm.DB) contract.CommentRepository {
	return &CommentRepositoryImpl{
		db:     db,
		mapper: mapper.NewCommentMapper(),
	}
}

func (r *CommentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *entity.Comment) error {
	m := r.mapper.ToModel(comment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*comment = *r.mapper.ToEntity(m)
	return nil
}

func (r *CommentRepositoryImpl) Update(ctx context.Context, comment *entity.Comment) error {
	m := r.mapper.ToModel(comment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*comment = *r.mapper.ToEntity(m)
	return nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

func (r *CommentRepositoryImpl) DeleteAllByNoteIds(ctx context.Context, noteIds []uuid.UUID) error {
	if len(noteIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("note_id IN ?", noteIds).Delete(&model.Comment{}).Error
}

func (r *CommentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Comment, error) {
	var m model.Comment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CommentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Comment, error) {
	var models []*model.Comment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CommentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Comment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
