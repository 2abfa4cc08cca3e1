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

type BookmarkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookmarkMapper
}

func NewBookmarkRepository(db *gorm.DB) contract.BookmarkRepository {
	return &BookmarkRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookmarkMapper(),
	}
}

func (r *BookmarkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BookmarkRepositoryImpl) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	m := r.mapper.ToModel(bookmark)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*bookmark = *r.mapper.ToEntity(m)
	return nil
}

func (r *BookmarkRepositoryImpl) Update(ctx context.Context, bookmark *entity.Bookmark) error {
	m := r.mapper.ToModel(bookmark)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*bookmark = *r.mapper.ToEntity(m)
	return nil
}

func (r *BookmarkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Bookmark{}, id).Error
}

func (r *BookmarkRepositoryImpl) DeleteAllByNoteIds(ctx context.Context, noteIds []uuid.UUID) error {
	if len(noteIds) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("note_id IN ?", noteIds).Delete(&model.Bookmark{}).Error
}

func (r *BookmarkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Bookmark, error) {
	var m model.Bookmark
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BookmarkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Bookmark, error) {
	var models []*model.Bookmark
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BookmarkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Bookmark{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
