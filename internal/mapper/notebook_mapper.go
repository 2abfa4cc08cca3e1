package mapper

import (
	"time"

	"conote-be/internal/entity"
	"conote-be/internal/model"

	"gorm.io/gorm"
)

type NotebookMapper struct{}

func NewNotebookMapper() *NotebookMapper {
	return &NotebookMapper{}
}

func (m *NotebookMapper) ToEntity(n *model.Notebook) *entity.Notebook {
	if n == nil {
		return nil
	}

	var deletedAt *time.Time
	if n.DeletedAt.Valid {
		t := n.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Notebook{
		Id:          n.Id,
		Title:       n.Title,
		Description: n.Description,
		UserId:      n.UserId,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   updatedAt,
		ArchivedAt:  n.ArchivedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   n.DeletedAt.Valid,
	}
}

func (m *NotebookMapper) ToModel(n *entity.Notebook) *model.Notebook {
	if n == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if n.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *n.DeletedAt, Valid: true}
	} else if n.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Notebook{
		Id:          n.Id,
		Title:       n.Title,
		Description: n.Description,
		UserId:      n.UserId,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   updatedAt,
		ArchivedAt:  n.ArchivedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *NotebookMapper) ToEntities(notebooks []*model.Notebook) []*entity.Notebook {
	entities := make([]*entity.Notebook, len(notebooks))
	for i, n := range notebooks {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

type NotebookGrantMapper struct{}

func NewNotebookGrantMapper() *NotebookGrantMapper {
	return &NotebookGrantMapper{}
}

func (m *NotebookGrantMapper) ToEntity(g *model.NotebookGrant) *entity.NotebookGrant {
	if g == nil {
		return nil
	}
	return &entity.NotebookGrant{
		Id:         g.Id,
		NotebookId: g.NotebookId,
		UserId:     g.UserId,
		CreatedAt:  g.CreatedAt,
	}
}

func (m *NotebookGrantMapper) ToModel(g *entity.NotebookGrant) *model.NotebookGrant {
	if g == nil {
		return nil
	}
	return &model.NotebookGrant{
		Id:         g.Id,
		NotebookId: g.NotebookId,
		UserId:     g.UserId,
		CreatedAt:  g.CreatedAt,
	}
}

func (m *NotebookGrantMapper) ToEntities(grants []*model.NotebookGrant) []*entity.NotebookGrant {
	entities := make([]*entity.NotebookGrant, len(grants))
	for i, g := range grants {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
