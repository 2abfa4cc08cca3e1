package service

import (
	"context"
	"time"

	"conote-be/internal/access"
	"conote-be/internal/apperrors"
	"conote-be/internal/dto"
	"conote-be/internal/entity"
	"conote-be/internal/repository/specification"
	"conote-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IBookmarkService interface {
	GetAll(ctx context.Context, p access.Principal, notebookId *uuid.UUID) ([]*dto.ShowBookmarkResponse, error)
	Create(ctx context.Context, p access.Principal, req *dto.CreateBookmarkRequest) (*dto.CreateBookmarkResponse, error)
	Show(ctx context.Context, p access.Principal, id uuid.UUID) (*dto.ShowBookmarkResponse, error)
	Update(ctx context.Context, p access.Principal, req *dto.UpdateBookmarkRequest) (*dto.UpdateBookmarkResponse, error)
	Delete(ctx context.Context, p access.Principal, id uuid.UUID) error
}

type bookmarkService struct {
	uowFactory unitofwork.RepositoryFactory
	evaluator  *access.Evaluator
}

func NewBookmarkService(uowFactory unitofwork.RepositoryFactory, evaluator *access.Evaluator) IBookmarkService {
	return &bookmarkService{
		uowFactory: uowFactory,
		evaluator:  evaluator,
	}
}

func toShowBookmarkResponse(bookmark *entity.Bookmark) *dto.ShowBookmarkResponse {
	return &dto.ShowBookmarkResponse{
		Id:        bookmark.Id,
		Name:      bookmark.Name,
		NoteId:    bookmark.NoteId,
		UserId:    bookmark.UserId,
		CreatedAt: bookmark.CreatedAt,
	}
}

// notebookFilter narrows a bookmark or comment listing to notes of one
// notebook. The ids may be empty, the IN clause then matches nothing.
func notebookFilter(ctx context.Context, uowFactory unitofwork.RepositoryFactory, notebookId uuid.UUID) (specification.Specification, error) {
	uow := uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specification.ByNotebookID{NotebookID: notebookId})
	if err != nil {
		return nil, err
	}
	noteIds := make([]uuid.UUID, 0, len(notes))
	for _, note := range notes {
		noteIds = append(noteIds, note.Id)
	}
	return specification.ByNoteIDs{NoteIDs: noteIds}, nil
}

func (c *bookmarkService) GetAll(ctx context.Context, p access.Principal, notebookId *uuid.UUID) ([]*dto.ShowBookmarkResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs, err := c.evaluator.VisibleSet(ctx, p, access.KindBookmark)
	if err != nil {
		return nil, err
	}

	if notebookId != nil {
		filter, err := notebookFilter(ctx, c.uowFactory, *notebookId)
		if err != nil {
			return nil, err
		}
		specs = append(specs, filter)
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	bookmarks, err := uow.BookmarkRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowBookmarkResponse, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		result = append(result, toShowBookmarkResponse(bookmark))
	}
	return result, nil
}

func (c *bookmarkService) Create(ctx context.Context, p access.Principal, req *dto.CreateBookmarkRequest) (*dto.CreateBookmarkResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.evaluator.VisibleNote(ctx, p, req.NoteId)
	if err != nil {
		return nil, err
	}

	bookmark := entity.Bookmark{
		Id:        uuid.New(),
		Name:      req.Name,
		NoteId:    note.Id,
		UserId:    p.Id,
		CreatedAt: time.Now(),
	}

	if err := uow.BookmarkRepository().Create(ctx, &bookmark); err != nil {
		return nil, err
	}

	return &dto.CreateBookmarkResponse{Id: bookmark.Id}, nil
}

// ownBookmark loads a bookmark within the principal's visible set. Someone
// else's bookmark is indistinguishable from a missing one.
func (c *bookmarkService) ownBookmark(ctx context.Context, p access.Principal, id uuid.UUID) (*entity.Bookmark, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs, err := c.evaluator.VisibleSet(ctx, p, access.KindBookmark)
	if err != nil {
		return nil, err
	}
	specs = append(specs, specification.ByID{ID: id})

	bookmark, err := uow.BookmarkRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if bookmark == nil {
		return nil, apperrors.NotFound("bookmark not found")
	}
	return bookmark, nil
}

func (c *bookmarkService) Show(ctx context.Context, p access.Principal, id uuid.UUID) (*dto.ShowBookmarkResponse, error) {
	bookmark, err := c.ownBookmark(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return toShowBookmarkResponse(bookmark), nil
}

func (c *bookmarkService) Update(ctx context.Context, p access.Principal, req *dto.UpdateBookmarkRequest) (*dto.UpdateBookmarkResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	bookmark, err := c.ownBookmark(ctx, p, req.Id)
	if err != nil {
		return nil, err
	}

	bookmark.Name = req.Name
	if err := uow.BookmarkRepository().Update(ctx, bookmark); err != nil {
		return nil, err
	}

	return &dto.UpdateBookmarkResponse{Id: bookmark.Id}, nil
}

func (c *bookmarkService) Delete(ctx context.Context, p access.Principal, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	bookmark, err := c.ownBookmark(ctx, p, id)
	if err != nil {
		return err
	}

	return uow.BookmarkRepository().Delete(ctx, bookmark.Id)
}
