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

type INoteService interface {
	GetAll(ctx context.Context, p access.Principal, notebookId *uuid.UUID) ([]*dto.ShowNoteResponse, error)
	Create(ctx context.Context, p access.Principal, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, p access.Principal, id uuid.UUID) (*dto.ShowNoteResponse, error)
	Update(ctx context.Context, p access.Principal, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, p access.Principal, id uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	evaluator  *access.Evaluator
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, evaluator *access.Evaluator) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		evaluator:  evaluator,
	}
}

func toShowNoteResponse(note *entity.Note) *dto.ShowNoteResponse {
	return &dto.ShowNoteResponse{
		Id:         note.Id,
		Title:      note.Title,
		Content:    note.Content,
		Placement:  note.Placement,
		NotebookId: note.NotebookId,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

// GetAll lists the notes of one notebook. The notebook filter is mandatory,
// listing across all notebooks is not offered.
func (c *noteService) GetAll(ctx context.Context, p access.Principal, notebookId *uuid.UUID) ([]*dto.ShowNoteResponse, error) {
	if notebookId == nil {
		return nil, apperrors.Validation("notebook_required", "notebook is required")
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: *notebookId})
	if err != nil {
		return nil, err
	}
	// An unknown id answers the same as an inaccessible one, a 403 in both
	// cases, so the response never confirms whether the notebook exists.
	if notebook == nil {
		return nil, apperrors.Forbidden("you do not have permission to access this notebook")
	}

	canRead, err := c.evaluator.CanRead(ctx, p, notebook)
	if err != nil {
		return nil, err
	}
	if !canRead {
		return nil, apperrors.Forbidden("you do not have permission to access this notebook")
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebook.Id},
		specification.OrderBy{Field: "placement"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowNoteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, toShowNoteResponse(note))
	}
	return result, nil
}

func (c *noteService) Create(ctx context.Context, p access.Principal, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Notes can only be filed into the principal's own notebooks; a grant
	// gives read access, never write.
	notebook, err := c.evaluator.OwnNotebook(ctx, p, req.NotebookId)
	if err != nil {
		return nil, err
	}

	note := entity.Note{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		Placement:  req.Placement,
		NotebookId: notebook.Id,
		CreatedAt:  time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	return &dto.CreateNoteResponse{Id: note.Id}, nil
}

func (c *noteService) Show(ctx context.Context, p access.Principal, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs, err := c.evaluator.VisibleSet(ctx, p, access.KindNote)
	if err != nil {
		return nil, err
	}
	specs = append(specs, specification.ByID{ID: id})

	note, err := uow.NoteRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.NotFound("note not found")
	}
	return toShowNoteResponse(note), nil
}

// mutableNote loads a note the principal may modify: the note's notebook
// must be owned. Invisible notes report NotFound, visible but merely
// granted ones Forbidden.
func (c *noteService) mutableNote(ctx context.Context, p access.Principal, id uuid.UUID) (*entity.Note, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs, err := c.evaluator.VisibleSet(ctx, p, access.KindNote)
	if err != nil {
		return nil, err
	}
	specs = append(specs, specification.ByID{ID: id})

	note, err := uow.NoteRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.NotFound("note not found")
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: note.NotebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil || !c.evaluator.CanWrite(p, notebook) {
		return nil, apperrors.Forbidden("only the notebook owner may modify its notes")
	}
	return note, nil
}

func (c *noteService) Update(ctx context.Context, p access.Principal, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.mutableNote(ctx, p, req.Id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note.Title = req.Title
	note.Content = req.Content
	note.Placement = req.Placement
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return &dto.UpdateNoteResponse{Id: note.Id}, nil
}

func (c *noteService) Delete(ctx context.Context, p access.Principal, id uuid.UUID) error {
	note, err := c.mutableNote(ctx, p, id)
	if err != nil {
		return err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	noteIds := []uuid.UUID{note.Id}
	if err := uow.BookmarkRepository().DeleteAllByNoteIds(ctx, noteIds); err != nil {
		return err
	}
	if err := uow.CommentRepository().DeleteAllByNoteIds(ctx, noteIds); err != nil {
		return err
	}
	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return err
	}

	return uow.Commit()
}
