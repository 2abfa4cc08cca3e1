package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"conote-be/internal/access"
	"conote-be/internal/apperrors"
	"conote-be/internal/dto"
	"conote-be/internal/entity"
	"conote-be/internal/pkg/logger"
	"conote-be/internal/repository/specification"
	"conote-be/internal/repository/unitofwork"
	"conote-be/pkg/events"
	pktNats "conote-be/pkg/nats"

	"github.com/google/uuid"
)

type INotebookService interface {
	GetAll(ctx context.Context, p access.Principal) ([]*dto.ShowNotebookResponse, error)
	Create(ctx context.Context, p access.Principal, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error)
	Show(ctx context.Context, p access.Principal, id uuid.UUID) (*dto.ShowNotebookResponse, error)
	Update(ctx context.Context, p access.Principal, req *dto.UpdateNotebookRequest) (*dto.UpdateNotebookResponse, error)
	Delete(ctx context.Context, p access.Principal, id uuid.UUID) error
	Archive(ctx context.Context, p access.Principal, id uuid.UUID) error
	AssignPerm(ctx context.Context, p access.Principal, req *dto.AssignPermRequest) error
	RemovePerm(ctx context.Context, p access.Principal, req *dto.RemovePermRequest) error
}

type notebookService struct {
	uowFactory     unitofwork.RepositoryFactory
	evaluator      *access.Evaluator
	eventBus       IEventBusService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	evaluator *access.Evaluator,
	eventBus IEventBusService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) INotebookService {
	return &notebookService{
		uowFactory:     uowFactory,
		evaluator:      evaluator,
		eventBus:       eventBus,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func toShowNotebookResponse(notebook *entity.Notebook) *dto.ShowNotebookResponse {
	return &dto.ShowNotebookResponse{
		Id:          notebook.Id,
		Title:       notebook.Title,
		Description: notebook.Description,
		UserId:      notebook.UserId,
		CreatedAt:   notebook.CreatedAt,
		UpdatedAt:   notebook.UpdatedAt,
		ArchivedAt:  notebook.ArchivedAt,
	}
}

func (c *notebookService) GetAll(ctx context.Context, p access.Principal) ([]*dto.ShowNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs, err := c.evaluator.VisibleSet(ctx, p, access.KindNotebook)
	if err != nil {
		return nil, err
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	notebooks, err := uow.NotebookRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowNotebookResponse, 0, len(notebooks))
	for _, notebook := range notebooks {
		result = append(result, toShowNotebookResponse(notebook))
	}
	return result, nil
}

func (c *notebookService) Create(ctx context.Context, p access.Principal, req *dto.CreateNotebookRequest) (*dto.CreateNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook := entity.Notebook{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		UserId:      p.Id,
		CreatedAt:   time.Now(),
	}

	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return nil, err
	}

	return &dto.CreateNotebookResponse{Id: notebook.Id}, nil
}

func (c *notebookService) Show(ctx context.Context, p access.Principal, id uuid.UUID) (*dto.ShowNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs, err := c.evaluator.VisibleSet(ctx, p, access.KindNotebook)
	if err != nil {
		return nil, err
	}
	specs = append(specs, specification.ByID{ID: id})

	notebook, err := uow.NotebookRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperrors.NotFound("notebook not found")
	}
	return toShowNotebookResponse(notebook), nil
}

// ownedNotebook fetches the notebook and enforces owner-only access.
// Outside the visible set it reports NotFound; visible but not owned,
// Forbidden.
func (c *notebookService) ownedNotebook(ctx context.Context, p access.Principal, id uuid.UUID) (*entity.Notebook, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperrors.NotFound("notebook not found")
	}

	if !c.evaluator.CanWrite(p, notebook) {
		canRead, err := c.evaluator.CanRead(ctx, p, notebook)
		if err != nil {
			return nil, err
		}
		if !canRead {
			return nil, apperrors.NotFound("notebook not found")
		}
		return nil, apperrors.Forbidden("only the notebook owner may do this")
	}
	return notebook, nil
}

func (c *notebookService) Update(ctx context.Context, p access.Principal, req *dto.UpdateNotebookRequest) (*dto.UpdateNotebookResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := c.ownedNotebook(ctx, p, req.Id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	notebook.Title = req.Title
	notebook.Description = req.Description
	notebook.UpdatedAt = &now

	if err := uow.NotebookRepository().Update(ctx, notebook); err != nil {
		return nil, err
	}

	return &dto.UpdateNotebookResponse{Id: notebook.Id}, nil
}

func (c *notebookService) Delete(ctx context.Context, p access.Principal, id uuid.UUID) error {
	notebook, err := c.ownedNotebook(ctx, p, id)
	if err != nil {
		return err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx, specification.ByNotebookID{NotebookID: notebook.Id})
	if err != nil {
		return err
	}
	noteIds := make([]uuid.UUID, 0, len(notes))
	for _, note := range notes {
		noteIds = append(noteIds, note.Id)
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.BookmarkRepository().DeleteAllByNoteIds(ctx, noteIds); err != nil {
		return err
	}
	if err := uow.CommentRepository().DeleteAllByNoteIds(ctx, noteIds); err != nil {
		return err
	}
	if err := uow.NoteRepository().DeleteAllByNotebookId(ctx, notebook.Id); err != nil {
		return err
	}
	if err := uow.NotebookGrantRepository().DeleteAllByNotebookId(ctx, notebook.Id); err != nil {
		return err
	}
	if err := uow.NotebookRepository().Delete(ctx, notebook.Id); err != nil {
		return err
	}

	return uow.Commit()
}

func (c *notebookService) Archive(ctx context.Context, p access.Principal, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notebook, err := c.ownedNotebook(ctx, p, id)
	if err != nil {
		return err
	}

	now := time.Now()
	notebook.ArchivedAt = &now
	notebook.UpdatedAt = &now

	return uow.NotebookRepository().Update(ctx, notebook)
}

// createNotification persists one notification row and announces it on the
// bus. Row creation failures abort the request; publish failures are logged
// and swallowed, delivery is best effort.
func (c *notebookService) createNotification(ctx context.Context, userId uuid.UUID, content string, notifType entity.NotificationType) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notification := entity.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   content,
		Type:      notifType,
		CreatedAt: time.Now(),
	}
	if err := uow.NotificationRepository().Create(ctx, &notification); err != nil {
		return err
	}

	payload := dto.NotificationCreatedMessage{
		NotificationId: notification.Id,
		UserId:         notification.UserId,
		Content:        notification.Content,
		Type:           string(notification.Type),
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := c.eventBus.Publish(ctx, TopicNotificationCreated, payloadJson); err != nil {
		c.log.Error("NotebookService", "Failed to publish NOTIFICATION_CREATED", map[string]interface{}{
			"notification_id": notification.Id,
			"error":           err.Error(),
		})
	}

	if c.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: TopicNotificationCreated,
			Data: map[string]interface{}{
				"notification_id": notification.Id.String(),
				"user_id":         notification.UserId.String(),
				"content":         notification.Content,
				"type":            string(notification.Type),
			},
			OccurredAt: time.Now(),
		}
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			c.log.Warn("NotebookService", "Failed to mirror NOTIFICATION_CREATED to NATS", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return nil
}

// targetUser resolves the user a grant is aimed at. An unknown id is an
// invalid reference, not a not-found.
func (c *notebookService) targetUser(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Validation("invalid_user", "invalid user reference")
	}
	return user, nil
}

func (c *notebookService) AssignPerm(ctx context.Context, p access.Principal, req *dto.AssignPermRequest) error {
	notebook, err := c.ownedNotebook(ctx, p, req.Id)
	if err != nil {
		return err
	}

	target, err := c.targetUser(ctx, req.User)
	if err != nil {
		return err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	grant := entity.NotebookGrant{
		Id:         uuid.New(),
		NotebookId: notebook.Id,
		UserId:     target.Id,
		CreatedAt:  time.Now(),
	}
	if err := uow.NotebookGrantRepository().Create(ctx, &grant); err != nil {
		return err
	}

	// Target is notified first, then the acting owner.
	if err := c.createNotification(ctx, target.Id,
		fmt.Sprintf("You have been assigned to a notebook %s", notebook.Title),
		entity.NotificationTypeInfo,
	); err != nil {
		return err
	}
	return c.createNotification(ctx, p.Id,
		fmt.Sprintf("You have assigned a notebook %s to %s", notebook.Title, target.Username),
		entity.NotificationTypeWarning,
	)
}

func (c *notebookService) RemovePerm(ctx context.Context, p access.Principal, req *dto.RemovePermRequest) error {
	notebook, err := c.ownedNotebook(ctx, p, req.Id)
	if err != nil {
		return err
	}

	target, err := c.targetUser(ctx, req.User)
	if err != nil {
		return err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	// Removing an absent grant is a silent no-op, notifications are still
	// written either way.
	if err := uow.NotebookGrantRepository().DeleteAllByPair(ctx, notebook.Id, target.Id); err != nil {
		return err
	}

	if err := c.createNotification(ctx, target.Id,
		fmt.Sprintf("You have been removed from a notebook %s", notebook.Title),
		entity.NotificationTypeInfo,
	); err != nil {
		return err
	}
	return c.createNotification(ctx, p.Id,
		fmt.Sprintf("You have removed a notebook %s from %s", notebook.Title, target.Username),
		entity.NotificationTypeWarning,
	)
}
