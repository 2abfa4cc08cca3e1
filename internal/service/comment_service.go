package service

import (
	"context"
	"encoding/json"
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

type ICommentService interface {
	GetAll(ctx context.Context, p access.Principal, notebookId *uuid.UUID) ([]*dto.ShowCommentResponse, error)
	Create(ctx context.Context, p access.Principal, req *dto.CreateCommentRequest) (*dto.CreateCommentResponse, error)
	Show(ctx context.Context, p access.Principal, id uuid.UUID) (*dto.ShowCommentResponse, error)
	Update(ctx context.Context, p access.Principal, req *dto.UpdateCommentRequest) (*dto.UpdateCommentResponse, error)
	Delete(ctx context.Context, p access.Principal, id uuid.UUID) error
}

type commentService struct {
	uowFactory     unitofwork.RepositoryFactory
	evaluator      *access.Evaluator
	eventBus       IEventBusService
	eventPublisher *pktNats.Publisher
	instanceId     string
	log            logger.ILogger
}

func NewCommentService(
	uowFactory unitofwork.RepositoryFactory,
	evaluator *access.Evaluator,
	eventBus IEventBusService,
	eventPublisher *pktNats.Publisher,
	instanceId string,
	log logger.ILogger,
) ICommentService {
	return &commentService{
		uowFactory:     uowFactory,
		evaluator:      evaluator,
		eventBus:       eventBus,
		eventPublisher: eventPublisher,
		instanceId:     instanceId,
		log:            log,
	}
}

func toShowCommentResponse(comment *entity.Comment) *dto.ShowCommentResponse {
	return &dto.ShowCommentResponse{
		Id:        comment.Id,
		Content:   comment.Content,
		NoteId:    comment.NoteId,
		UserId:    comment.UserId,
		CreatedAt: comment.CreatedAt,
	}
}

func (c *commentService) GetAll(ctx context.Context, p access.Principal, notebookId *uuid.UUID) ([]*dto.ShowCommentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs, err := c.evaluator.VisibleSet(ctx, p, access.KindComment)
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

	comments, err := uow.CommentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowCommentResponse, 0, len(comments))
	for _, comment := range comments {
		result = append(result, toShowCommentResponse(comment))
	}
	return result, nil
}

func (c *commentService) Create(ctx context.Context, p access.Principal, req *dto.CreateCommentRequest) (*dto.CreateCommentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := c.evaluator.VisibleNote(ctx, p, req.NoteId)
	if err != nil {
		return nil, err
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: note.NotebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperrors.Validation("invalid_note", "invalid note reference")
	}

	comment := entity.Comment{
		Id:        uuid.New(),
		Content:   req.Content,
		NoteId:    note.Id,
		UserId:    p.Id,
		CreatedAt: time.Now(),
	}

	if err := uow.CommentRepository().Create(ctx, &comment); err != nil {
		return nil, err
	}

	// Announce the comment to the notebook owner's live connections.
	// Comments never create notification rows.
	payload := dto.CommentCreatedMessage{
		CommentId:       comment.Id,
		NotebookOwnerId: notebook.UserId,
		Commenter:       p.Username,
		NoteTitle:       note.Title,
		OriginInstance:  c.instanceId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	if err := c.eventBus.Publish(ctx, TopicCommentCreated, payloadJson); err != nil {
		c.log.Error("CommentService", "Failed to publish COMMENT_CREATED", map[string]interface{}{
			"comment_id": comment.Id,
			"error":      err.Error(),
		})
	}

	if c.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: TopicCommentCreated,
			Data: map[string]interface{}{
				"comment_id":        comment.Id.String(),
				"notebook_owner_id": notebook.UserId.String(),
				"commenter":         p.Username,
				"note_title":        note.Title,
			},
			OccurredAt: time.Now(),
		}
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			c.log.Warn("CommentService", "Failed to mirror COMMENT_CREATED to NATS", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.CreateCommentResponse{Id: comment.Id}, nil
}

func (c *commentService) ownComment(ctx context.Context, p access.Principal, id uuid.UUID) (*entity.Comment, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs, err := c.evaluator.VisibleSet(ctx, p, access.KindComment)
	if err != nil {
		return nil, err
	}
	specs = append(specs, specification.ByID{ID: id})

	comment, err := uow.CommentRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, apperrors.NotFound("comment not found")
	}
	return comment, nil
}

func (c *commentService) Show(ctx context.Context, p access.Principal, id uuid.UUID) (*dto.ShowCommentResponse, error) {
	comment, err := c.ownComment(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return toShowCommentResponse(comment), nil
}

func (c *commentService) Update(ctx context.Context, p access.Principal, req *dto.UpdateCommentRequest) (*dto.UpdateCommentResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	comment, err := c.ownComment(ctx, p, req.Id)
	if err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := uow.CommentRepository().Update(ctx, comment); err != nil {
		return nil, err
	}

	return &dto.UpdateCommentResponse{Id: comment.Id}, nil
}

func (c *commentService) Delete(ctx context.Context, p access.Principal, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	comment, err := c.ownComment(ctx, p, id)
	if err != nil {
		return err
	}

	return uow.CommentRepository().Delete(ctx, comment.Id)
}
