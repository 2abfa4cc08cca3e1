package service

import (
	"context"

	"conote-be/internal/access"
	"conote-be/internal/dto"
	"conote-be/internal/repository/specification"
	"conote-be/internal/repository/unitofwork"
)

type INotificationService interface {
	GetAll(ctx context.Context, p access.Principal) ([]*dto.ShowNotificationResponse, error)
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
	}
}

// GetAll lists the principal's own notifications, newest first.
func (c *notificationService) GetAll(ctx context.Context, p access.Principal) ([]*dto.ShowNotificationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	notifications, err := uow.NotificationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: p.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowNotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, &dto.ShowNotificationResponse{
			Id:        n.Id,
			Content:   n.Content,
			Type:      string(n.Type),
			Metadata:  n.Metadata,
			CreatedAt: n.CreatedAt,
		})
	}
	return result, nil
}
