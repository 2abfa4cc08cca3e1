package mapper

import (
	"encoding/json"

	"conote-be/internal/entity"
	"conote-be/internal/model"

	"gorm.io/datatypes"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(n.Metadata) > 0 {
		// Malformed metadata is tolerated; the column is informational only.
		_ = json.Unmarshal(n.Metadata, &metadata)
	}

	return &entity.Notification{
		Id:        n.Id,
		UserId:    n.UserId,
		Content:   n.Content,
		Type:      entity.NotificationType(n.Type),
		Metadata:  metadata,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}

	var metadata datatypes.JSON
	if n.Metadata != nil {
		raw, err := json.Marshal(n.Metadata)
		if err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.Notification{
		Id:        n.Id,
		UserId:    n.UserId,
		Content:   n.Content,
		Type:      string(n.Type),
		Metadata:  metadata,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(notifications []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(notifications))
	for i, n := range notifications {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
