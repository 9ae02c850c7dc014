package converter

import (
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
)

// NotificationToResponse converts a Notification entity to its DTO
func NotificationToResponse(notification *entity.Notification) *dto.NotificationResponse {
	if notification == nil {
		return nil
	}

	return &dto.NotificationResponse{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Type:      notification.Type,
		Message:   notification.Message,
		LinkURL:   notification.LinkURL,
		Metadata:  notification.Metadata,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}

// NotificationsToResponses converts a slice of Notification entities
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i, notification := range notifications {
		resp := NotificationToResponse(&notification)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
