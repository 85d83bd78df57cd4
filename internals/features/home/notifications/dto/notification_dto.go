// file: internals/features/home/notifications/dto/notification_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "kelasku_backend/internals/features/home/notifications/model"
)

type NotificationResponse struct {
	NotificationID        uuid.UUID                  `json:"notification_id"`
	NotificationUserID    uuid.UUID                  `json:"notification_user_id"`
	NotificationSessionID *uuid.UUID                 `json:"notification_session_id,omitempty"`
	NotificationType      model.NotificationType     `json:"notification_type"`
	NotificationTitle     string                     `json:"notification_title"`
	NotificationMessage   string                     `json:"notification_message"`
	NotificationData      datatypes.JSON             `json:"notification_data,omitempty"`
	NotificationIsRead    bool                       `json:"notification_is_read"`
	NotificationPriority  model.NotificationPriority `json:"notification_priority"`
	NotificationEmailSent bool                       `json:"notification_email_sent"`
	NotificationExpiresAt *time.Time                 `json:"notification_expires_at,omitempty"`
	NotificationCreatedAt time.Time                  `json:"notification_created_at"`
}

func ToNotificationResponse(m *model.NotificationModel) NotificationResponse {
	return NotificationResponse{
		NotificationID:        m.NotificationID,
		NotificationUserID:    m.NotificationUserID,
		NotificationSessionID: m.NotificationSessionID,
		NotificationType:      m.NotificationType,
		NotificationTitle:     m.NotificationTitle,
		NotificationMessage:   m.NotificationMessage,
		NotificationData:      m.NotificationData,
		NotificationIsRead:    m.NotificationIsRead,
		NotificationPriority:  m.NotificationPriority,
		NotificationEmailSent: m.NotificationEmailSentAt != nil,
		NotificationExpiresAt: m.NotificationExpiresAt,
		NotificationCreatedAt: m.NotificationCreatedAt,
	}
}

func ToNotificationResponseList(ms []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToNotificationResponse(&ms[i]))
	}
	return out
}
