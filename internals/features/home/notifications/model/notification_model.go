package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeSessionCreated NotificationType = "session_created"
)

type NotificationPriority string

const (
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// NotificationModel: satu baris per (penerima, sesi pemicu): append-only
// kecuali flag read & timestamp delivery.
type NotificationModel struct {
	NotificationID     uuid.UUID  `gorm:"column:notification_id;primaryKey;type:uuid" json:"notification_id"`
	NotificationUserID uuid.UUID  `gorm:"column:notification_user_id;type:uuid;not null;index;uniqueIndex:uq_notifications_user_session" json:"notification_user_id"`

	// Sesi pemicu: kunci dedup fan-out
	NotificationSessionID *uuid.UUID `gorm:"column:notification_session_id;type:uuid;uniqueIndex:uq_notifications_user_session" json:"notification_session_id,omitempty"`

	NotificationType    NotificationType `gorm:"column:notification_type;type:varchar(50);not null" json:"notification_type"`
	NotificationTitle   string           `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationMessage string           `gorm:"column:notification_message;type:text" json:"notification_message"`
	NotificationData    datatypes.JSON   `gorm:"column:notification_data;type:jsonb" json:"notification_data,omitempty"`

	NotificationIsRead bool `gorm:"column:notification_is_read;default:false" json:"notification_is_read"`

	// Channel flags + waktu terkirim per channel
	NotificationInAppEnabled bool       `gorm:"column:notification_in_app_enabled;default:true" json:"notification_in_app_enabled"`
	NotificationEmailEnabled bool       `gorm:"column:notification_email_enabled;default:false" json:"notification_email_enabled"`
	NotificationInAppSentAt  *time.Time `gorm:"column:notification_in_app_sent_at" json:"notification_in_app_sent_at,omitempty"`
	NotificationEmailSentAt  *time.Time `gorm:"column:notification_email_sent_at" json:"notification_email_sent_at,omitempty"`

	NotificationPriority  NotificationPriority `gorm:"column:notification_priority;type:varchar(20);default:'normal'" json:"notification_priority"`
	NotificationExpiresAt *time.Time           `gorm:"column:notification_expires_at" json:"notification_expires_at,omitempty"`

	NotificationCreatedAt time.Time  `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt *time.Time `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at,omitempty"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	return nil
}
