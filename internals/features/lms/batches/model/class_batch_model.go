package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassBatchModel struct {
	ClassBatchID        uuid.UUID  `gorm:"column:class_batch_id;primaryKey;type:uuid" json:"class_batch_id"`
	ClassBatchName      string     `gorm:"column:class_batch_name;type:varchar(255);not null" json:"class_batch_name"`
	ClassBatchCourseID  uuid.UUID  `gorm:"column:class_batch_course_id;type:uuid;not null;index" json:"class_batch_course_id"`
	ClassBatchSubjectID *uuid.UUID `gorm:"column:class_batch_subject_id;type:uuid" json:"class_batch_subject_id,omitempty"`

	// 👤 Pengajar (id + snapshot nama)
	ClassBatchTeacherID   *uuid.UUID `gorm:"column:class_batch_teacher_id;type:uuid" json:"class_batch_teacher_id,omitempty"`
	ClassBatchTeacherName *string    `gorm:"column:class_batch_teacher_name;type:varchar(255)" json:"class_batch_teacher_name,omitempty"`

	// Visibilitas & counter denormalisasi (selalu di-recount, bukan increment)
	ClassBatchIsActive      bool `gorm:"column:class_batch_is_active;default:true" json:"class_batch_is_active"`
	ClassBatchTotalSessions int  `gorm:"column:class_batch_total_sessions;default:0" json:"class_batch_total_sessions"`

	// 🕒 Metadata
	ClassBatchCreatedAt time.Time  `gorm:"column:class_batch_created_at;autoCreateTime" json:"class_batch_created_at"`
	ClassBatchUpdatedAt *time.Time `gorm:"column:class_batch_updated_at;autoUpdateTime" json:"class_batch_updated_at,omitempty"`
}

func (ClassBatchModel) TableName() string {
	return "class_batches"
}

func (m *ClassBatchModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassBatchID == uuid.Nil {
		m.ClassBatchID = uuid.New()
	}
	return nil
}
