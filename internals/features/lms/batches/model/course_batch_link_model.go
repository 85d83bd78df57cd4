package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseBatchLinkModel: junction course ↔ batch dengan jendela visibilitas.
// Unik per (course, batch); attach = upsert, detach = hard delete.
type CourseBatchLinkModel struct {
	CourseBatchLinkID       uuid.UUID  `gorm:"column:course_batch_link_id;primaryKey;type:uuid" json:"course_batch_link_id"`
	CourseBatchLinkCourseID uuid.UUID  `gorm:"column:course_batch_link_course_id;type:uuid;not null;uniqueIndex:uq_course_batch_links_course_batch" json:"course_batch_link_course_id"`
	CourseBatchLinkBatchID  uuid.UUID  `gorm:"column:course_batch_link_batch_id;type:uuid;not null;uniqueIndex:uq_course_batch_links_course_batch" json:"course_batch_link_batch_id"`

	// Snapshot subject dari batch saat attach (denormalisasi)
	CourseBatchLinkSubjectID *uuid.UUID `gorm:"column:course_batch_link_subject_id;type:uuid" json:"course_batch_link_subject_id,omitempty"`

	CourseBatchLinkVisibleFrom time.Time  `gorm:"column:course_batch_link_visible_from;not null" json:"course_batch_link_visible_from"`
	CourseBatchLinkVisibleTill *time.Time `gorm:"column:course_batch_link_visible_till" json:"course_batch_link_visible_till,omitempty"`
	CourseBatchLinkIsActive    bool       `gorm:"column:course_batch_link_is_active;default:true" json:"course_batch_link_is_active"`

	CourseBatchLinkCreatedAt time.Time  `gorm:"column:course_batch_link_created_at;autoCreateTime" json:"course_batch_link_created_at"`
	CourseBatchLinkUpdatedAt *time.Time `gorm:"column:course_batch_link_updated_at;autoUpdateTime" json:"course_batch_link_updated_at,omitempty"`
}

func (CourseBatchLinkModel) TableName() string {
	return "course_batch_links"
}

func (m *CourseBatchLinkModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseBatchLinkID == uuid.Nil {
		m.CourseBatchLinkID = uuid.New()
	}
	return nil
}
