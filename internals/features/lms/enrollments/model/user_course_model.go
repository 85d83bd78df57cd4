package model

import (
	"time"

	"github.com/google/uuid"
)

// Model read-only: tabel enrollment dimiliki modul identitas/pembayaran,
// di sini hanya dibaca (precondition akses + floor visibilitas direct).
type UserCourseModel struct {
	UserCourseID         uuid.UUID `gorm:"column:user_course_id;primaryKey;type:uuid" json:"user_course_id"`
	UserCourseUserID     uuid.UUID `gorm:"column:user_course_user_id;type:uuid;not null;index" json:"user_course_user_id"`
	UserCourseCourseID   uuid.UUID `gorm:"column:user_course_course_id;type:uuid;not null;index" json:"user_course_course_id"`
	UserCourseIsActive   bool      `gorm:"column:user_course_is_active;default:true" json:"user_course_is_active"`
	UserCourseEnrolledAt time.Time `gorm:"column:user_course_enrolled_at;not null" json:"user_course_enrolled_at"`
}

func (UserCourseModel) TableName() string {
	return "user_courses"
}

// Jalur legacy: course yang di-unlock manual sebelum sistem enrollment baru.
type CourseUnlockModel struct {
	CourseUnlockID         uuid.UUID `gorm:"column:course_unlock_id;primaryKey;type:uuid" json:"course_unlock_id"`
	CourseUnlockUserID     uuid.UUID `gorm:"column:course_unlock_user_id;type:uuid;not null;index" json:"course_unlock_user_id"`
	CourseUnlockCourseID   uuid.UUID `gorm:"column:course_unlock_course_id;type:uuid;not null;index" json:"course_unlock_course_id"`
	CourseUnlockUnlockedAt time.Time `gorm:"column:course_unlock_unlocked_at;not null" json:"course_unlock_unlocked_at"`
}

func (CourseUnlockModel) TableName() string {
	return "user_course_unlocks"
}
