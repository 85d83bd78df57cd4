// file: internals/features/lms/enrollments/service/enrollment_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "kelasku_backend/internals/features/lms/enrollments/model"
)

// EnrollmentService membungkus akses read-only ke data enrollment/identitas.
// Kontrak: isEnrolled(user, course) → {active, enrolledAt}; resolveUser → {email, name}.
type EnrollmentService struct{ DB *gorm.DB }

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

type EnrollmentInfo struct {
	Active     bool
	EnrolledAt time.Time
	Legacy     bool // true jika akses lewat unlock lama, bukan enrollment aktif
}

type UserContact struct {
	Email string
	Name  string
}

// IsEnrolled mengecek enrollment aktif dulu, lalu fallback ke unlock legacy.
// Tidak ditemukan dua-duanya → Active=false (bukan error).
func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (EnrollmentInfo, error) {
	var uc model.UserCourseModel
	err := s.DB.WithContext(ctx).
		Where("user_course_user_id = ? AND user_course_course_id = ? AND user_course_is_active = TRUE", userID, courseID).
		Take(&uc).Error
	if err == nil {
		return EnrollmentInfo{Active: true, EnrolledAt: uc.UserCourseEnrolledAt}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EnrollmentInfo{}, err
	}

	var cu model.CourseUnlockModel
	err = s.DB.WithContext(ctx).
		Where("course_unlock_user_id = ? AND course_unlock_course_id = ?", userID, courseID).
		Take(&cu).Error
	if err == nil {
		return EnrollmentInfo{Active: true, EnrolledAt: cu.CourseUnlockUnlockedAt, Legacy: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EnrollmentInfo{}, err
	}
	return EnrollmentInfo{}, nil
}

// ActiveUserIDsByCourse: semua user dengan enrollment aktif pada satu course.
func (s *EnrollmentService) ActiveUserIDsByCourse(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).
		Model(&model.UserCourseModel{}).
		Where("user_course_course_id = ? AND user_course_is_active = TRUE", courseID).
		Pluck("user_course_user_id", &ids).Error
	return ids, err
}

// ResolveUser mengambil email & nama dari direktori user.
func (s *EnrollmentService) ResolveUser(ctx context.Context, userID uuid.UUID) (UserContact, error) {
	var u model.UserModel
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&u).Error; err != nil {
		return UserContact{}, err
	}
	return UserContact{Email: u.UserEmail, Name: u.UserName}, nil
}

// CourseTitle: judul course untuk payload/email notifikasi.
func (s *EnrollmentService) CourseTitle(ctx context.Context, courseID uuid.UUID) (string, error) {
	var course model.CourseModel
	if err := s.DB.WithContext(ctx).
		Where("course_id = ?", courseID).
		Take(&course).Error; err != nil {
		return "", err
	}
	return course.CourseTitle, nil
}
