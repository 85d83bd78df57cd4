// file: internals/features/lms/batches/dto/class_batch_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/lms/batches/model"
)

/* ===============================
   Request
=================================*/

type CreateClassBatchRequest struct {
	ClassBatchName        string     `json:"class_batch_name" validate:"required,min=3,max=255"`
	ClassBatchCourseID    uuid.UUID  `json:"class_batch_course_id" validate:"required"`
	ClassBatchSubjectID   *uuid.UUID `json:"class_batch_subject_id,omitempty"`
	ClassBatchTeacherID   *uuid.UUID `json:"class_batch_teacher_id,omitempty"`
	ClassBatchTeacherName *string    `json:"class_batch_teacher_name,omitempty" validate:"omitempty,max=255"`
}

func (r *CreateClassBatchRequest) Normalize() {
	r.ClassBatchName = strings.TrimSpace(r.ClassBatchName)
	if r.ClassBatchTeacherName != nil {
		v := strings.TrimSpace(*r.ClassBatchTeacherName)
		if v == "" {
			r.ClassBatchTeacherName = nil
		} else {
			r.ClassBatchTeacherName = &v
		}
	}
}

func (r *CreateClassBatchRequest) ToModel() *model.ClassBatchModel {
	return &model.ClassBatchModel{
		ClassBatchName:        r.ClassBatchName,
		ClassBatchCourseID:    r.ClassBatchCourseID,
		ClassBatchSubjectID:   r.ClassBatchSubjectID,
		ClassBatchTeacherID:   r.ClassBatchTeacherID,
		ClassBatchTeacherName: r.ClassBatchTeacherName,
		ClassBatchIsActive:    true,
	}
}

type UpdateClassBatchRequest struct {
	ClassBatchName        *string    `json:"class_batch_name,omitempty" validate:"omitempty,min=3,max=255"`
	ClassBatchSubjectID   *uuid.UUID `json:"class_batch_subject_id,omitempty"`
	ClassBatchTeacherID   *uuid.UUID `json:"class_batch_teacher_id,omitempty"`
	ClassBatchTeacherName *string    `json:"class_batch_teacher_name,omitempty" validate:"omitempty,max=255"`
	ClassBatchIsActive    *bool      `json:"class_batch_is_active,omitempty"`
}

// ApplyTo menimpa field yang dikirim saja (partial update).
func (r *UpdateClassBatchRequest) ApplyTo(m *model.ClassBatchModel) {
	if r.ClassBatchName != nil {
		m.ClassBatchName = strings.TrimSpace(*r.ClassBatchName)
	}
	if r.ClassBatchSubjectID != nil {
		m.ClassBatchSubjectID = r.ClassBatchSubjectID
	}
	if r.ClassBatchTeacherID != nil {
		m.ClassBatchTeacherID = r.ClassBatchTeacherID
	}
	if r.ClassBatchTeacherName != nil {
		m.ClassBatchTeacherName = r.ClassBatchTeacherName
	}
	if r.ClassBatchIsActive != nil {
		m.ClassBatchIsActive = *r.ClassBatchIsActive
	}
}

/* ===============================
   Response
=================================*/

type ClassBatchResponse struct {
	ClassBatchID            uuid.UUID  `json:"class_batch_id"`
	ClassBatchName          string     `json:"class_batch_name"`
	ClassBatchCourseID      uuid.UUID  `json:"class_batch_course_id"`
	ClassBatchSubjectID     *uuid.UUID `json:"class_batch_subject_id,omitempty"`
	ClassBatchTeacherID     *uuid.UUID `json:"class_batch_teacher_id,omitempty"`
	ClassBatchTeacherName   *string    `json:"class_batch_teacher_name,omitempty"`
	ClassBatchIsActive      bool       `json:"class_batch_is_active"`
	ClassBatchTotalSessions int        `json:"class_batch_total_sessions"`
	ClassBatchCreatedAt     time.Time  `json:"class_batch_created_at"`
}

func ToClassBatchResponse(m *model.ClassBatchModel) ClassBatchResponse {
	return ClassBatchResponse{
		ClassBatchID:            m.ClassBatchID,
		ClassBatchName:          m.ClassBatchName,
		ClassBatchCourseID:      m.ClassBatchCourseID,
		ClassBatchSubjectID:     m.ClassBatchSubjectID,
		ClassBatchTeacherID:     m.ClassBatchTeacherID,
		ClassBatchTeacherName:   m.ClassBatchTeacherName,
		ClassBatchIsActive:      m.ClassBatchIsActive,
		ClassBatchTotalSessions: m.ClassBatchTotalSessions,
		ClassBatchCreatedAt:     m.ClassBatchCreatedAt,
	}
}

func ToClassBatchResponseList(ms []model.ClassBatchModel) []ClassBatchResponse {
	out := make([]ClassBatchResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToClassBatchResponse(&ms[i]))
	}
	return out
}
