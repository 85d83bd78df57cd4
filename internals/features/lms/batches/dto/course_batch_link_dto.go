// file: internals/features/lms/batches/dto/course_batch_link_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/lms/batches/model"
)

// AttachBatchRequest: upsert link course↔batch (idempotent per pasangan).
type AttachBatchRequest struct {
	CourseBatchLinkCourseID    uuid.UUID  `json:"course_batch_link_course_id" validate:"required"`
	CourseBatchLinkBatchID     uuid.UUID  `json:"course_batch_link_batch_id" validate:"required"`
	CourseBatchLinkVisibleFrom time.Time  `json:"course_batch_link_visible_from" validate:"required"`
	CourseBatchLinkVisibleTill *time.Time `json:"course_batch_link_visible_till,omitempty"`
}

type DetachBatchRequest struct {
	CourseBatchLinkCourseID uuid.UUID `json:"course_batch_link_course_id" validate:"required"`
	CourseBatchLinkBatchID  uuid.UUID `json:"course_batch_link_batch_id" validate:"required"`
}

type CourseBatchLinkResponse struct {
	CourseBatchLinkID          uuid.UUID  `json:"course_batch_link_id"`
	CourseBatchLinkCourseID    uuid.UUID  `json:"course_batch_link_course_id"`
	CourseBatchLinkBatchID     uuid.UUID  `json:"course_batch_link_batch_id"`
	CourseBatchLinkSubjectID   *uuid.UUID `json:"course_batch_link_subject_id,omitempty"`
	CourseBatchLinkVisibleFrom time.Time  `json:"course_batch_link_visible_from"`
	CourseBatchLinkVisibleTill *time.Time `json:"course_batch_link_visible_till,omitempty"`
	CourseBatchLinkIsActive    bool       `json:"course_batch_link_is_active"`
}

func ToCourseBatchLinkResponse(m *model.CourseBatchLinkModel) CourseBatchLinkResponse {
	return CourseBatchLinkResponse{
		CourseBatchLinkID:          m.CourseBatchLinkID,
		CourseBatchLinkCourseID:    m.CourseBatchLinkCourseID,
		CourseBatchLinkBatchID:     m.CourseBatchLinkBatchID,
		CourseBatchLinkSubjectID:   m.CourseBatchLinkSubjectID,
		CourseBatchLinkVisibleFrom: m.CourseBatchLinkVisibleFrom,
		CourseBatchLinkVisibleTill: m.CourseBatchLinkVisibleTill,
		CourseBatchLinkIsActive:    m.CourseBatchLinkIsActive,
	}
}

func ToCourseBatchLinkResponseList(ms []model.CourseBatchLinkModel) []CourseBatchLinkResponse {
	out := make([]CourseBatchLinkResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToCourseBatchLinkResponse(&ms[i]))
	}
	return out
}
