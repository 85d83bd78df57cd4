// file: internals/features/lms/sessions/dto/class_session_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"

	model "kelasku_backend/internals/features/lms/sessions/model"
	"kelasku_backend/internals/helpers/dbtime"
)

/* ===============================
   Request
=================================*/

type CreateClassSessionRequest struct {
	ClassSessionBatchID uuid.UUID `json:"class_session_batch_id" validate:"required"`
	ClassSessionTopic   string    `json:"class_session_topic" validate:"required,min=3,max=255"`

	// "YYYY-MM-DD" + "HH:MM[:SS]": start & end dua-duanya wajib
	ClassSessionDate      string `json:"class_session_date" validate:"required"`
	ClassSessionStartTime string `json:"class_session_start_time" validate:"required"`
	ClassSessionEndTime   string `json:"class_session_end_time" validate:"required"`

	ClassSessionPlatform        string   `json:"class_session_platform" validate:"omitempty,max=50"`
	ClassSessionMeetingLink     *string  `json:"class_session_meeting_link,omitempty" validate:"omitempty,url"`
	ClassSessionMeetingID       *string  `json:"class_session_meeting_id,omitempty" validate:"omitempty,max=100"`
	ClassSessionMeetingPassword *string  `json:"class_session_meeting_password,omitempty" validate:"omitempty,max=100"`
	ClassSessionNotes           *string  `json:"class_session_notes,omitempty"`
	ClassSessionMaterials       []string `json:"class_session_materials,omitempty"`

	// true → jangan fan-out notifikasi (mis. backfill/impor)
	SuppressNotification bool `json:"suppress_notification"`
}

// ToModel parse tanggal & jam lalu hitung durasi. Validasi urutan waktu di sini
// supaya semua caller dapat pesan yang sama.
func (r *CreateClassSessionRequest) ToModel() (*model.ClassSessionModel, error) {
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(r.ClassSessionDate), time.Local)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Format class_session_date harus YYYY-MM-DD")
	}
	start, err := dbtime.Parse(r.ClassSessionStartTime)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Format class_session_start_time harus HH:MM")
	}
	end, err := dbtime.Parse(r.ClassSessionEndTime)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Format class_session_end_time harus HH:MM")
	}
	if !end.OnDate(date).After(start.OnDate(date)) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "class_session_end_time harus setelah class_session_start_time")
	}

	platform := strings.TrimSpace(r.ClassSessionPlatform)
	if platform == "" {
		platform = "zoom"
	}

	return &model.ClassSessionModel{
		ClassSessionBatchID:         r.ClassSessionBatchID,
		ClassSessionTopic:           strings.TrimSpace(r.ClassSessionTopic),
		ClassSessionDate:            dbtime.StartOfDay(date),
		ClassSessionStartTime:       start,
		ClassSessionEndTime:         end,
		ClassSessionDurationMinutes: int(end.OnDate(date).Sub(start.OnDate(date)).Minutes()),
		ClassSessionPlatform:        platform,
		ClassSessionMeetingLink:     r.ClassSessionMeetingLink,
		ClassSessionMeetingID:       r.ClassSessionMeetingID,
		ClassSessionMeetingPassword: r.ClassSessionMeetingPassword,
		ClassSessionNotes:           r.ClassSessionNotes,
		ClassSessionMaterials:       pq.StringArray(r.ClassSessionMaterials),
	}, nil
}

type UpdateClassSessionRequest struct {
	ClassSessionTopic           *string  `json:"class_session_topic,omitempty" validate:"omitempty,min=3,max=255"`
	ClassSessionDate            *string  `json:"class_session_date,omitempty"`
	ClassSessionStartTime       *string  `json:"class_session_start_time,omitempty"`
	ClassSessionEndTime         *string  `json:"class_session_end_time,omitempty"`
	ClassSessionPlatform        *string  `json:"class_session_platform,omitempty" validate:"omitempty,max=50"`
	ClassSessionMeetingLink     *string  `json:"class_session_meeting_link,omitempty" validate:"omitempty,url"`
	ClassSessionMeetingID       *string  `json:"class_session_meeting_id,omitempty" validate:"omitempty,max=100"`
	ClassSessionMeetingPassword *string  `json:"class_session_meeting_password,omitempty" validate:"omitempty,max=100"`
	ClassSessionRecordingURL    *string  `json:"class_session_recording_url,omitempty" validate:"omitempty,url"`
	ClassSessionNotes           *string  `json:"class_session_notes,omitempty"`
	ClassSessionMaterials       []string `json:"class_session_materials,omitempty"`
	ClassSessionAttendanceCount *int     `json:"class_session_attendance_count,omitempty" validate:"omitempty,min=0"`
}

// ApplyTo menimpa field yang dikirim; waktu di-validate ulang gabungannya.
func (r *UpdateClassSessionRequest) ApplyTo(m *model.ClassSessionModel) error {
	if r.ClassSessionTopic != nil {
		m.ClassSessionTopic = strings.TrimSpace(*r.ClassSessionTopic)
	}
	if r.ClassSessionDate != nil {
		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(*r.ClassSessionDate), time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Format class_session_date harus YYYY-MM-DD")
		}
		m.ClassSessionDate = dbtime.StartOfDay(date)
	}
	if r.ClassSessionStartTime != nil {
		start, err := dbtime.Parse(*r.ClassSessionStartTime)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Format class_session_start_time harus HH:MM")
		}
		m.ClassSessionStartTime = start
	}
	if r.ClassSessionEndTime != nil {
		end, err := dbtime.Parse(*r.ClassSessionEndTime)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Format class_session_end_time harus HH:MM")
		}
		m.ClassSessionEndTime = end
	}
	if !m.EndAt().After(m.StartAt()) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "class_session_end_time harus setelah class_session_start_time")
	}
	m.ClassSessionDurationMinutes = int(m.EndAt().Sub(m.StartAt()).Minutes())

	if r.ClassSessionPlatform != nil {
		m.ClassSessionPlatform = strings.TrimSpace(*r.ClassSessionPlatform)
	}
	if r.ClassSessionMeetingLink != nil {
		m.ClassSessionMeetingLink = r.ClassSessionMeetingLink
	}
	if r.ClassSessionMeetingID != nil {
		m.ClassSessionMeetingID = r.ClassSessionMeetingID
	}
	if r.ClassSessionMeetingPassword != nil {
		m.ClassSessionMeetingPassword = r.ClassSessionMeetingPassword
	}
	if r.ClassSessionRecordingURL != nil {
		m.ClassSessionRecordingURL = r.ClassSessionRecordingURL
	}
	if r.ClassSessionNotes != nil {
		m.ClassSessionNotes = r.ClassSessionNotes
	}
	if r.ClassSessionMaterials != nil {
		m.ClassSessionMaterials = pq.StringArray(r.ClassSessionMaterials)
	}
	if r.ClassSessionAttendanceCount != nil {
		m.ClassSessionAttendanceCount = *r.ClassSessionAttendanceCount
	}
	return nil
}

/* ===============================
   Response
=================================*/

type ClassSessionResponse struct {
	ClassSessionID              uuid.UUID                `json:"class_session_id"`
	ClassSessionBatchID         uuid.UUID                `json:"class_session_batch_id"`
	ClassSessionSequence        int                      `json:"class_session_sequence"`
	ClassSessionTopic           string                   `json:"class_session_topic"`
	ClassSessionDate            string                   `json:"class_session_date"`
	ClassSessionStartTime       dbtime.Tod               `json:"class_session_start_time"`
	ClassSessionEndTime         dbtime.Tod               `json:"class_session_end_time"`
	ClassSessionDurationMinutes int                      `json:"class_session_duration_minutes"`
	ClassSessionPlatform        string                   `json:"class_session_platform"`
	ClassSessionMeetingLink     *string                  `json:"class_session_meeting_link,omitempty"`
	ClassSessionMeetingID       *string                  `json:"class_session_meeting_id,omitempty"`
	ClassSessionMeetingPassword *string                  `json:"class_session_meeting_password,omitempty"`
	ClassSessionRecordingURL    *string                  `json:"class_session_recording_url,omitempty"`
	ClassSessionNotes           *string                  `json:"class_session_notes,omitempty"`
	ClassSessionMaterials       []string                 `json:"class_session_materials,omitempty"`
	ClassSessionStatus          model.ClassSessionStatus `json:"class_session_status"`
	ClassSessionAttendanceCount int                      `json:"class_session_attendance_count"`
}

func ToClassSessionResponse(m *model.ClassSessionModel) ClassSessionResponse {
	return ClassSessionResponse{
		ClassSessionID:              m.ClassSessionID,
		ClassSessionBatchID:         m.ClassSessionBatchID,
		ClassSessionSequence:        m.ClassSessionSequence,
		ClassSessionTopic:           m.ClassSessionTopic,
		ClassSessionDate:            m.ClassSessionDate.Format("2006-01-02"),
		ClassSessionStartTime:       m.ClassSessionStartTime,
		ClassSessionEndTime:         m.ClassSessionEndTime,
		ClassSessionDurationMinutes: m.ClassSessionDurationMinutes,
		ClassSessionPlatform:        m.ClassSessionPlatform,
		ClassSessionMeetingLink:     m.ClassSessionMeetingLink,
		ClassSessionMeetingID:       m.ClassSessionMeetingID,
		ClassSessionMeetingPassword: m.ClassSessionMeetingPassword,
		ClassSessionRecordingURL:    m.ClassSessionRecordingURL,
		ClassSessionNotes:           m.ClassSessionNotes,
		ClassSessionMaterials:       []string(m.ClassSessionMaterials),
		ClassSessionStatus:          m.ClassSessionStatus,
		ClassSessionAttendanceCount: m.ClassSessionAttendanceCount,
	}
}

func ToClassSessionResponseList(ms []model.ClassSessionModel) []ClassSessionResponse {
	out := make([]ClassSessionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToClassSessionResponse(&ms[i]))
	}
	return out
}
