package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"kelasku_backend/internals/helpers/dbtime"
)

type ClassSessionStatus string

const (
	ClassSessionStatusScheduled ClassSessionStatus = "scheduled"
	ClassSessionStatusLive      ClassSessionStatus = "live"
	ClassSessionStatusCompleted ClassSessionStatus = "completed"
	ClassSessionStatusCancelled ClassSessionStatus = "cancelled" // terminal, tidak pernah di-recompute
)

type ClassSessionModel struct {
	ClassSessionID       uuid.UUID `gorm:"column:class_session_id;primaryKey;type:uuid" json:"class_session_id"`
	ClassSessionBatchID  uuid.UUID `gorm:"column:class_session_batch_id;type:uuid;not null;index" json:"class_session_batch_id"`
	ClassSessionSequence int       `gorm:"column:class_session_sequence;not null" json:"class_session_sequence"` // urutan advisory, bukan unique key
	ClassSessionTopic    string    `gorm:"column:class_session_topic;type:varchar(255);not null" json:"class_session_topic"`

	// ⏰ Jadwal: tanggal + jam mulai/selesai (TIME)
	ClassSessionDate            time.Time  `gorm:"column:class_session_date;type:date;not null" json:"class_session_date"`
	ClassSessionStartTime       dbtime.Tod `gorm:"column:class_session_start_time;type:time;not null" json:"class_session_start_time"`
	ClassSessionEndTime         dbtime.Tod `gorm:"column:class_session_end_time;type:time;not null" json:"class_session_end_time"`
	ClassSessionDurationMinutes int        `gorm:"column:class_session_duration_minutes" json:"class_session_duration_minutes"`

	// 🔗 Meeting
	ClassSessionPlatform        string  `gorm:"column:class_session_platform;type:varchar(50);default:'zoom'" json:"class_session_platform"`
	ClassSessionMeetingLink     *string `gorm:"column:class_session_meeting_link;type:text" json:"class_session_meeting_link,omitempty"`
	ClassSessionMeetingID       *string `gorm:"column:class_session_meeting_id;type:varchar(100)" json:"class_session_meeting_id,omitempty"`
	ClassSessionMeetingPassword *string `gorm:"column:class_session_meeting_password;type:varchar(100)" json:"class_session_meeting_password,omitempty"`
	ClassSessionRecordingURL    *string `gorm:"column:class_session_recording_url;type:text" json:"class_session_recording_url,omitempty"`

	ClassSessionNotes     *string        `gorm:"column:class_session_notes;type:text" json:"class_session_notes,omitempty"`
	ClassSessionMaterials pq.StringArray `gorm:"column:class_session_materials;type:text[]" json:"class_session_materials,omitempty"`

	// Status adalah cache dari fungsi murni waktu; pembaca hanya boleh
	// mempercayainya untuk filter 'cancelled'.
	ClassSessionStatus          ClassSessionStatus `gorm:"column:class_session_status;type:varchar(20);not null;default:'scheduled'" json:"class_session_status"`
	ClassSessionAttendanceCount int                `gorm:"column:class_session_attendance_count;default:0" json:"class_session_attendance_count"`

	ClassSessionCreatedAt time.Time  `gorm:"column:class_session_created_at;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt *time.Time `gorm:"column:class_session_updated_at;autoUpdateTime" json:"class_session_updated_at,omitempty"`
}

func (ClassSessionModel) TableName() string {
	return "class_sessions"
}

func (m *ClassSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSessionID == uuid.Nil {
		m.ClassSessionID = uuid.New()
	}
	return nil
}

// StartAt / EndAt: instan mulai & selesai sesi (tanggal + jam, zona lokal).
func (m *ClassSessionModel) StartAt() time.Time { return m.ClassSessionStartTime.OnDate(m.ClassSessionDate) }
func (m *ClassSessionModel) EndAt() time.Time   { return m.ClassSessionEndTime.OnDate(m.ClassSessionDate) }

// ComputeStatus: fungsi murni (now, date, start, end) → status.
// Tidak dipanggil untuk sesi cancelled (sticky).
func ComputeStatus(now time.Time, date time.Time, start, end dbtime.Tod) ClassSessionStatus {
	st := start.OnDate(date)
	en := end.OnDate(date)
	switch {
	case now.Before(st):
		return ClassSessionStatusScheduled
	case now.After(en):
		return ClassSessionStatusCompleted
	default:
		return ClassSessionStatusLive
	}
}

// RefreshStatus me-recompute status kecuali sesi sudah dibatalkan.
func (m *ClassSessionModel) RefreshStatus(now time.Time) {
	if m.ClassSessionStatus == ClassSessionStatusCancelled {
		return
	}
	m.ClassSessionStatus = ComputeStatus(now, m.ClassSessionDate, m.ClassSessionStartTime, m.ClassSessionEndTime)
}
