// file: internals/features/lms/schedule/service/visibility_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	batchModel "kelasku_backend/internals/features/lms/batches/model"
	enrollService "kelasku_backend/internals/features/lms/enrollments/service"
	sessionModel "kelasku_backend/internals/features/lms/sessions/model"
	"kelasku_backend/internals/helpers/dbtime"
)

// ErrAccessDenied: student tidak punya enrollment aktif maupun unlock legacy.
// Dibedakan dari jadwal kosong (yang tetap 200 dengan list kosong).
var ErrAccessDenied = errors.New("student tidak punya akses ke course ini")

// VisibilityService menggabungkan dua sumber akses batch (link & direct)
// menjadi satu floor visibilitas per batch, lalu membagi sesi jadi
// upcoming/past. Status tersimpan TIDAK dipakai untuk keputusan akses;
// perbandingan waktu dihitung ulang dari date/start/end.
type VisibilityService struct {
	DB          *gorm.DB
	Enrollments *enrollService.EnrollmentService

	// Now dapat dioverride di test; default time.Now.
	Now func() time.Time
}

func NewVisibilityService(db *gorm.DB, enr *enrollService.EnrollmentService) *VisibilityService {
	return &VisibilityService{DB: db, Enrollments: enr, Now: time.Now}
}

type Schedule struct {
	Upcoming []sessionModel.ClassSessionModel `json:"upcoming"`
	Past     []sessionModel.ClassSessionModel `json:"past"`
}

// floorProvider menghasilkan batchID → floor (tanggal sesi paling awal yang
// boleh dilihat). Provider dievaluasi berurutan; floor pertama menang.
type floorProvider func(ctx context.Context, courseID uuid.UUID, enrolledAt time.Time, now time.Time) (map[uuid.UUID]time.Time, error)

// GetSchedule: satu-satunya entry point baca untuk student.
func (s *VisibilityService) GetSchedule(ctx context.Context, studentID, courseID uuid.UUID) (*Schedule, error) {
	enr, err := s.Enrollments.IsEnrolled(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enr.Active {
		return nil, ErrAccessDenied
	}

	now := s.Now()

	// Link dulu, baru direct: batch yang lolos dua jalur memakai floor link.
	providers := []floorProvider{s.linkedBatchFloors, s.directBatchFloors}
	floors := map[uuid.UUID]time.Time{}
	for _, p := range providers {
		m, err := p(ctx, courseID, enr.EnrolledAt, now)
		if err != nil {
			return nil, err
		}
		for batchID, floor := range m {
			if _, ok := floors[batchID]; !ok {
				floors[batchID] = floor
			}
		}
	}

	sched := &Schedule{
		Upcoming: []sessionModel.ClassSessionModel{},
		Past:     []sessionModel.ClassSessionModel{},
	}
	if len(floors) == 0 {
		return sched, nil // enrolled tapi belum ada batch visible, bukan AccessDenied
	}

	batchIDs := make([]uuid.UUID, 0, len(floors))
	for id := range floors {
		batchIDs = append(batchIDs, id)
	}

	var sessions []sessionModel.ClassSessionModel
	if err := s.DB.WithContext(ctx).
		Where("class_session_batch_id IN ? AND class_session_status <> ?", batchIDs, sessionModel.ClassSessionStatusCancelled).
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	for i := range sessions {
		sess := sessions[i]
		floor := dbtime.StartOfDay(floors[sess.ClassSessionBatchID])
		if dbtime.StartOfDay(sess.ClassSessionDate).Before(floor) {
			continue
		}
		sess.RefreshStatus(now) // status di response selalu segar
		if now.Before(sess.EndAt()) {
			sched.Upcoming = append(sched.Upcoming, sess)
		} else {
			sched.Past = append(sched.Past, sess)
		}
	}

	sort.Slice(sched.Upcoming, func(i, j int) bool {
		return sched.Upcoming[i].StartAt().Before(sched.Upcoming[j].StartAt())
	})
	sort.Slice(sched.Past, func(i, j int) bool {
		return sched.Past[i].StartAt().After(sched.Past[j].StartAt())
	})

	return sched, nil
}

// Jalur (a): link aktif yang jendelanya mencakup now, batch-nya aktif.
// Floor = visible_from milik link.
func (s *VisibilityService) linkedBatchFloors(ctx context.Context, courseID uuid.UUID, _ time.Time, now time.Time) (map[uuid.UUID]time.Time, error) {
	var links []batchModel.CourseBatchLinkModel
	err := s.DB.WithContext(ctx).
		Where("course_batch_link_course_id = ? AND course_batch_link_is_active = TRUE", courseID).
		Where("course_batch_link_visible_from <= ?", now).
		Where("(course_batch_link_visible_till IS NULL OR course_batch_link_visible_till >= ?)", now).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return map[uuid.UUID]time.Time{}, nil
	}

	batchIDs := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		batchIDs = append(batchIDs, l.CourseBatchLinkBatchID)
	}
	activeSet, err := s.activeBatchSet(ctx, batchIDs)
	if err != nil {
		return nil, err
	}

	out := map[uuid.UUID]time.Time{}
	for _, l := range links {
		if activeSet[l.CourseBatchLinkBatchID] {
			out[l.CourseBatchLinkBatchID] = l.CourseBatchLinkVisibleFrom
		}
	}
	return out, nil
}

// Jalur (b): batch aktif yang course ownernya = course ini.
// Floor = tanggal enrollment student (unlock date pada jalur legacy).
func (s *VisibilityService) directBatchFloors(ctx context.Context, courseID uuid.UUID, enrolledAt time.Time, _ time.Time) (map[uuid.UUID]time.Time, error) {
	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).
		Model(&batchModel.ClassBatchModel{}).
		Where("class_batch_course_id = ? AND class_batch_is_active = TRUE", courseID).
		Pluck("class_batch_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := map[uuid.UUID]time.Time{}
	for _, id := range ids {
		out[id] = enrolledAt
	}
	return out, nil
}

func (s *VisibilityService) activeBatchSet(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	var activeIDs []uuid.UUID
	err := s.DB.WithContext(ctx).
		Model(&batchModel.ClassBatchModel{}).
		Where("class_batch_id IN ? AND class_batch_is_active = TRUE", ids).
		Pluck("class_batch_id", &activeIDs).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]bool, len(activeIDs))
	for _, id := range activeIDs {
		out[id] = true
	}
	return out, nil
}
