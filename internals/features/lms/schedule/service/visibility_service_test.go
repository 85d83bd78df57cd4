package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	batchModel "kelasku_backend/internals/features/lms/batches/model"
	enrollModel "kelasku_backend/internals/features/lms/enrollments/model"
	enrollService "kelasku_backend/internals/features/lms/enrollments/service"
	sessionModel "kelasku_backend/internals/features/lms/sessions/model"
	"kelasku_backend/internals/helpers/dbtime"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&batchModel.ClassBatchModel{},
		&batchModel.CourseBatchLinkModel{},
		&sessionModel.ClassSessionModel{},
		&enrollModel.UserCourseModel{},
		&enrollModel.CourseUnlockModel{},
	))
	return db
}

func newTestService(db *gorm.DB) *VisibilityService {
	svc := NewVisibilityService(db, enrollService.NewEnrollmentService(db))
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uuid.UUID, enrolledAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&enrollModel.UserCourseModel{
		UserCourseID:         uuid.New(),
		UserCourseUserID:     userID,
		UserCourseCourseID:   courseID,
		UserCourseIsActive:   true,
		UserCourseEnrolledAt: enrolledAt,
	}).Error)
}

func seedBatch(t *testing.T, db *gorm.DB, courseID uuid.UUID, active bool) *batchModel.ClassBatchModel {
	t.Helper()
	b := &batchModel.ClassBatchModel{
		ClassBatchName:     "Batch Uji",
		ClassBatchCourseID: courseID,
		ClassBatchIsActive: active,
	}
	require.NoError(t, db.Create(b).Error)
	if !active {
		// gorm melewatkan field zero-value yang punya tag default saat Create,
		// jadi false harus ditulis eksplisit agar tidak tertimpa default TRUE.
		require.NoError(t, db.Model(b).UpdateColumn("class_batch_is_active", false).Error)
	}
	return b
}

func seedSession(t *testing.T, db *gorm.DB, batchID uuid.UUID, date, start, end string) *sessionModel.ClassSessionModel {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	require.NoError(t, err)
	st, err := dbtime.Parse(start)
	require.NoError(t, err)
	en, err := dbtime.Parse(end)
	require.NoError(t, err)
	s := &sessionModel.ClassSessionModel{
		ClassSessionBatchID:   batchID,
		ClassSessionSequence:  1,
		ClassSessionTopic:     "Sesi Uji",
		ClassSessionDate:      d,
		ClassSessionStartTime: st,
		ClassSessionEndTime:   en,
		ClassSessionStatus:    sessionModel.ClassSessionStatusScheduled,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func TestGetScheduleAccessDenied(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	_, err := svc.GetSchedule(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Enrolled tapi belum ada batch visible → 200 kosong, bukan AccessDenied.
func TestGetScheduleEnrolledButEmpty(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	userID, courseID := uuid.New(), uuid.New()
	seedEnrollment(t, db, userID, courseID, fixedNow.AddDate(0, -1, 0))

	sched, err := svc.GetSchedule(context.Background(), userID, courseID)
	require.NoError(t, err)
	assert.Empty(t, sched.Upcoming)
	assert.Empty(t, sched.Past)
}

// Akses via unlock legacy tetap dilayani; floor = tanggal unlock.
func TestGetScheduleLegacyUnlock(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	userID, courseID := uuid.New(), uuid.New()
	require.NoError(t, db.Create(&enrollModel.CourseUnlockModel{
		CourseUnlockID:         uuid.New(),
		CourseUnlockUserID:     userID,
		CourseUnlockCourseID:   courseID,
		CourseUnlockUnlockedAt: time.Date(2025, 3, 8, 0, 0, 0, 0, time.Local),
	}).Error)

	batch := seedBatch(t, db, courseID, true)
	seedSession(t, db, batch.ClassBatchID, "2025-03-07", "10:00", "11:00") // sebelum unlock → hidden
	seedSession(t, db, batch.ClassBatchID, "2025-03-09", "10:00", "11:00") // sesudah unlock → past

	sched, err := svc.GetSchedule(context.Background(), userID, courseID)
	require.NoError(t, err)
	assert.Len(t, sched.Past, 1)
	assert.Empty(t, sched.Upcoming)
}

// Jalur direct: floor = tanggal enrollment. Sesi sebelum enroll tidak terlihat.
func TestGetScheduleDirectFloor(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	userID, courseID := uuid.New(), uuid.New()
	seedEnrollment(t, db, userID, courseID, time.Date(2025, 3, 5, 9, 0, 0, 0, time.Local))

	batch := seedBatch(t, db, courseID, true)
	seedSession(t, db, batch.ClassBatchID, "2025-03-01", "10:00", "11:00") // sebelum enroll
	seedSession(t, db, batch.ClassBatchID, "2025-03-05", "10:00", "11:00") // hari-H enroll → ikut (floor = awal hari)
	seedSession(t, db, batch.ClassBatchID, "2025-03-12", "10:00", "11:00") // mendatang

	sched, err := svc.GetSchedule(context.Background(), userID, courseID)
	require.NoError(t, err)
	assert.Len(t, sched.Past, 1)
	assert.Len(t, sched.Upcoming, 1)
	assert.Equal(t, "2025-03-05", sched.Past[0].ClassSessionDate.Format("2006-01-02"))
	assert.Equal(t, "2025-03-12", sched.Upcoming[0].ClassSessionDate.Format("2006-01-02"))
}

// Jalur link: jendela visible_from/till menentukan apakah batch ikut.
func TestGetScheduleLinkedWindow(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	userID, courseID := uuid.New(), uuid.New()
	seedEnrollment(t, db, userID, courseID, fixedNow.AddDate(0, -2, 0))

	otherCourse := uuid.New()
	inWindow := seedBatch(t, db, otherCourse, true)
	expired := seedBatch(t, db, otherCourse, true)
	inactive := seedBatch(t, db, otherCourse, false)

	till := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	for _, l := range []batchModel.CourseBatchLinkModel{
		{
			CourseBatchLinkCourseID:    courseID,
			CourseBatchLinkBatchID:     inWindow.ClassBatchID,
			CourseBatchLinkVisibleFrom: time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
			CourseBatchLinkIsActive:    true,
		},
		{
			CourseBatchLinkCourseID:    courseID,
			CourseBatchLinkBatchID:     expired.ClassBatchID,
			CourseBatchLinkVisibleFrom: time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local),
			CourseBatchLinkVisibleTill: &till, // jendela sudah lewat
			CourseBatchLinkIsActive:    true,
		},
		{
			CourseBatchLinkCourseID:    courseID,
			CourseBatchLinkBatchID:     inactive.ClassBatchID, // batch nonaktif
			CourseBatchLinkVisibleFrom: time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
			CourseBatchLinkIsActive:    true,
		},
	} {
		link := l
		require.NoError(t, db.Create(&link).Error)
	}

	seedSession(t, db, inWindow.ClassBatchID, "2025-03-09", "10:00", "11:00")
	seedSession(t, db, expired.ClassBatchID, "2025-03-09", "10:00", "11:00")
	seedSession(t, db, inactive.ClassBatchID, "2025-03-09", "10:00", "11:00")

	sched, err := svc.GetSchedule(context.Background(), userID, courseID)
	require.NoError(t, err)
	assert.Len(t, sched.Past, 1)
	assert.Equal(t, inWindow.ClassBatchID, sched.Past[0].ClassSessionBatchID)
}

// Batch yang lolos dua jalur memakai floor link (visible_from), bukan tanggal enroll.
func TestGetScheduleLinkFloorWins(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	userID, courseID := uuid.New(), uuid.New()
	seedEnrollment(t, db, userID, courseID, time.Date(2025, 3, 8, 0, 0, 0, 0, time.Local))

	batch := seedBatch(t, db, courseID, true) // direct (owned) + linked
	require.NoError(t, db.Create(&batchModel.CourseBatchLinkModel{
		CourseBatchLinkCourseID:    courseID,
		CourseBatchLinkBatchID:     batch.ClassBatchID,
		CourseBatchLinkVisibleFrom: time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
		CourseBatchLinkIsActive:    true,
	}).Error)

	// Sebelum enroll (2025-03-08) tapi sesudah visible_from (2025-03-01):
	// harus terlihat karena floor link menang.
	seedSession(t, db, batch.ClassBatchID, "2025-03-03", "10:00", "11:00")

	sched, err := svc.GetSchedule(context.Background(), userID, courseID)
	require.NoError(t, err)
	assert.Len(t, sched.Past, 1)
}

// Arah sebaliknya: enroll lebih dulu dari visible_from link → floor link tetap
// menang, sesi sebelum visible_from disembunyikan.
func TestGetScheduleLinkFloorHidesEarlierSessions(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	userID, courseID := uuid.New(), uuid.New()
	seedEnrollment(t, db, userID, courseID, time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local))

	batch := seedBatch(t, db, courseID, true)
	require.NoError(t, db.Create(&batchModel.CourseBatchLinkModel{
		CourseBatchLinkCourseID:    courseID,
		CourseBatchLinkBatchID:     batch.ClassBatchID,
		CourseBatchLinkVisibleFrom: time.Date(2025, 3, 8, 0, 0, 0, 0, time.Local),
		CourseBatchLinkIsActive:    true,
	}).Error)

	seedSession(t, db, batch.ClassBatchID, "2025-03-05", "10:00", "11:00") // < visible_from → hidden
	seedSession(t, db, batch.ClassBatchID, "2025-03-09", "10:00", "11:00")

	sched, err := svc.GetSchedule(context.Background(), userID, courseID)
	require.NoError(t, err)
	require.Len(t, sched.Past, 1)
	assert.Equal(t, "2025-03-09", sched.Past[0].ClassSessionDate.Format("2006-01-02"))
	assert.Empty(t, sched.Upcoming)
}

func TestGetScheduleExcludesCancelled(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	userID, courseID := uuid.New(), uuid.New()
	seedEnrollment(t, db, userID, courseID, fixedNow.AddDate(0, -1, 0))
	batch := seedBatch(t, db, courseID, true)

	seedSession(t, db, batch.ClassBatchID, "2025-03-12", "10:00", "11:00")
	cancelled := seedSession(t, db, batch.ClassBatchID, "2025-03-13", "10:00", "11:00")
	require.NoError(t, db.Model(cancelled).
		UpdateColumn("class_session_status", sessionModel.ClassSessionStatusCancelled).Error)

	sched, err := svc.GetSchedule(context.Background(), userID, courseID)
	require.NoError(t, err)
	assert.Len(t, sched.Upcoming, 1)
	assert.Equal(t, "2025-03-12", sched.Upcoming[0].ClassSessionDate.Format("2006-01-02"))
}

// Pembagian upcoming/past + urutan + status segar (now = 2025-03-10 12:00).
func TestGetScheduleBucketsAndOrder(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	userID, courseID := uuid.New(), uuid.New()
	seedEnrollment(t, db, userID, courseID, fixedNow.AddDate(0, -1, 0))
	batch := seedBatch(t, db, courseID, true)

	seedSession(t, db, batch.ClassBatchID, "2025-03-08", "10:00", "11:00") // past
	seedSession(t, db, batch.ClassBatchID, "2025-03-09", "10:00", "11:00") // past (lebih baru)
	seedSession(t, db, batch.ClassBatchID, "2025-03-10", "11:30", "13:00") // live → upcoming
	seedSession(t, db, batch.ClassBatchID, "2025-03-12", "10:00", "11:00") // scheduled
	seedSession(t, db, batch.ClassBatchID, "2025-03-11", "10:00", "11:00") // scheduled (lebih awal)

	sched, err := svc.GetSchedule(context.Background(), userID, courseID)
	require.NoError(t, err)

	require.Len(t, sched.Upcoming, 3)
	require.Len(t, sched.Past, 2)

	// upcoming ascending, sesi live paling depan
	assert.Equal(t, "2025-03-10", sched.Upcoming[0].ClassSessionDate.Format("2006-01-02"))
	assert.Equal(t, sessionModel.ClassSessionStatusLive, sched.Upcoming[0].ClassSessionStatus)
	assert.Equal(t, "2025-03-11", sched.Upcoming[1].ClassSessionDate.Format("2006-01-02"))
	assert.Equal(t, "2025-03-12", sched.Upcoming[2].ClassSessionDate.Format("2006-01-02"))
	assert.Equal(t, sessionModel.ClassSessionStatusScheduled, sched.Upcoming[2].ClassSessionStatus)

	// past descending (terbaru dulu), status sudah completed
	assert.Equal(t, "2025-03-09", sched.Past[0].ClassSessionDate.Format("2006-01-02"))
	assert.Equal(t, "2025-03-08", sched.Past[1].ClassSessionDate.Format("2006-01-02"))
	assert.Equal(t, sessionModel.ClassSessionStatusCompleted, sched.Past[0].ClassSessionStatus)
}

// Enrollment nonaktif = tidak punya akses.
func TestGetScheduleInactiveEnrollment(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(db)

	userID, courseID := uuid.New(), uuid.New()
	uc := &enrollModel.UserCourseModel{
		UserCourseID:         uuid.New(),
		UserCourseUserID:     userID,
		UserCourseCourseID:   courseID,
		UserCourseIsActive:   false,
		UserCourseEnrolledAt: fixedNow.AddDate(0, -1, 0),
	}
	require.NoError(t, db.Create(uc).Error)
	// gorm melewatkan field zero-value yang punya tag default saat Create,
	// jadi false harus ditulis eksplisit agar tidak tertimpa default TRUE.
	require.NoError(t, db.Model(uc).UpdateColumn("user_course_is_active", false).Error)

	_, err := svc.GetSchedule(context.Background(), userID, courseID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
