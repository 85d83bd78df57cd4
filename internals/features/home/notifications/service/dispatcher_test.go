package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	notifModel "kelasku_backend/internals/features/home/notifications/model"
	batchModel "kelasku_backend/internals/features/lms/batches/model"
	enrollModel "kelasku_backend/internals/features/lms/enrollments/model"
	enrollService "kelasku_backend/internals/features/lms/enrollments/service"
	sessionModel "kelasku_backend/internals/features/lms/sessions/model"
	"kelasku_backend/internals/helpers/dbtime"
)

type recordMailer struct{ sent []string }

func (m *recordMailer) Send(toName, toEmail, subject, plainBody string) error {
	m.sent = append(m.sent, toEmail)
	return nil
}

type failMailer struct{}

func (failMailer) Send(toName, toEmail, subject, plainBody string) error {
	return errors.New("smtp down")
}

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
		&enrollModel.UserModel{},
		&enrollModel.CourseModel{},
		&notifModel.NotificationModel{},
	))
	return db
}

type fixture struct {
	db      *gorm.DB
	batch   *batchModel.ClassBatchModel
	session *sessionModel.ClassSessionModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)

	batch := &batchModel.ClassBatchModel{
		ClassBatchName:     "Batch 12",
		ClassBatchCourseID: uuid.New(),
		ClassBatchIsActive: true,
	}
	require.NoError(t, db.Create(batch).Error)

	start, err := dbtime.Parse("19:00")
	require.NoError(t, err)
	end, err := dbtime.Parse("21:00")
	require.NoError(t, err)
	link := "https://zoom.us/j/123"
	sess := &sessionModel.ClassSessionModel{
		ClassSessionBatchID:     batch.ClassBatchID,
		ClassSessionSequence:    1,
		ClassSessionTopic:       "Aljabar Linear",
		ClassSessionDate:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local),
		ClassSessionStartTime:   start,
		ClassSessionEndTime:     end,
		ClassSessionMeetingLink: &link,
		ClassSessionStatus:      sessionModel.ClassSessionStatusScheduled,
	}
	require.NoError(t, db.Create(sess).Error)

	return &fixture{db: db, batch: batch, session: sess}
}

func (f *fixture) linkCourse(t *testing.T, courseID uuid.UUID) {
	t.Helper()
	require.NoError(t, f.db.Create(&batchModel.CourseBatchLinkModel{
		CourseBatchLinkCourseID:    courseID,
		CourseBatchLinkBatchID:     f.batch.ClassBatchID,
		CourseBatchLinkVisibleFrom: time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
		CourseBatchLinkIsActive:    true,
	}).Error)
	require.NoError(t, f.db.Create(&enrollModel.CourseModel{
		CourseID:    courseID,
		CourseTitle: "Course " + courseID.String()[:8],
	}).Error)
}

func (f *fixture) enrollUser(t *testing.T, courseID uuid.UUID) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	require.NoError(t, f.db.Create(&enrollModel.UserModel{
		UserID:    userID,
		UserName:  "Siswa",
		UserEmail: fmt.Sprintf("%s@contoh.id", userID.String()[:8]),
	}).Error)
	f.enrollExisting(t, userID, courseID)
	return userID
}

func (f *fixture) enrollExisting(t *testing.T, userID, courseID uuid.UUID) {
	t.Helper()
	require.NoError(t, f.db.Create(&enrollModel.UserCourseModel{
		UserCourseID:         uuid.New(),
		UserCourseUserID:     userID,
		UserCourseCourseID:   courseID,
		UserCourseIsActive:   true,
		UserCourseEnrolledAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local),
	}).Error)
}

func countNotifications(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).Count(&n).Error)
	return n
}

// flakyEnrollments: lookup enrollment yang gagal untuk satu course tertentu.
type flakyEnrollments struct {
	*enrollService.EnrollmentService
	failCourse uuid.UUID
}

func (f *flakyEnrollments) ActiveUserIDsByCourse(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	if courseID == f.failCourse {
		return nil, errors.New("enrollment lookup timeout")
	}
	return f.EnrollmentService.ActiveUserIDsByCourse(ctx, courseID)
}

// Gagal resolve satu course tidak boleh menggagalkan fan-out course lain:
// hasil parsial, bukan fail-fast.
func TestDispatchPartialCourseFailure(t *testing.T) {
	f := newFixture(t)
	courseA, courseB := uuid.New(), uuid.New()
	f.linkCourse(t, courseA) // link pertama (urutan created_at), resolusinya gagal
	f.linkCourse(t, courseB)

	f.enrollUser(t, courseA)
	userB := f.enrollUser(t, courseB)

	enrollments := &flakyEnrollments{
		EnrollmentService: enrollService.NewEnrollmentService(f.db),
		failCourse:        courseA,
	}
	m := &recordMailer{}
	d := NewDispatcher(f.db, enrollments, m)

	sent, err := d.DispatchSessionCreated(context.Background(), f.batch, f.session)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	var rows []notifModel.NotificationModel
	require.NoError(t, f.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, userB, rows[0].NotificationUserID)
	assert.Len(t, m.sent, 1)
}

func TestDispatchNoLinkedCourses(t *testing.T) {
	f := newFixture(t)
	d := NewDispatcher(f.db, enrollService.NewEnrollmentService(f.db), &recordMailer{})

	sent, err := d.DispatchSessionCreated(context.Background(), f.batch, f.session)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.EqualValues(t, 0, countNotifications(t, f.db))
}

// User yang enrolled di dua course ter-link hanya dapat satu notifikasi.
func TestDispatchDeduplicatesAcrossCourses(t *testing.T) {
	f := newFixture(t)
	courseA, courseB := uuid.New(), uuid.New()
	f.linkCourse(t, courseA)
	f.linkCourse(t, courseB)

	both := f.enrollUser(t, courseA)
	f.enrollExisting(t, both, courseB)
	onlyA := f.enrollUser(t, courseA)

	m := &recordMailer{}
	d := NewDispatcher(f.db, enrollService.NewEnrollmentService(f.db), m)

	sent, err := d.DispatchSessionCreated(context.Background(), f.batch, f.session)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.EqualValues(t, 2, countNotifications(t, f.db))
	assert.Len(t, m.sent, 2)

	var rows []notifModel.NotificationModel
	require.NoError(t, f.db.Order("notification_created_at ASC").Find(&rows).Error)
	seen := map[uuid.UUID]bool{}
	for _, r := range rows {
		seen[r.NotificationUserID] = true
		assert.Equal(t, notifModel.NotificationTypeSessionCreated, r.NotificationType)
		assert.Equal(t, "Sesi baru: Aljabar Linear", r.NotificationTitle)
		require.NotNil(t, r.NotificationSessionID)
		assert.Equal(t, f.session.ClassSessionID, *r.NotificationSessionID)
		assert.NotNil(t, r.NotificationEmailSentAt)
	}
	assert.True(t, seen[both])
	assert.True(t, seen[onlyA])
}

// Dispatch ulang untuk sesi yang sama tidak menduplikasi baris.
func TestDispatchIdempotent(t *testing.T) {
	f := newFixture(t)
	courseA := uuid.New()
	f.linkCourse(t, courseA)
	f.enrollUser(t, courseA)

	d := NewDispatcher(f.db, enrollService.NewEnrollmentService(f.db), &recordMailer{})

	_, err := d.DispatchSessionCreated(context.Background(), f.batch, f.session)
	require.NoError(t, err)
	_, err = d.DispatchSessionCreated(context.Background(), f.batch, f.session)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countNotifications(t, f.db))
}

// Email gagal: baris notifikasi tetap ada, email_sent_at tetap NULL.
func TestDispatchEmailFailureIsBestEffort(t *testing.T) {
	f := newFixture(t)
	courseA := uuid.New()
	f.linkCourse(t, courseA)
	f.enrollUser(t, courseA)

	d := NewDispatcher(f.db, enrollService.NewEnrollmentService(f.db), failMailer{})

	sent, err := d.DispatchSessionCreated(context.Background(), f.batch, f.session)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	var row notifModel.NotificationModel
	require.NoError(t, f.db.Take(&row).Error)
	assert.Nil(t, row.NotificationEmailSentAt)
	assert.True(t, row.NotificationEmailEnabled)
}
