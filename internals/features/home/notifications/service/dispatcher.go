// file: internals/features/home/notifications/service/dispatcher.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	batchModel "kelasku_backend/internals/features/lms/batches/model"
	enrollService "kelasku_backend/internals/features/lms/enrollments/service"
	sessionModel "kelasku_backend/internals/features/lms/sessions/model"
	notifModel "kelasku_backend/internals/features/home/notifications/model"
	"kelasku_backend/internals/helpers/mailer"
)

// EnrollmentDirectory: subset EnrollmentService yang dipakai dispatcher.
// Dipisah sebagai interface supaya kegagalan per course bisa disimulasikan.
type EnrollmentDirectory interface {
	ActiveUserIDsByCourse(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error)
	ResolveUser(ctx context.Context, userID uuid.UUID) (enrollService.UserContact, error)
	CourseTitle(ctx context.Context, courseID uuid.UUID) (string, error)
}

// Dispatcher: fan-out notifikasi saat sesi baru dibuat.
// Baris notifikasi ditulis dulu (idempotent per penerima+sesi), email menyusul
// best-effort; kegagalan email tidak pernah naik ke caller.
type Dispatcher struct {
	DB          *gorm.DB
	Enrollments EnrollmentDirectory
	Mailer      mailer.Mailer
}

func NewDispatcher(db *gorm.DB, enr EnrollmentDirectory, m mailer.Mailer) *Dispatcher {
	return &Dispatcher{DB: db, Enrollments: enr, Mailer: m}
}

// DispatchSessionCreated mengembalikan jumlah penerima unik yang dinotifikasi.
// 0 link course → no-op valid (0, nil). Gagal resolve satu course → di-skip,
// course lain tetap jalan (partial result).
func (d *Dispatcher) DispatchSessionCreated(
	ctx context.Context,
	batch *batchModel.ClassBatchModel,
	sess *sessionModel.ClassSessionModel,
) (int, error) {
	// 1) Course yang ter-link ke batch ini (urut created_at biar deterministik)
	var links []batchModel.CourseBatchLinkModel
	if err := d.DB.WithContext(ctx).
		Where("course_batch_link_batch_id = ? AND course_batch_link_is_active = TRUE", batch.ClassBatchID).
		Order("course_batch_link_created_at ASC").
		Find(&links).Error; err != nil {
		return 0, err
	}
	if len(links) == 0 {
		return 0, nil
	}

	// 2) Enrollment aktif per course → dedup per user.
	//    Payload memakai course pertama yang me-resolve user tsb.
	recipientCourse := map[uuid.UUID]uuid.UUID{}
	order := make([]uuid.UUID, 0, 16)
	for _, l := range links {
		ids, err := d.Enrollments.ActiveUserIDsByCourse(ctx, l.CourseBatchLinkCourseID)
		if err != nil {
			log.Printf("[ERROR] dispatch: gagal resolve enrollment course=%s: %v", l.CourseBatchLinkCourseID, err)
			continue
		}
		for _, uid := range ids {
			if _, seen := recipientCourse[uid]; !seen {
				recipientCourse[uid] = l.CourseBatchLinkCourseID
				order = append(order, uid)
			}
		}
	}
	if len(order) == 0 {
		return 0, nil
	}

	// 3) Bangun baris notifikasi
	title := fmt.Sprintf("Sesi baru: %s", sess.ClassSessionTopic)
	rows := make([]notifModel.NotificationModel, 0, len(order))
	for _, uid := range order {
		courseID := recipientCourse[uid]
		courseTitle, err := d.Enrollments.CourseTitle(ctx, courseID)
		if err != nil {
			courseTitle = ""
		}
		payload := d.buildPayload(courseID, courseTitle, batch, sess)
		sid := sess.ClassSessionID
		rows = append(rows, notifModel.NotificationModel{
			NotificationUserID:       uid,
			NotificationSessionID:    &sid,
			NotificationType:         notifModel.NotificationTypeSessionCreated,
			NotificationTitle:        title,
			NotificationMessage:      d.buildMessage(courseTitle, batch, sess),
			NotificationData:         payload,
			NotificationInAppEnabled: true,
			NotificationEmailEnabled: true,
			NotificationPriority:     notifModel.NotificationPriorityHigh,
		})
	}

	// Idempotent per (user, sesi): tabrakan di-skip, bukan error
	if err := d.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, 100).Error; err != nil {
		return 0, err
	}

	// 4) Email best-effort setelah baris ter-commit
	for _, uid := range order {
		d.sendEmail(ctx, uid, title, recipientCourse[uid], batch, sess)
	}

	return len(order), nil
}

func (d *Dispatcher) sendEmail(
	ctx context.Context,
	userID uuid.UUID,
	subject string,
	courseID uuid.UUID,
	batch *batchModel.ClassBatchModel,
	sess *sessionModel.ClassSessionModel,
) {
	contact, err := d.Enrollments.ResolveUser(ctx, userID)
	if err != nil {
		log.Printf("[ERROR] dispatch: gagal resolve user %s untuk email: %v", userID, err)
		return
	}
	courseTitle, _ := d.Enrollments.CourseTitle(ctx, courseID)
	if err := d.Mailer.Send(contact.Name, contact.Email, subject, d.buildMessage(courseTitle, batch, sess)); err != nil {
		// dicatat "belum terkirim" saja: baris notifikasi tetap hidup
		log.Printf("[ERROR] dispatch: email ke %s gagal: %v", contact.Email, err)
		return
	}
	now := time.Now()
	if err := d.DB.WithContext(ctx).
		Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_session_id = ?", userID, sess.ClassSessionID).
		UpdateColumn("notification_email_sent_at", now).Error; err != nil {
		log.Printf("[ERROR] dispatch: gagal set email_sent_at user=%s: %v", userID, err)
	}
}

func (d *Dispatcher) buildPayload(
	courseID uuid.UUID,
	courseTitle string,
	batch *batchModel.ClassBatchModel,
	sess *sessionModel.ClassSessionModel,
) datatypes.JSON {
	m := map[string]any{
		"course_id":          courseID.String(),
		"course_title":       courseTitle,
		"batch_id":           batch.ClassBatchID.String(),
		"batch_name":         batch.ClassBatchName,
		"session_id":         sess.ClassSessionID.String(),
		"session_topic":      sess.ClassSessionTopic,
		"session_date":       sess.ClassSessionDate.Format("2006-01-02"),
		"session_start_time": sess.ClassSessionStartTime.Format("15:04"),
		"session_end_time":   sess.ClassSessionEndTime.Format("15:04"),
	}
	if sess.ClassSessionMeetingLink != nil {
		m["meeting_link"] = *sess.ClassSessionMeetingLink
	}
	b, _ := json.Marshal(m)
	return datatypes.JSON(b)
}

func (d *Dispatcher) buildMessage(
	courseTitle string,
	batch *batchModel.ClassBatchModel,
	sess *sessionModel.ClassSessionModel,
) string {
	msg := fmt.Sprintf("Sesi %q dijadwalkan %s pukul %s–%s pada batch %s",
		sess.ClassSessionTopic,
		sess.ClassSessionDate.Format("2006-01-02"),
		sess.ClassSessionStartTime.Format("15:04"),
		sess.ClassSessionEndTime.Format("15:04"),
		batch.ClassBatchName,
	)
	if courseTitle != "" {
		msg += fmt.Sprintf(" (course %s)", courseTitle)
	}
	if sess.ClassSessionMeetingLink != nil {
		msg += ". Link meeting: " + *sess.ClassSessionMeetingLink
	}
	return msg
}
