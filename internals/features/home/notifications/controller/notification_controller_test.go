package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/home/notifications/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.NotificationModel{}))
	return db
}

// newTestApp meniru AuthJWT: user_id diambil dari header X-Test-User.
func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals("user_id", id)
		}
		return c.Next()
	})

	ctrl := NewNotificationController(db)
	app.Get("/notifications", ctrl.GetMyNotifications)
	app.Patch("/notifications/:id/read", ctrl.MarkAsRead)
	app.Get("/admin/notifications", ctrl.GetAllNotifications)
	app.Delete("/admin/notifications/:id", ctrl.DeleteNotification)
	return app
}

func doReq(t *testing.T, app *fiber.App, method, path string, userID *uuid.UUID) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != nil {
		req.Header.Set("X-Test-User", userID.String())
	}
	res, err := app.Test(req, 5000)
	require.NoError(t, err)
	return res
}

func seedNotification(t *testing.T, db *gorm.DB, userID uuid.UUID, read bool) *model.NotificationModel {
	t.Helper()
	sessionID := uuid.New()
	n := &model.NotificationModel{
		NotificationUserID:    userID,
		NotificationSessionID: &sessionID,
		NotificationType:      model.NotificationTypeSessionCreated,
		NotificationTitle:     "Sesi baru: Uji",
		NotificationMessage:   "Sesi uji dijadwalkan",
		NotificationIsRead:    read,
		NotificationPriority:  model.NotificationPriorityHigh,
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestGetMyNotificationsScopedToUser(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	me, other := uuid.New(), uuid.New()
	seedNotification(t, db, me, false)
	seedNotification(t, db, me, true)
	seedNotification(t, db, other, false)

	res := doReq(t, app, http.MethodGet, "/notifications", &me)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Data []struct {
			NotificationUserID uuid.UUID `json:"notification_user_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	for _, d := range body.Data {
		assert.Equal(t, me, d.NotificationUserID)
	}

	// filter unread
	res = doReq(t, app, http.MethodGet, "/notifications?unread=true", &me)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	body.Data = nil
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Len(t, body.Data, 1)
}

func TestGetMyNotificationsUnauthorized(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	res := doReq(t, app, http.MethodGet, "/notifications", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestMarkAsRead(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	me := uuid.New()
	n := seedNotification(t, db, me, false)

	res := doReq(t, app, http.MethodPatch, "/notifications/"+n.NotificationID.String()+"/read", &me)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var back model.NotificationModel
	require.NoError(t, db.Where("notification_id = ?", n.NotificationID).Take(&back).Error)
	assert.True(t, back.NotificationIsRead)
}

// Notifikasi milik user lain tidak bisa di-mark read (404, bukan bocor).
func TestMarkAsReadOtherUsers(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	owner, intruder := uuid.New(), uuid.New()
	n := seedNotification(t, db, owner, false)

	res := doReq(t, app, http.MethodPatch, "/notifications/"+n.NotificationID.String()+"/read", &intruder)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var back model.NotificationModel
	require.NoError(t, db.Where("notification_id = ?", n.NotificationID).Take(&back).Error)
	assert.False(t, back.NotificationIsRead)
}

func TestAdminDeleteNotification(t *testing.T) {
	db := openTestDB(t)
	app := newTestApp(db)

	n := seedNotification(t, db, uuid.New(), false)

	res := doReq(t, app, http.MethodDelete, "/admin/notifications/"+n.NotificationID.String(), nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count int64
	require.NoError(t, db.Model(&model.NotificationModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	res = doReq(t, app, http.MethodDelete, "/admin/notifications/"+n.NotificationID.String(), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
