// file: internals/features/home/notifications/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifController "kelasku_backend/internals/features/home/notifications/controller"
)

// NotificationAdminRoutes: audit & housekeeping notifikasi
func NotificationAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := notifController.NewNotificationController(db)

	notifs := api.Group("/notifications")
	notifs.Get("/", ctrl.GetAllNotifications)
	notifs.Delete("/:id", ctrl.DeleteNotification)
}
