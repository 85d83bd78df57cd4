// file: internals/features/home/notifications/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifController "kelasku_backend/internals/features/home/notifications/controller"
)

// NotificationUserRoutes: inbox in-app milik user
func NotificationUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := notifController.NewNotificationController(db)

	notifs := api.Group("/notifications")
	notifs.Get("/", ctrl.GetMyNotifications)
	notifs.Patch("/:id/read", ctrl.MarkAsRead)
}
