// file: internals/route/details/home_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifRoute "kelasku_backend/internals/features/home/notifications/route"
)

func HomeUserRoutes(user fiber.Router, db *gorm.DB) {
	notifRoute.NotificationUserRoutes(user, db)
}

func HomeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	notifRoute.NotificationAdminRoutes(admin, db)
}
