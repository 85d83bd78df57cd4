// file: internals/route/details/lms_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchRoute "kelasku_backend/internals/features/lms/batches/route"
	scheduleRoute "kelasku_backend/internals/features/lms/schedule/route"
	sessionRoute "kelasku_backend/internals/features/lms/sessions/route"
	"kelasku_backend/internals/helpers/mailer"
)

// LmsAdminRoutes: surface pengelolaan batch & sesi (staff)
func LmsAdminRoutes(admin fiber.Router, db *gorm.DB, m mailer.Mailer) {
	batchRoute.ClassBatchAdminRoutes(admin, db)
	sessionRoute.ClassSessionAdminRoutes(admin, db, m)
}

// LmsUserRoutes: surface baca untuk student
func LmsUserRoutes(user fiber.Router, db *gorm.DB) {
	scheduleRoute.ScheduleUserRoutes(user, db)
}
