// file: internals/features/lms/schedule/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollService "kelasku_backend/internals/features/lms/enrollments/service"
	scheduleController "kelasku_backend/internals/features/lms/schedule/controller"
	scheduleService "kelasku_backend/internals/features/lms/schedule/service"
)

// ScheduleUserRoutes: jadwal per course untuk student
func ScheduleUserRoutes(api fiber.Router, db *gorm.DB) {
	enrollments := enrollService.NewEnrollmentService(db)
	ctrl := scheduleController.NewScheduleController(
		scheduleService.NewVisibilityService(db, enrollments),
	)

	api.Get("/courses/:course_id/schedule", ctrl.GetSchedule)
}
