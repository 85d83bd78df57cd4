// file: internals/features/lms/sessions/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifService "kelasku_backend/internals/features/home/notifications/service"
	enrollService "kelasku_backend/internals/features/lms/enrollments/service"
	sessionController "kelasku_backend/internals/features/lms/sessions/controller"
	"kelasku_backend/internals/helpers/mailer"
)

// ClassSessionAdminRoutes: CRUD sesi. Create memicu fan-out notifikasi.
func ClassSessionAdminRoutes(api fiber.Router, db *gorm.DB, m mailer.Mailer) {
	enrollments := enrollService.NewEnrollmentService(db)
	dispatcher := notifService.NewDispatcher(db, enrollments, m)
	ctrl := sessionController.NewClassSessionController(db, dispatcher)

	sessions := api.Group("/class-sessions")
	sessions.Post("/", ctrl.CreateClassSession)
	sessions.Get("/", ctrl.GetClassSessionsByBatch)
	sessions.Patch("/:id", ctrl.UpdateClassSession)
	sessions.Patch("/:id/cancel", ctrl.CancelClassSession)
	sessions.Delete("/:id", ctrl.DeleteClassSession)
}
