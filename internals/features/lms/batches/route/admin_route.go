// file: internals/features/lms/batches/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchController "kelasku_backend/internals/features/lms/batches/controller"
)

// ClassBatchAdminRoutes: CRUD batch + link course↔batch (staff only, guard di group)
func ClassBatchAdminRoutes(api fiber.Router, db *gorm.DB) {
	batchCtrl := batchController.NewClassBatchController(db)
	linkCtrl := batchController.NewCourseBatchLinkController(db)

	batches := api.Group("/class-batches")
	batches.Post("/", batchCtrl.CreateClassBatch)
	batches.Get("/", batchCtrl.GetAllClassBatches)
	batches.Get("/:id", batchCtrl.GetClassBatchByID)
	batches.Patch("/:id", batchCtrl.UpdateClassBatch)
	batches.Delete("/:id", batchCtrl.DeleteClassBatch)

	links := api.Group("/course-batch-links")
	links.Post("/", linkCtrl.AttachBatch)
	links.Delete("/", linkCtrl.DetachBatch)
	links.Get("/", linkCtrl.GetLinks)
}
