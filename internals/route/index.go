// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	"kelasku_backend/internals/constants"
	"kelasku_backend/internals/helpers/mailer"
	middleware "kelasku_backend/internals/middlewares/auth"
	"kelasku_backend/internals/route/details"
)

// SetupRoutes memasang dua surface:
//   - /api/u : user login (student): inbox notifikasi & jadwal course
//   - /api/a : staff (teacher/admin/owner): kelola batch, sesi, link, audit notifikasi
func SetupRoutes(app *fiber.App, db *gorm.DB, m mailer.Mailer) {
	api := app.Group("/api")

	authed := middleware.AuthJWT(middleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	user := api.Group("/u", authed)
	details.LmsUserRoutes(user, db)
	details.HomeUserRoutes(user, db)

	admin := api.Group("/a", authed,
		middleware.OnlyRoles(constants.RoleErrorStaff("kelola kelas"), constants.TeacherAndAbove...))
	details.LmsAdminRoutes(admin, db, m)
	details.HomeAdminRoutes(admin, db)
}
