// file: internals/features/lms/schedule/controller/schedule_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	sessionDTO "kelasku_backend/internals/features/lms/sessions/dto"
	"kelasku_backend/internals/features/lms/schedule/service"
	helper "kelasku_backend/internals/helpers"
)

type ScheduleController struct {
	Visibility *service.VisibilityService
}

func NewScheduleController(vis *service.VisibilityService) *ScheduleController {
	return &ScheduleController{Visibility: vis}
}

type scheduleResponse struct {
	Upcoming []sessionDTO.ClassSessionResponse `json:"upcoming"`
	Past     []sessionDTO.ClassSessionResponse `json:"past"`
}

// 🟢 GET /api/u/courses/:course_id/schedule
// Student hanya melihat sesi dari batch yang visible untuknya.
// Tidak punya akses → 403; punya akses tapi belum ada batch → 200 kosong.
func (ctrl *ScheduleController) GetSchedule(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak valid")
	}
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format course_id tidak valid")
	}

	sched, err := ctrl.Visibility.GetSchedule(c.Context(), studentID, courseID)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak memiliki akses ke course ini")
		}
		log.Printf("[ERROR] Gagal mengambil jadwal course=%s user=%s: %v", courseID, studentID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jadwal")
	}

	return helper.JsonOK(c, "", scheduleResponse{
		Upcoming: sessionDTO.ToClassSessionResponseList(sched.Upcoming),
		Past:     sessionDTO.ToClassSessionResponseList(sched.Past),
	})
}
