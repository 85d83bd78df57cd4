// file: internals/features/lms/batches/controller/course_batch_link_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kelasku_backend/internals/features/lms/batches/dto"
	"kelasku_backend/internals/features/lms/batches/model"
	helper "kelasku_backend/internals/helpers"
)

type CourseBatchLinkController struct{ DB *gorm.DB }

func NewCourseBatchLinkController(db *gorm.DB) *CourseBatchLinkController {
	return &CourseBatchLinkController{DB: db}
}

// 🟢 POST /api/a/course-batch-links
// Attach idempotent: pasangan (course, batch) yang sama meng-update jendela
// visibilitasnya, tidak menduplikasi baris.
func (ctrl *CourseBatchLinkController) AttachBatch(c *fiber.Ctx) error {
	var req dto.AttachBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.CourseBatchLinkVisibleTill != nil && req.CourseBatchLinkVisibleTill.Before(req.CourseBatchLinkVisibleFrom) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "visible_till harus setelah visible_from")
	}

	var batch model.ClassBatchModel
	if err := ctrl.DB.Where("class_batch_id = ?", req.CourseBatchLinkBatchID).Take(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil batch")
	}

	link := model.CourseBatchLinkModel{
		CourseBatchLinkCourseID:    req.CourseBatchLinkCourseID,
		CourseBatchLinkBatchID:     req.CourseBatchLinkBatchID,
		CourseBatchLinkSubjectID:   batch.ClassBatchSubjectID, // snapshot dari batch
		CourseBatchLinkVisibleFrom: req.CourseBatchLinkVisibleFrom,
		CourseBatchLinkVisibleTill: req.CourseBatchLinkVisibleTill,
		CourseBatchLinkIsActive:    true,
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "course_batch_link_course_id"},
			{Name: "course_batch_link_batch_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"course_batch_link_subject_id",
			"course_batch_link_visible_from",
			"course_batch_link_visible_till",
			"course_batch_link_is_active",
			"course_batch_link_updated_at",
		}),
	}).Create(&link).Error; err != nil {
		log.Printf("[ERROR] Gagal attach batch %s ke course %s: %v",
			req.CourseBatchLinkBatchID, req.CourseBatchLinkCourseID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghubungkan batch ke course")
	}

	// baca ulang supaya response memuat nilai final (termasuk id lama saat upsert)
	var saved model.CourseBatchLinkModel
	if err := ctrl.DB.
		Where("course_batch_link_course_id = ? AND course_batch_link_batch_id = ?",
			req.CourseBatchLinkCourseID, req.CourseBatchLinkBatchID).
		Take(&saved).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca link")
	}
	return helper.JsonCreated(c, "Batch terhubung ke course", dto.ToCourseBatchLinkResponse(&saved))
}

// 🛑 DELETE /api/a/course-batch-links
func (ctrl *CourseBatchLinkController) DetachBatch(c *fiber.Ctx) error {
	var req dto.DetachBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	res := ctrl.DB.
		Where("course_batch_link_course_id = ? AND course_batch_link_batch_id = ?",
			req.CourseBatchLinkCourseID, req.CourseBatchLinkBatchID).
		Delete(&model.CourseBatchLinkModel{})
	if res.Error != nil {
		log.Printf("[ERROR] Gagal detach batch %s dari course %s: %v",
			req.CourseBatchLinkBatchID, req.CourseBatchLinkCourseID, res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal melepas link")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Link tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Link berhasil dilepas", fiber.Map{
		"course_batch_link_course_id": req.CourseBatchLinkCourseID,
		"course_batch_link_batch_id":  req.CourseBatchLinkBatchID,
	})
}

// 🟢 GET /api/a/course-batch-links?course_id=... | ?batch_id=...
func (ctrl *CourseBatchLinkController) GetLinks(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.CourseBatchLinkModel{})

	if courseIDStr := c.Query("course_id"); courseIDStr != "" {
		courseID, err := uuid.Parse(courseIDStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format course_id tidak valid")
		}
		q = q.Where("course_batch_link_course_id = ?", courseID)
	}
	if batchIDStr := c.Query("batch_id"); batchIDStr != "" {
		batchID, err := uuid.Parse(batchIDStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format batch_id tidak valid")
		}
		q = q.Where("course_batch_link_batch_id = ?", batchID)
	}

	var links []model.CourseBatchLinkModel
	if err := q.Order("course_batch_link_created_at ASC").Find(&links).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil link")
	}
	return helper.JsonOK(c, "", dto.ToCourseBatchLinkResponseList(links))
}
