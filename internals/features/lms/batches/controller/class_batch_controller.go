// file: internals/features/lms/batches/controller/class_batch_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/features/lms/batches/dto"
	"kelasku_backend/internals/features/lms/batches/model"
	sessionModel "kelasku_backend/internals/features/lms/sessions/model"
	helper "kelasku_backend/internals/helpers"
)

type ClassBatchController struct{ DB *gorm.DB }

func NewClassBatchController(db *gorm.DB) *ClassBatchController {
	return &ClassBatchController{DB: db}
}

// 🟢 POST /api/a/class-batches
func (ctrl *ClassBatchController) CreateClassBatch(c *fiber.Ctx) error {
	var req dto.CreateClassBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	batch := req.ToModel()
	if err := ctrl.DB.Create(batch).Error; err != nil {
		log.Printf("[ERROR] Gagal membuat batch: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat batch")
	}
	return helper.JsonCreated(c, "Batch berhasil dibuat", dto.ToClassBatchResponse(batch))
}

// 🟢 GET /api/a/class-batches (+ pagination, filter course_id)
func (ctrl *ClassBatchController) GetAllClassBatches(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ClassBatchModel{})
	if courseIDStr := c.Query("course_id"); courseIDStr != "" {
		courseID, err := uuid.Parse(courseIDStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format course_id tidak valid")
		}
		q = q.Where("class_batch_course_id = ?", courseID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var batches []model.ClassBatchModel
	if err := q.
		Order("class_batch_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&batches).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data batch")
	}

	return helper.JsonList(c, "", dto.ToClassBatchResponseList(batches),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/a/class-batches/:id
func (ctrl *ClassBatchController) GetClassBatchByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var batch model.ClassBatchModel
	if err := ctrl.DB.Where("class_batch_id = ?", id).Take(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil batch")
	}
	return helper.JsonOK(c, "", dto.ToClassBatchResponse(&batch))
}

// 🟡 PATCH /api/a/class-batches/:id  (soft-retire lewat class_batch_is_active)
func (ctrl *ClassBatchController) UpdateClassBatch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var req dto.UpdateClassBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var batch model.ClassBatchModel
	if err := ctrl.DB.Where("class_batch_id = ?", id).Take(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil batch")
	}

	req.ApplyTo(&batch)
	if err := ctrl.DB.Save(&batch).Error; err != nil {
		log.Printf("[ERROR] Gagal update batch %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan batch")
	}
	return helper.JsonUpdated(c, "Batch berhasil diperbarui", dto.ToClassBatchResponse(&batch))
}

// 🛑 DELETE /api/a/class-batches/:id
// Ditolak selama masih ada sesi. Guard dicek pada statement DELETE itu sendiri
// (NOT EXISTS), bukan count terpisah, supaya tidak balapan dengan create sesi.
func (ctrl *ClassBatchController) DeleteClassBatch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var deleted bool
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("class_batch_id = ? AND NOT EXISTS (SELECT 1 FROM class_sessions WHERE class_session_batch_id = ?)", id, id).
			Delete(&model.ClassBatchModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		// Link ikut dibersihkan bersama batch-nya
		return tx.
			Where("course_batch_link_batch_id = ?", id).
			Delete(&model.CourseBatchLinkModel{}).Error
	}); err != nil {
		log.Printf("[ERROR] Gagal hapus batch %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus batch")
	}

	if !deleted {
		// bedakan: batch tidak ada vs masih punya sesi
		var n int64
		if err := ctrl.DB.Model(&sessionModel.ClassSessionModel{}).
			Where("class_session_batch_id = ?", id).
			Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus batch")
		}
		if n > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Batch masih memiliki sesi, hapus sesi terlebih dahulu")
		}
		return helper.JsonError(c, fiber.StatusNotFound, "Batch tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Batch berhasil dihapus", fiber.Map{"class_batch_id": id})
}
