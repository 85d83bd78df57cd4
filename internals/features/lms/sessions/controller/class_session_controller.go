// file: internals/features/lms/sessions/controller/class_session_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifService "kelasku_backend/internals/features/home/notifications/service"
	batchModel "kelasku_backend/internals/features/lms/batches/model"
	"kelasku_backend/internals/features/lms/sessions/dto"
	"kelasku_backend/internals/features/lms/sessions/model"
	helper "kelasku_backend/internals/helpers"
)

type ClassSessionController struct {
	DB         *gorm.DB
	Dispatcher *notifService.Dispatcher
}

func NewClassSessionController(db *gorm.DB, dispatcher *notifService.Dispatcher) *ClassSessionController {
	return &ClassSessionController{DB: db, Dispatcher: dispatcher}
}

// 🟢 POST /api/a/class-sessions
// Setelah commit: fan-out notifikasi (kecuali suppress_notification).
// Kegagalan dispatch hanya dicatat: sesi tetap terbuat.
func (ctrl *ClassSessionController) CreateClassSession(c *fiber.Ctx) error {
	var req dto.CreateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sess, err := req.ToModel()
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var batch batchModel.ClassBatchModel
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_batch_id = ?", req.ClassSessionBatchID).Take(&batch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Batch tidak ditemukan")
			}
			return err
		}

		// sequence = jumlah sesi existing + 1 (advisory, bukan unik)
		var n int64
		if err := tx.Model(&model.ClassSessionModel{}).
			Where("class_session_batch_id = ?", batch.ClassBatchID).
			Count(&n).Error; err != nil {
			return err
		}
		sess.ClassSessionSequence = int(n) + 1
		sess.RefreshStatus(time.Now())

		if err := tx.Create(sess).Error; err != nil {
			return err
		}
		return recountBatchSessions(tx, batch.ClassBatchID)
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal membuat sesi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat sesi")
	}

	if !req.SuppressNotification && ctrl.Dispatcher != nil {
		sent, err := ctrl.Dispatcher.DispatchSessionCreated(c.Context(), &batch, sess)
		if err != nil {
			log.Printf("[ERROR] Fan-out notifikasi sesi %s gagal: %v", sess.ClassSessionID, err)
		} else {
			log.Printf("✅ Notifikasi sesi %s terkirim ke %d penerima", sess.ClassSessionID, sent)
		}
	}

	return helper.JsonCreated(c, "Sesi berhasil dibuat", dto.ToClassSessionResponse(sess))
}

// 🟢 GET /api/a/class-sessions?batch_id=...
func (ctrl *ClassSessionController) GetClassSessionsByBatch(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(c.Query("batch_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format batch_id tidak valid")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ClassSessionModel{}).
		Where("class_session_batch_id = ?", batchID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var sessions []model.ClassSessionModel
	if err := q.
		Order("class_session_date ASC, class_session_start_time ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&sessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	now := time.Now()
	for i := range sessions {
		sessions[i].RefreshStatus(now)
	}
	return helper.JsonList(c, "", dto.ToClassSessionResponseList(sessions),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟡 PATCH /api/a/class-sessions/:id: edit tidak pernah memicu notifikasi
func (ctrl *ClassSessionController) UpdateClassSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var req dto.UpdateClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var sess model.ClassSessionModel
	if err := ctrl.DB.Where("class_session_id = ?", id).Take(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	if err := req.ApplyTo(&sess); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	sess.RefreshStatus(time.Now()) // cancelled tetap cancelled

	if err := ctrl.DB.Save(&sess).Error; err != nil {
		log.Printf("[ERROR] Gagal update sesi %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan sesi")
	}
	return helper.JsonUpdated(c, "Sesi berhasil diperbarui", dto.ToClassSessionResponse(&sess))
}

// 🟡 PATCH /api/a/class-sessions/:id/cancel: cancelled bersifat sticky
func (ctrl *ClassSessionController) CancelClassSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var sess model.ClassSessionModel
	if err := ctrl.DB.Where("class_session_id = ?", id).Take(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	if sess.ClassSessionStatus != model.ClassSessionStatusCancelled {
		if err := ctrl.DB.Model(&sess).
			UpdateColumn("class_session_status", model.ClassSessionStatusCancelled).Error; err != nil {
			log.Printf("[ERROR] Gagal cancel sesi %s: %v", id, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membatalkan sesi")
		}
		sess.ClassSessionStatus = model.ClassSessionStatusCancelled
	}
	return helper.JsonUpdated(c, "Sesi dibatalkan", dto.ToClassSessionResponse(&sess))
}

// 🛑 DELETE /api/a/class-sessions/:id: counter batch di-recount dalam tx yang sama
func (ctrl *ClassSessionController) DeleteClassSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var sess model.ClassSessionModel
		if err := tx.Where("class_session_id = ?", id).Take(&sess).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
			}
			return err
		}
		if err := tx.Delete(&sess).Error; err != nil {
			return err
		}
		return recountBatchSessions(tx, sess.ClassSessionBatchID)
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal hapus sesi %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus sesi")
	}
	return helper.JsonDeleted(c, "Sesi berhasil dihapus", fiber.Map{"class_session_id": id})
}

// recountBatchSessions menulis ulang counter dari COUNT(*), bukan increment,
// supaya tidak drift saat ada operasi konkuren.
func recountBatchSessions(tx *gorm.DB, batchID uuid.UUID) error {
	sub := tx.Session(&gorm.Session{NewDB: true}).
		Model(&model.ClassSessionModel{}).
		Select("COUNT(*)").
		Where("class_session_batch_id = ?", batchID)
	return tx.Model(&batchModel.ClassBatchModel{}).
		Where("class_batch_id = ?", batchID).
		UpdateColumn("class_batch_total_sessions", sub).Error
}
