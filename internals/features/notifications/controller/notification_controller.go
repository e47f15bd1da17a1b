package controller

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/notifications/dto"
	"sekolahku_backend/internals/features/notifications/model"
	helper "sekolahku_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// 🟢 GET /api/notifikasi  (milik caller, terbaru dulu, 20/halaman)
func (ctrl *NotificationController) GetMyNotifications(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.NotifikasiModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		log.Printf("[ERROR] count notifikasi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var notifs []model.NotifikasiModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&notifs).Error; err != nil {
		log.Printf("[ERROR] list notifikasi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data notifikasi")
	}

	return helper.JsonList(c, "Berhasil mengambil notifikasi",
		dto.ToNotifikasiResponseList(notifs),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 PATCH /api/notifikasi/:id/read
// Hanya pemilik record yang bisa menandai; id orang lain → 404.
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var notif model.NotifikasiModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("id = ? AND user_id = ?", notifID, userID).
		First(&notif).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
		}
		log.Printf("[ERROR] ambil notifikasi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&notif).
		Update("dibaca", true).Error; err != nil {
		log.Printf("[ERROR] update dibaca: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update notifikasi")
	}

	return helper.JsonUpdated(c, "Notifikasi berhasil ditandai sebagai dibaca", nil)
}

// 🟢 PATCH /api/notifikasi/read-all
func (ctrl *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.NotifikasiModel{}).
		Where("user_id = ? AND dibaca = ?", userID, false).
		Update("dibaca", true).Error; err != nil {
		log.Printf("[ERROR] read-all: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update notifikasi")
	}

	return helper.JsonUpdated(c, "Semua notifikasi berhasil ditandai sebagai dibaca", nil)
}

// 🟢 GET /api/notifikasi/unread-count
// Counter diturunkan dari record (COUNT), tidak pernah disimpan terpisah.
func (ctrl *NotificationController) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var count int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.NotifikasiModel{}).
		Where("user_id = ? AND dibaca = ?", userID, false).
		Count(&count).Error; err != nil {
		log.Printf("[ERROR] unread-count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}

	return helper.JsonOK(c, "ok", dto.UnreadCountResponse{Count: count})
}

// 🟢 DELETE /api/notifikasi/prune?days=90 (admin)
// Retensi: hapus notifikasi lebih tua dari N hari. Default 90.
func (ctrl *NotificationController) PruneOld(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "90"))
	if days < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "days harus >= 1")
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	res := ctrl.DB.WithContext(c.UserContext()).
		Where("created_at < ?", cutoff).
		Delete(&model.NotifikasiModel{})
	if res.Error != nil {
		log.Printf("[ERROR] prune notifikasi: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus notifikasi lama")
	}

	return helper.JsonDeleted(c, "Notifikasi lama berhasil dihapus", fiber.Map{
		"deleted": res.RowsAffected,
		"cutoff":  cutoff,
	})
}
