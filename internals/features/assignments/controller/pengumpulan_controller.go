package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/assignments/dto"
	"sekolahku_backend/internals/features/assignments/model"
	notifService "sekolahku_backend/internals/features/notifications/service"
	helper "sekolahku_backend/internals/helpers"
)

type PengumpulanController struct {
	DB         *gorm.DB
	Dispatcher *notifService.Dispatcher
}

func NewPengumpulanController(db *gorm.DB, dispatcher *notifService.Dispatcher) *PengumpulanController {
	return &PengumpulanController{DB: db, Dispatcher: dispatcher}
}

// 🟢 POST /api/tugas/:id/submit  (siswa)
// Satu pengumpulan per siswa per tugas; cek dalam transaksi (lock baris
// existing) + unique index sebagai penjaga race terakhir. Terlambat
// dihitung sekali saat submit dan tidak pernah berubah lagi.
func (ctrl *PengumpulanController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	userName := helper.GetUserNameFromLocals(c)

	tugasID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.SubmitTugasRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
		}
	}

	var tugas model.TugasModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&tugas, "id = ?", tugasID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		log.Printf("[ERROR] ambil tugas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengumpulkan tugas")
	}
	if !audiensTugas(&tugas, helper.GetJurusanFromLocals(c)) {
		return helper.JsonError(c, fiber.StatusForbidden, "Tugas ini bukan untuk jurusan Anda")
	}

	tx := ctrl.DB.WithContext(c.UserContext()).Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// Cek pengumpulan existing (FOR UPDATE supaya submit kembar antre)
	var existing model.PengumpulanTugasModel
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tugas_id = ? AND user_id = ?", tugasID, userID).
		First(&existing).Error
	if err == nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusBadRequest, "Anda sudah mengumpulkan tugas ini")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		log.Printf("[ERROR] cek pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengumpulkan tugas")
	}

	pengumpulan := tugas.NewPengumpulan(userID, req.JawabanText, req.FileJawaban, time.Now())
	if err := tx.Create(&pengumpulan).Error; err != nil {
		tx.Rollback()
		if strings.Contains(err.Error(), "duplicate key") {
			// kalah race dengan submit kembar yang commit duluan
			return helper.JsonError(c, fiber.StatusBadRequest, "Anda sudah mengumpulkan tugas ini")
		}
		log.Printf("[ERROR] simpan pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengumpulkan tugas")
	}
	if err := tx.Commit().Error; err != nil {
		log.Printf("[ERROR] commit pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengumpulkan tugas")
	}

	if _, err := ctrl.Dispatcher.Dispatch(c.UserContext(), notifService.TugasDikumpulkan{
		GuruID:    tugas.CreatedBy,
		Judul:     tugas.Judul,
		NamaSiswa: userName,
		Terlambat: pengumpulan.Terlambat,
	}); err != nil {
		log.Printf("[WARN] fanout pengumpulan: %v", err)
	}

	ctrl.preloadRelations(c, &pengumpulan)
	return helper.JsonCreated(c, "Tugas berhasil dikumpulkan", dto.ToPengumpulanResponse(&pengumpulan))
}

// 🟢 GET /api/submissions/me  (siswa)
func (ctrl *PengumpulanController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.PengumpulanTugasModel{}).
		Preload("Tugas").
		Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data pengumpulan")
	}

	var submissions []model.PengumpulanTugasModel
	if err := q.Order("waktu_submit DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&submissions).Error; err != nil {
		log.Printf("[ERROR] list pengumpulan saya: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengumpulan")
	}

	return helper.JsonList(c, "Berhasil mengambil pengumpulan Anda",
		dto.ToPengumpulanResponseList(submissions),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/submissions  (guru/admin)
// Semua pengumpulan untuk tugas buatan caller; admin melihat semua.
func (ctrl *PengumpulanController) GetAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromLocals(c)

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.PengumpulanTugasModel{}).
		Preload("Tugas").Preload("User")

	if role == constants.RoleGuru {
		q = q.Joins("JOIN tugas ON tugas.id = pengumpulan_tugas.tugas_id").
			Where("tugas.created_by = ?", userID)
	}
	if tugasID := c.Query("tugas_id"); tugasID != "" {
		q = q.Where("pengumpulan_tugas.tugas_id = ?", tugasID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data pengumpulan")
	}

	var submissions []model.PengumpulanTugasModel
	if err := q.Order("pengumpulan_tugas.waktu_submit DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&submissions).Error; err != nil {
		log.Printf("[ERROR] list pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengumpulan")
	}

	return helper.JsonList(c, "Berhasil mengambil data pengumpulan",
		dto.ToPengumpulanResponseList(submissions),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 PATCH /api/submissions/:id/grade  (guru/admin, wajib pembuat tugas)
// Re-grade menimpa nilai lama; flag terlambat tidak dihitung ulang.
func (ctrl *PengumpulanController) Grade(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	pengumpulanID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	tx := ctrl.DB.WithContext(c.UserContext()).Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var pengumpulan model.PengumpulanTugasModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", pengumpulanID).
		First(&pengumpulan).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pengumpulan tidak ditemukan")
		}
		log.Printf("[ERROR] ambil pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menilai tugas")
	}

	var tugas model.TugasModel
	if err := tx.First(&tugas, "id = ?", pengumpulan.TugasID).Error; err != nil {
		tx.Rollback()
		log.Printf("[ERROR] ambil tugas pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menilai tugas")
	}

	if err := pengumpulan.Grade(actorID, tugas.CreatedBy, *req.Nilai, req.Feedback); err != nil {
		tx.Rollback()
		return helper.JsonDomainError(c, err, gradeMessage(err))
	}

	if err := tx.Save(&pengumpulan).Error; err != nil {
		tx.Rollback()
		log.Printf("[ERROR] simpan nilai: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menilai tugas")
	}
	if err := tx.Commit().Error; err != nil {
		log.Printf("[ERROR] commit nilai: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menilai tugas")
	}

	if _, err := ctrl.Dispatcher.Dispatch(c.UserContext(), notifService.TugasDinilai{
		SiswaID: pengumpulan.UserID,
		Judul:   tugas.Judul,
		Nilai:   *req.Nilai,
	}); err != nil {
		log.Printf("[WARN] fanout nilai: %v", err)
	}

	ctrl.preloadRelations(c, &pengumpulan)
	return helper.JsonUpdated(c, "Tugas berhasil dinilai", dto.ToPengumpulanResponse(&pengumpulan))
}

// 🟢 DELETE /api/submissions/:id  (siswa)
// Batalkan pengumpulan sendiri selama belum dinilai; setelahnya siswa
// boleh submit ulang (slot unik per tugas kosong lagi).
func (ctrl *PengumpulanController) Cancel(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	pengumpulanID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	tx := ctrl.DB.WithContext(c.UserContext()).Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to start transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var pengumpulan model.PengumpulanTugasModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", pengumpulanID).
		First(&pengumpulan).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pengumpulan tidak ditemukan")
		}
		log.Printf("[ERROR] ambil pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membatalkan pengumpulan")
	}

	if err := pengumpulan.CanCancel(actorID); err != nil {
		tx.Rollback()
		return helper.JsonDomainError(c, err, "Pengumpulan yang sudah dinilai tidak bisa dibatalkan")
	}

	if err := tx.Delete(&pengumpulan).Error; err != nil {
		tx.Rollback()
		log.Printf("[ERROR] hapus pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membatalkan pengumpulan")
	}
	if err := tx.Commit().Error; err != nil {
		log.Printf("[ERROR] commit batal pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membatalkan pengumpulan")
	}

	return helper.JsonDeleted(c, "Pengumpulan berhasil dibatalkan", fiber.Map{"id": pengumpulanID})
}

func gradeMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrBukanPembuatTugas):
		return "Hanya pembuat tugas yang boleh menilai"
	case errors.Is(err, model.ErrNilaiInvalid):
		return "Nilai harus di antara 0 dan 100"
	default:
		return ""
	}
}

func (ctrl *PengumpulanController) preloadRelations(c *fiber.Ctx, pengumpulan *model.PengumpulanTugasModel) {
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("Tugas").Preload("User").
		First(pengumpulan, "id = ?", pengumpulan.ID).Error; err != nil {
		log.Printf("[WARN] preload relasi pengumpulan: %v", err)
	}
}
