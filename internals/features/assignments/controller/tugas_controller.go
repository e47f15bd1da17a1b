package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/assignments/dto"
	"sekolahku_backend/internals/features/assignments/model"
	notifService "sekolahku_backend/internals/features/notifications/service"
	helper "sekolahku_backend/internals/helpers"
)

type TugasController struct {
	DB         *gorm.DB
	Dispatcher *notifService.Dispatcher
}

func NewTugasController(db *gorm.DB, dispatcher *notifService.Dispatcher) *TugasController {
	return &TugasController{DB: db, Dispatcher: dispatcher}
}

// 🟢 GET /api/tugas (+ filter mapel + pagination)
// Siswa melihat tugas untuk audiensnya (non-JURUSAN atau JURUSAN sesuai
// jurusannya), guru melihat tugas buatannya sendiri, admin melihat semua.
func (ctrl *TugasController) GetAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromLocals(c)

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TugasModel{}).
		Preload("Creator")

	switch role {
	case constants.RoleSiswa:
		jurusan := helper.GetJurusanFromLocals(c)
		q = q.Where("mata_pelajaran <> ? OR jurusan = ?", constants.MapelJurusan, jurusan)
	case constants.RoleGuru:
		q = q.Where("created_by = ?", userID)
	}

	if mapel := c.Query("mata_pelajaran"); mapel != "" {
		q = q.Where("mata_pelajaran = ?", mapel)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("judul ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count tugas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data tugas")
	}

	var tugas []model.TugasModel
	if err := q.Order("deadline ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&tugas).Error; err != nil {
		log.Printf("[ERROR] list tugas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tugas")
	}

	return helper.JsonList(c, "Berhasil mengambil data tugas",
		dto.ToTugasResponseList(tugas),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/tugas/:id
// Detail tugas + pengumpulan. Siswa hanya melihat pengumpulannya sendiri,
// guru pembuat & admin melihat semua pengumpulan.
func (ctrl *TugasController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromLocals(c)

	tugasID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var tugas model.TugasModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("Creator").
		First(&tugas, "id = ?", tugasID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
		}
		log.Printf("[ERROR] ambil tugas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data tugas")
	}

	if role == constants.RoleSiswa && !audiensTugas(&tugas, helper.GetJurusanFromLocals(c)) {
		return helper.JsonError(c, fiber.StatusForbidden, "Tugas ini bukan untuk jurusan Anda")
	}
	if role == constants.RoleGuru && tugas.CreatedBy != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda bukan pembuat tugas ini")
	}

	subQ := ctrl.DB.WithContext(c.UserContext()).
		Preload("User").
		Where("tugas_id = ?", tugasID)
	if role == constants.RoleSiswa {
		subQ = subQ.Where("user_id = ?", userID)
	}

	var submissions []model.PengumpulanTugasModel
	if err := subQ.Order("waktu_submit DESC").Find(&submissions).Error; err != nil {
		log.Printf("[ERROR] list pengumpulan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pengumpulan")
	}

	return helper.JsonOK(c, "Berhasil mengambil detail tugas", dto.TugasDetailResponse{
		Tugas:       dto.ToTugasResponse(&tugas),
		Submissions: dto.ToPengumpulanResponseList(submissions),
	})
}

// 🟢 POST /api/tugas  (guru/admin)
// Validasi mapel/jurusan/deadline di aturan domain, simpan, lalu fan-out
// ke siswa audiens setelah commit.
func (ctrl *TugasController) Store(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.TugasRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	tugas := req.ToModel(userID)
	if err := tugas.ValidateBaru(time.Now()); err != nil {
		return helper.JsonDomainError(c, err, tugasRuleMessage(err))
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&tugas).Error; err != nil {
		log.Printf("[ERROR] simpan tugas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tugas")
	}

	if _, err := ctrl.Dispatcher.Dispatch(c.UserContext(), notifService.TugasDibuat{
		Judul:         tugas.Judul,
		MataPelajaran: tugas.MataPelajaran,
		Jurusan:       tugas.JurusanValue(),
	}); err != nil {
		log.Printf("[WARN] fanout tugas baru: %v", err)
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("Creator").
		First(&tugas, "id = ?", tugas.ID).Error; err != nil {
		log.Printf("[WARN] preload creator tugas: %v", err)
	}
	return helper.JsonCreated(c, "Tugas berhasil dibuat", dto.ToTugasResponse(&tugas))
}

func tugasRuleMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrMapelInvalid):
		return "Mata pelajaran tidak dikenal"
	case errors.Is(err, model.ErrJurusanWajib):
		return "Jurusan wajib diisi untuk mata pelajaran JURUSAN"
	case errors.Is(err, model.ErrJurusanTakDipakai):
		return "Jurusan hanya boleh diisi untuk mata pelajaran JURUSAN"
	case errors.Is(err, model.ErrDeadlineLampau):
		return "Deadline harus di masa depan"
	default:
		return ""
	}
}

// audiensTugas: tugas non-JURUSAN untuk semua siswa, tugas JURUSAN hanya
// untuk siswa dengan jurusan yang sama.
func audiensTugas(t *model.TugasModel, jurusanSiswa string) bool {
	if t.MataPelajaran != constants.MapelJurusan {
		return true
	}
	return t.JurusanValue() == jurusanSiswa && jurusanSiswa != ""
}
