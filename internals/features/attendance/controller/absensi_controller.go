package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/attendance/dto"
	"sekolahku_backend/internals/features/attendance/model"
	notifService "sekolahku_backend/internals/features/notifications/service"
	helper "sekolahku_backend/internals/helpers"
)

type AbsensiController struct {
	DB         *gorm.DB
	Dispatcher *notifService.Dispatcher
}

func NewAbsensiController(db *gorm.DB, dispatcher *notifService.Dispatcher) *AbsensiController {
	return &AbsensiController{DB: db, Dispatcher: dispatcher}
}

// 🟢 GET /api/absensi  (+ filter tanggal/status + pagination)
// Siswa hanya melihat absensi sendiri; guru/admin melihat semua.
func (ctrl *AbsensiController) GetAll(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	role := helper.GetRoleFromLocals(c)

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.AbsensiModel{}).
		Preload("User").Preload("Approver")

	if role == constants.RoleSiswa {
		q = q.Where("user_id = ?", userID)
	}
	if tanggal := c.Query("tanggal"); tanggal != "" {
		q = q.Where("tanggal = ?", tanggal)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count absensi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data absensi")
	}

	var absensi []model.AbsensiModel
	if err := q.Order("tanggal DESC").Order("waktu_absen DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&absensi).Error; err != nil {
		log.Printf("[ERROR] list absensi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data absensi")
	}

	return helper.JsonList(c, "Berhasil mengambil data absensi",
		dto.ToAbsensiResponseList(absensi),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 POST /api/absensi
// Buat absensi pending untuk caller. Satu per hari; cek dalam transaksi
// (lock baris existing) + unique index sebagai penjaga race terakhir.
func (ctrl *AbsensiController) Store(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	userName := helper.GetUserNameFromLocals(c)

	var req dto.AbsensiRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
		}
	}

	now := time.Now()
	today := datatypes.Date(now)

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

	// Cek apakah sudah absen hari ini (FOR UPDATE supaya submit kembar antre)
	var existing model.AbsensiModel
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND tanggal = ?", userID, today).
		First(&existing).Error
	if err == nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusBadRequest, "Anda sudah melakukan absensi hari ini")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		log.Printf("[ERROR] cek absensi hari ini: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal submit absensi")
	}

	absensi := model.AbsensiModel{
		ID:         uuid.New(),
		UserID:     userID,
		Tanggal:    today,
		WaktuAbsen: now,
		Status:     constants.AbsensiPending,
		Keterangan: req.Keterangan,
		BuktiFoto:  req.BuktiFoto,
	}
	if err := tx.Create(&absensi).Error; err != nil {
		tx.Rollback()
		if strings.Contains(err.Error(), "duplicate key") {
			// kalah race dengan submit kembar yang commit duluan
			return helper.JsonError(c, fiber.StatusBadRequest, "Anda sudah melakukan absensi hari ini")
		}
		log.Printf("[ERROR] simpan absensi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal submit absensi")
	}
	if err := tx.Commit().Error; err != nil {
		log.Printf("[ERROR] commit absensi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal submit absensi")
	}

	// Fan-out ke guru/admin setelah commit; gagal dispatch tidak
	// membatalkan mutasi yang sudah sukses.
	if _, err := ctrl.Dispatcher.Dispatch(c.UserContext(), notifService.AbsensiDiajukan{
		OwnerID:   userID,
		OwnerName: userName,
		Tanggal:   now,
	}); err != nil {
		log.Printf("[WARN] fanout absensi pending: %v", err)
	}

	ctrl.preloadRelations(c, &absensi)
	return helper.JsonCreated(c, "Absensi berhasil disubmit", dto.ToAbsensiResponse(&absensi))
}

// 🟢 PATCH /api/absensi/:id/approve  (guru/admin)
func (ctrl *AbsensiController) Approve(c *fiber.Ctx) error {
	return ctrl.transition(c, func(absensi *model.AbsensiModel, actorID uuid.UUID) error {
		return absensi.Approve(actorID)
	}, func(absensi *model.AbsensiModel) notifService.Event {
		return notifService.AbsensiDisetujui{
			OwnerID: absensi.UserID,
			Tanggal: absensi.TanggalTime(),
		}
	}, "Absensi berhasil disetujui")
}

// 🟢 PATCH /api/absensi/:id/reject  (guru/admin, wajib alasan)
func (ctrl *AbsensiController) Reject(c *fiber.Ctx) error {
	var req dto.RejectAbsensiRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if fieldErrs := helper.ValidateStruct(&req); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	return ctrl.transition(c, func(absensi *model.AbsensiModel, actorID uuid.UUID) error {
		return absensi.Reject(actorID, req.Keterangan)
	}, func(absensi *model.AbsensiModel) notifService.Event {
		return notifService.AbsensiDitolak{
			OwnerID: absensi.UserID,
			Tanggal: absensi.TanggalTime(),
			Alasan:  req.Keterangan,
		}
	}, "Absensi berhasil ditolak")
}

// transition menjalankan satu read-modify-write atomik pada baris absensi:
// lock → aturan transisi → save → commit → fan-out. Caller kedua pada baris
// yang sama melihat status final dan gagal di aturan transisi.
func (ctrl *AbsensiController) transition(
	c *fiber.Ctx,
	apply func(*model.AbsensiModel, uuid.UUID) error,
	buildEvent func(*model.AbsensiModel) notifService.Event,
	successMsg string,
) error {
	actorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	absensiID, err := uuid.Parse(c.Params("id"))
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

	var absensi model.AbsensiModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", absensiID).
		First(&absensi).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Absensi tidak ditemukan")
		}
		log.Printf("[ERROR] ambil absensi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses absensi")
	}

	if err := apply(&absensi, actorID); err != nil {
		tx.Rollback()
		return helper.JsonDomainError(c, err, transitionMessage(err))
	}

	if err := tx.Save(&absensi).Error; err != nil {
		tx.Rollback()
		log.Printf("[ERROR] simpan transisi absensi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses absensi")
	}
	if err := tx.Commit().Error; err != nil {
		log.Printf("[ERROR] commit transisi absensi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses absensi")
	}

	if _, err := ctrl.Dispatcher.Dispatch(c.UserContext(), buildEvent(&absensi)); err != nil {
		log.Printf("[WARN] fanout transisi absensi: %v", err)
	}

	ctrl.preloadRelations(c, &absensi)
	return helper.JsonUpdated(c, successMsg, dto.ToAbsensiResponse(&absensi))
}

func transitionMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrSudahDiproses):
		return "Absensi sudah diproses"
	case errors.Is(err, model.ErrProsesSendiri):
		return "Tidak boleh memproses absensi sendiri"
	case errors.Is(err, model.ErrAlasanKosong):
		return "Alasan penolakan wajib diisi"
	default:
		return ""
	}
}

func (ctrl *AbsensiController) preloadRelations(c *fiber.Ctx, absensi *model.AbsensiModel) {
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("User").Preload("Approver").
		First(absensi, "id = ?", absensi.ID).Error; err != nil {
		log.Printf("[WARN] preload relasi absensi: %v", err)
	}
}
