package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/attendance/controller"
	notifService "sekolahku_backend/internals/features/notifications/service"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func AbsensiRoutes(api fiber.Router, db *gorm.DB, dispatcher *notifService.Dispatcher) {
	ctrl := controller.NewAbsensiController(db, dispatcher)

	absensi := api.Group("/absensi")
	absensi.Get("/", ctrl.GetAll)
	absensi.Post("/",
		authMw.OnlyRoles("Hanya siswa yang boleh submit absensi", constants.RoleSiswa),
		ctrl.Store)

	guruAdmin := authMw.OnlyRoles("Hanya guru atau admin yang boleh memproses absensi",
		constants.GuruAndAdmin...)
	absensi.Patch("/:id/approve", guruAdmin, ctrl.Approve)
	absensi.Patch("/:id/reject", guruAdmin, ctrl.Reject)
}
