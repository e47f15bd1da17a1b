package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/assignments/controller"
	notifService "sekolahku_backend/internals/features/notifications/service"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func TugasRoutes(api fiber.Router, db *gorm.DB, dispatcher *notifService.Dispatcher) {
	tugasCtrl := controller.NewTugasController(db, dispatcher)
	pengumpulanCtrl := controller.NewPengumpulanController(db, dispatcher)

	guruAdmin := authMw.OnlyRoles("Hanya guru atau admin yang boleh mengelola tugas",
		constants.GuruAndAdmin...)
	siswa := authMw.OnlyRoles("Hanya siswa yang boleh mengumpulkan tugas",
		constants.RoleSiswa)

	tugas := api.Group("/tugas")
	tugas.Get("/", tugasCtrl.GetAll)
	tugas.Post("/", guruAdmin, tugasCtrl.Store)
	tugas.Get("/:id", tugasCtrl.GetByID)
	tugas.Post("/:id/submit", siswa, pengumpulanCtrl.Submit)

	submissions := api.Group("/submissions")
	submissions.Get("/", guruAdmin, pengumpulanCtrl.GetAll)
	submissions.Get("/me", siswa, pengumpulanCtrl.GetMine)
	submissions.Patch("/:id/grade", guruAdmin, pengumpulanCtrl.Grade)
	submissions.Delete("/:id", siswa, pengumpulanCtrl.Cancel)
}
