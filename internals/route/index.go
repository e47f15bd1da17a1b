// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	assignmentRoute "sekolahku_backend/internals/features/assignments/route"
	attendanceRoute "sekolahku_backend/internals/features/attendance/route"
	notifRoute "sekolahku_backend/internals/features/notifications/route"
	notifService "sekolahku_backend/internals/features/notifications/service"
	userRoute "sekolahku_backend/internals/features/users/route"
	authMw "sekolahku_backend/internals/middlewares/auth"
	"sekolahku_backend/internals/realtime"
)

// SetupRoutes merakit dispatcher notifikasi lalu mendaftarkan semua route.
// Endpoint di bawah /api wajib ber-token; /auth publik.
func SetupRoutes(app *fiber.App, db *gorm.DB, publisher realtime.Publisher) {
	dispatcher := notifService.NewDispatcher(
		&notifService.GormRecipientSource{DB: db},
		&notifService.GormNotifikasiStore{DB: db},
		publisher,
		configs.GetLogrusInstance(),
	)

	BaseRoutes(app)

	// publik
	userRoute.AuthRoutes(app.Group("/api"), db)

	// ber-token
	api := app.Group("/api", authMw.AuthMiddleware())
	userRoute.UserAdminRoutes(api, db)
	attendanceRoute.AbsensiRoutes(api, db, dispatcher)
	assignmentRoute.TugasRoutes(api, db, dispatcher)
	notifRoute.NotificationRoutes(api, db)
}
