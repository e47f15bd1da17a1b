package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/notifications/controller"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	notif := api.Group("/notifikasi")
	notif.Get("/", ctrl.GetMyNotifications)
	notif.Get("/unread-count", ctrl.GetUnreadCount)
	notif.Patch("/read-all", ctrl.MarkAllAsRead)
	notif.Patch("/:id/read", ctrl.MarkAsRead)

	notif.Delete("/prune",
		authMw.OnlyRoles("Hanya admin yang boleh menghapus notifikasi lama", constants.RoleAdmin),
		ctrl.PruneOld)
}
