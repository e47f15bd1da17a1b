package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/users/controller"
	"sekolahku_backend/internals/middlewares"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

// AuthRoutes: endpoint publik (tanpa token)
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authCtrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), authCtrl.Login)
}

// UserAdminRoutes: endpoint ber-token, khusus admin
func UserAdminRoutes(api fiber.Router, db *gorm.DB) {
	userCtrl := controller.NewUserController(db)

	users := api.Group("/users",
		authMw.OnlyRoles("Hanya admin yang boleh mengakses data user", constants.RoleAdmin))
	users.Get("/", userCtrl.GetAllUsers)
}
