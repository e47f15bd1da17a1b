// file: internals/helpers/token.go
package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromLocals mengambil user_id yang disimpan AuthMiddleware.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user ID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user ID")
	}
	return id, nil
}

// GetRoleFromLocals mengambil role dari context (diisi AuthMiddleware).
func GetRoleFromLocals(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}

// GetUserNameFromLocals mengambil nama user dari context.
func GetUserNameFromLocals(c *fiber.Ctx) string {
	name, _ := c.Locals("user_name").(string)
	return name
}

// GetJurusanFromLocals mengambil jurusan siswa dari context (kosong untuk non-siswa).
func GetJurusanFromLocals(c *fiber.Ctx) string {
	jurusan, _ := c.Locals("jurusan").(string)
	return jurusan
}
