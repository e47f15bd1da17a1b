package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/users/model"
)

// ================== REQUEST ==================
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ================== RESPONSE ==================
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Jurusan       *string   `json:"jurusan,omitempty"`
	MataPelajaran *string   `json:"mata_pelajaran,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ================ CONVERSION =================
func ToUserResponse(m *model.UserModel) UserResponse {
	return UserResponse{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		Role:          m.Role,
		Jurusan:       m.Jurusan,
		MataPelajaran: m.MataPelajaran,
		CreatedAt:     m.CreatedAt,
	}
}

func ToUserResponseList(models []model.UserModel) []UserResponse {
	result := make([]UserResponse, 0, len(models))
	for i := range models {
		result = append(result, ToUserResponse(&models[i]))
	}
	return result
}
