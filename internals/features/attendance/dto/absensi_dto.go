package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/attendance/model"
	userDto "sekolahku_backend/internals/features/users/dto"
)

// ================== REQUEST ==================
type AbsensiRequest struct {
	Keterangan *string `json:"keterangan"`
	BuktiFoto  *string `json:"bukti_foto"`
}

type RejectAbsensiRequest struct {
	Keterangan string `json:"keterangan" validate:"required"`
}

// ================== RESPONSE ==================
type AbsensiResponse struct {
	ID         uuid.UUID             `json:"id"`
	UserID     uuid.UUID             `json:"user_id"`
	Tanggal    string                `json:"tanggal"`
	WaktuAbsen time.Time             `json:"waktu_absen"`
	Status     string                `json:"status"`
	Keterangan *string               `json:"keterangan,omitempty"`
	BuktiFoto  *string               `json:"bukti_foto,omitempty"`
	ApprovedBy *uuid.UUID            `json:"approved_by,omitempty"`
	User       *userDto.UserResponse `json:"user,omitempty"`
	Approver   *userDto.UserResponse `json:"approver,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// ================ CONVERSION =================
func ToAbsensiResponse(m *model.AbsensiModel) AbsensiResponse {
	resp := AbsensiResponse{
		ID:         m.ID,
		UserID:     m.UserID,
		Tanggal:    m.TanggalTime().Format("2006-01-02"),
		WaktuAbsen: m.WaktuAbsen,
		Status:     m.Status,
		Keterangan: m.Keterangan,
		BuktiFoto:  m.BuktiFoto,
		ApprovedBy: m.ApprovedBy,
		CreatedAt:  m.CreatedAt,
	}
	if m.User != nil {
		u := userDto.ToUserResponse(m.User)
		resp.User = &u
	}
	if m.Approver != nil {
		a := userDto.ToUserResponse(m.Approver)
		resp.Approver = &a
	}
	return resp
}

func ToAbsensiResponseList(models []model.AbsensiModel) []AbsensiResponse {
	result := make([]AbsensiResponse, 0, len(models))
	for i := range models {
		result = append(result, ToAbsensiResponse(&models[i]))
	}
	return result
}
