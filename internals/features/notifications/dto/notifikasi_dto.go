package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/notifications/model"
	"sekolahku_backend/internals/realtime"
)

// ================== RESPONSE ==================
type NotifikasiResponse struct {
	ID        uuid.UUID `json:"id"`
	Judul     string    `json:"judul"`
	Pesan     string    `json:"pesan"`
	Tipe      string    `json:"tipe"`
	Dibaca    bool      `json:"dibaca"`
	CreatedAt time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ================ CONVERSION =================
func ToNotifikasiResponse(m *model.NotifikasiModel) NotifikasiResponse {
	return NotifikasiResponse{
		ID:        m.ID,
		Judul:     m.Judul,
		Pesan:     m.Pesan,
		Tipe:      m.Tipe,
		Dibaca:    m.Dibaca,
		CreatedAt: m.CreatedAt,
	}
}

func ToNotifikasiResponseList(models []model.NotifikasiModel) []NotifikasiResponse {
	result := make([]NotifikasiResponse, 0, len(models))
	for i := range models {
		result = append(result, ToNotifikasiResponse(&models[i]))
	}
	return result
}

// ToRealtimePayload memetakan record storage ke wire DTO channel privat.
// Bentuk wire datar dan stabil, lepas dari skema tabel.
func ToRealtimePayload(m *model.NotifikasiModel) realtime.NotificationPayload {
	return realtime.NotificationPayload{
		ID:        m.ID,
		Judul:     m.Judul,
		Pesan:     m.Pesan,
		Tipe:      m.Tipe,
		CreatedAt: m.CreatedAt,
	}
}
