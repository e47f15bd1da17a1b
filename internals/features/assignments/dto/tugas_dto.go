package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/assignments/model"
	userDto "sekolahku_backend/internals/features/users/dto"
)

// ================== REQUEST ==================
type TugasRequest struct {
	Judul         string    `json:"judul" validate:"required,max=255"`
	Deskripsi     string    `json:"deskripsi" validate:"required"`
	MataPelajaran string    `json:"mata_pelajaran" validate:"required"`
	Jurusan       *string   `json:"jurusan"`
	Deadline      time.Time `json:"deadline" validate:"required"`
	FileTugas     *string   `json:"file_tugas"`
}

func (r *TugasRequest) ToModel(createdBy uuid.UUID) model.TugasModel {
	return model.TugasModel{
		ID:            uuid.New(),
		Judul:         r.Judul,
		Deskripsi:     r.Deskripsi,
		MataPelajaran: r.MataPelajaran,
		Jurusan:       r.Jurusan,
		Deadline:      r.Deadline,
		FileTugas:     r.FileTugas,
		CreatedBy:     createdBy,
	}
}

type SubmitTugasRequest struct {
	JawabanText *string `json:"jawaban_text"`
	FileJawaban *string `json:"file_jawaban"`
}

type GradeRequest struct {
	Nilai    *int    `json:"nilai" validate:"required"`
	Feedback *string `json:"feedback"`
}

// ================== RESPONSE ==================
type TugasResponse struct {
	ID            uuid.UUID             `json:"id"`
	Judul         string                `json:"judul"`
	Deskripsi     string                `json:"deskripsi"`
	MataPelajaran string                `json:"mata_pelajaran"`
	Jurusan       *string               `json:"jurusan,omitempty"`
	Deadline      time.Time             `json:"deadline"`
	FileTugas     *string               `json:"file_tugas,omitempty"`
	CreatedBy     uuid.UUID             `json:"created_by"`
	Creator       *userDto.UserResponse `json:"creator,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

type PengumpulanResponse struct {
	ID          uuid.UUID             `json:"id"`
	TugasID     uuid.UUID             `json:"tugas_id"`
	UserID      uuid.UUID             `json:"user_id"`
	JawabanText *string               `json:"jawaban_text,omitempty"`
	FileJawaban *string               `json:"file_jawaban,omitempty"`
	WaktuSubmit time.Time             `json:"waktu_submit"`
	Terlambat   bool                  `json:"terlambat"`
	Nilai       *int                  `json:"nilai,omitempty"`
	Feedback    *string               `json:"feedback,omitempty"`
	Tugas       *TugasResponse        `json:"tugas,omitempty"`
	User        *userDto.UserResponse `json:"user,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

type TugasDetailResponse struct {
	Tugas       TugasResponse         `json:"tugas"`
	Submissions []PengumpulanResponse `json:"submissions"`
}

// ================ CONVERSION =================
func ToTugasResponse(m *model.TugasModel) TugasResponse {
	resp := TugasResponse{
		ID:            m.ID,
		Judul:         m.Judul,
		Deskripsi:     m.Deskripsi,
		MataPelajaran: m.MataPelajaran,
		Jurusan:       m.Jurusan,
		Deadline:      m.Deadline,
		FileTugas:     m.FileTugas,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
	if m.Creator != nil {
		u := userDto.ToUserResponse(m.Creator)
		resp.Creator = &u
	}
	return resp
}

func ToTugasResponseList(models []model.TugasModel) []TugasResponse {
	result := make([]TugasResponse, 0, len(models))
	for i := range models {
		result = append(result, ToTugasResponse(&models[i]))
	}
	return result
}

func ToPengumpulanResponse(m *model.PengumpulanTugasModel) PengumpulanResponse {
	resp := PengumpulanResponse{
		ID:          m.ID,
		TugasID:     m.TugasID,
		UserID:      m.UserID,
		JawabanText: m.JawabanText,
		FileJawaban: m.FileJawaban,
		WaktuSubmit: m.WaktuSubmit,
		Terlambat:   m.Terlambat,
		Nilai:       m.Nilai,
		Feedback:    m.Feedback,
		CreatedAt:   m.CreatedAt,
	}
	if m.Tugas != nil {
		t := ToTugasResponse(m.Tugas)
		resp.Tugas = &t
	}
	if m.User != nil {
		u := userDto.ToUserResponse(m.User)
		resp.User = &u
	}
	return resp
}

func ToPengumpulanResponseList(models []model.PengumpulanTugasModel) []PengumpulanResponse {
	result := make([]PengumpulanResponse, 0, len(models))
	for i := range models {
		result = append(result, ToPengumpulanResponse(&models[i]))
	}
	return result
}
