package model

import (
	"time"

	"github.com/google/uuid"

	userModel "sekolahku_backend/internals/features/users/model"
)

// PengumpulanTugasModel merepresentasikan tabel pengumpulan_tugas.
// Unik per (tugas, user). Terlambat dihitung sekali saat submit dan
// tidak pernah dihitung ulang. Cancel = hard delete selama belum dinilai.
type PengumpulanTugasModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TugasID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pengumpulan_tugas_user" json:"tugas_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pengumpulan_tugas_user" json:"user_id"`
	JawabanText *string   `gorm:"type:text" json:"jawaban_text,omitempty"`
	FileJawaban *string   `gorm:"size:255" json:"file_jawaban,omitempty"`
	WaktuSubmit time.Time `gorm:"not null" json:"waktu_submit"`
	Terlambat   bool      `gorm:"not null;default:false" json:"terlambat"`
	Nilai       *int      `json:"nilai,omitempty"`
	Feedback    *string   `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Tugas *TugasModel          `gorm:"foreignKey:TugasID" json:"tugas,omitempty"`
	User  *userModel.UserModel `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PengumpulanTugasModel) TableName() string {
	return "pengumpulan_tugas"
}
