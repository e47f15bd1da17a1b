package model

import (
	"time"

	"github.com/google/uuid"

	userModel "sekolahku_backend/internals/features/users/model"
)

// TugasModel merepresentasikan tabel tugas. Dibuat sekali oleh guru,
// immutable setelahnya (tidak ada edit/delete di alur inti).
type TugasModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Judul         string     `gorm:"size:255;not null" json:"judul"`
	Deskripsi     string     `gorm:"type:text;not null" json:"deskripsi"`
	MataPelajaran string     `gorm:"type:varchar(10);not null" json:"mata_pelajaran"`
	Jurusan       *string    `gorm:"size:50" json:"jurusan,omitempty"`
	Deadline      time.Time  `gorm:"not null" json:"deadline"`
	FileTugas     *string    `gorm:"size:255" json:"file_tugas,omitempty"`
	CreatedBy     uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Creator *userModel.UserModel `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (TugasModel) TableName() string {
	return "tugas"
}

// JurusanValue mengembalikan jurusan tugas ("" kalau tidak ada).
func (t *TugasModel) JurusanValue() string {
	if t.Jurusan == nil {
		return ""
	}
	return *t.Jurusan
}
