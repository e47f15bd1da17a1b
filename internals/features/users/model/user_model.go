package model

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// UserModel merepresentasikan tabel users di database.
// Jurusan terisi untuk siswa, MataPelajaran untuk guru.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name" validate:"required,min=3,max=100"`
	Email         string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password      string    `gorm:"not null" json:"-"`
	Role          string    `gorm:"type:varchar(10);not null" json:"role" validate:"required,oneof=admin guru siswa"`
	Jurusan       *string   `gorm:"size:50" json:"jurusan,omitempty"`
	MataPelajaran *string   `gorm:"size:50" json:"mata_pelajaran,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// IsSiswa melaporkan apakah user bisa jadi penerima notifikasi tugas.
func (u *UserModel) IsSiswa() bool {
	return u.Role == constants.RoleSiswa
}

// JurusanValue mengembalikan jurusan siswa ("" kalau tidak ada).
func (u *UserModel) JurusanValue() string {
	if u.Jurusan == nil {
		return ""
	}
	return *u.Jurusan
}
