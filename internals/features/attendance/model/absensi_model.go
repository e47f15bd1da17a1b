package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	userModel "sekolahku_backend/internals/features/users/model"
)

// AbsensiModel merepresentasikan tabel absensi.
// Maksimal satu record per (user, tanggal) — dijaga unique index +
// pengecekan dalam transaksi. History append-only, tidak ada delete.
type AbsensiModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_absensi_user_tanggal" json:"user_id"`
	Tanggal    datatypes.Date `gorm:"not null;uniqueIndex:idx_absensi_user_tanggal" json:"tanggal"`
	WaktuAbsen time.Time      `gorm:"not null" json:"waktu_absen"`
	Status     string         `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	Keterangan *string        `gorm:"type:text" json:"keterangan,omitempty"`
	BuktiFoto  *string        `gorm:"size:255" json:"bukti_foto,omitempty"`
	ApprovedBy *uuid.UUID     `gorm:"type:uuid" json:"approved_by,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	User     *userModel.UserModel `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Approver *userModel.UserModel `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (AbsensiModel) TableName() string {
	return "absensi"
}

// TanggalTime mengembalikan tanggal absensi sebagai time.Time.
func (a *AbsensiModel) TanggalTime() time.Time {
	return time.Time(a.Tanggal)
}
