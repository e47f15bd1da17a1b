package model

import (
	"time"

	"github.com/google/uuid"
)

// NotifikasiModel adalah record notifikasi per penerima.
// Dibuat hanya oleh fan-out engine; satu-satunya mutasi setelahnya
// adalah flag dibaca. Tidak pernah dihapus di alur inti.
type NotifikasiModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Judul     string    `gorm:"size:255;not null" json:"judul"`
	Pesan     string    `gorm:"type:text;not null" json:"pesan"`
	Tipe      string    `gorm:"type:varchar(20);not null" json:"tipe"`
	Dibaca    bool      `gorm:"not null;default:false" json:"dibaca"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (NotifikasiModel) TableName() string {
	return "notifikasi"
}
