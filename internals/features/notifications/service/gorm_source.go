// file: internals/features/notifications/service/gorm_source.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/notifications/model"
	userModel "sekolahku_backend/internals/features/users/model"
)

// GormRecipientSource membaca himpunan penerima dari tabel users.
type GormRecipientSource struct {
	DB *gorm.DB
}

func (s *GormRecipientSource) GuruDanAdmin(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("role IN ?", constants.GuruAndAdmin).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *GormRecipientSource) Siswa(ctx context.Context, jurusan string) ([]uuid.UUID, error) {
	q := s.DB.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("role = ?", constants.RoleSiswa)
	if jurusan != "" {
		q = q.Where("jurusan = ?", jurusan)
	}
	var ids []uuid.UUID
	err := q.Pluck("id", &ids).Error
	return ids, err
}

// GormNotifikasiStore mempersist notifikasi lewat gorm.
type GormNotifikasiStore struct {
	DB *gorm.DB
}

func (s *GormNotifikasiStore) Create(ctx context.Context, n *model.NotifikasiModel) error {
	return s.DB.WithContext(ctx).Create(n).Error
}
