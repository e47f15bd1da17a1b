// file: internals/features/notifications/service/events.go
package service

import (
	"time"

	"github.com/google/uuid"
)

// Event domain yang memicu fan-out notifikasi. Dipassing eksplisit dari
// controller setelah mutasi commit, bukan lewat hook implicit.
type Event interface {
	eventName() string
}

// AbsensiDiajukan: siswa submit absensi baru (status pending).
type AbsensiDiajukan struct {
	OwnerID   uuid.UUID
	OwnerName string
	Tanggal   time.Time
}

func (AbsensiDiajukan) eventName() string { return "absensi.diajukan" }

// AbsensiDisetujui: guru/admin menyetujui absensi (pending → hadir).
type AbsensiDisetujui struct {
	OwnerID uuid.UUID
	Tanggal time.Time
}

func (AbsensiDisetujui) eventName() string { return "absensi.disetujui" }

// AbsensiDitolak: guru/admin menolak absensi (pending → tidak_hadir).
type AbsensiDitolak struct {
	OwnerID uuid.UUID
	Tanggal time.Time
	Alasan  string
}

func (AbsensiDitolak) eventName() string { return "absensi.ditolak" }

// TugasDibuat: guru membuat tugas baru.
type TugasDibuat struct {
	Judul         string
	MataPelajaran string
	// Jurusan membatasi penerima kalau MataPelajaran == JURUSAN, selain itu kosong.
	Jurusan string
}

func (TugasDibuat) eventName() string { return "tugas.dibuat" }

// TugasDikumpulkan: siswa mengumpulkan jawaban tugas.
type TugasDikumpulkan struct {
	GuruID    uuid.UUID
	Judul     string
	NamaSiswa string
	Terlambat bool
}

func (TugasDikumpulkan) eventName() string { return "tugas.dikumpulkan" }

// TugasDinilai: guru memberi nilai pada pengumpulan.
type TugasDinilai struct {
	SiswaID uuid.UUID
	Judul   string
	Nilai   int
}

func (TugasDinilai) eventName() string { return "tugas.dinilai" }
