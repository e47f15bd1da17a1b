// file: internals/features/assignments/model/rules.go
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
)

var (
	ErrMapelInvalid      = fmt.Errorf("mata pelajaran tidak dikenal: %w", helper.ErrValidation)
	ErrJurusanWajib      = fmt.Errorf("jurusan wajib untuk mata pelajaran JURUSAN: %w", helper.ErrValidation)
	ErrJurusanTakDipakai = fmt.Errorf("jurusan hanya untuk mata pelajaran JURUSAN: %w", helper.ErrValidation)
	ErrDeadlineLampau    = fmt.Errorf("deadline harus di masa depan: %w", helper.ErrValidation)

	ErrSudahMengumpulkan = fmt.Errorf("sudah mengumpulkan tugas ini: %w", helper.ErrDuplicateState)
	ErrNilaiInvalid      = fmt.Errorf("nilai harus 0-100: %w", helper.ErrValidation)
	ErrBukanPembuatTugas = fmt.Errorf("hanya pembuat tugas yang boleh menilai: %w", helper.ErrForbidden)
	ErrTidakBisaCancel   = fmt.Errorf("pengumpulan tidak bisa dibatalkan: %w", helper.ErrForbidden)
)

// ValidateBaru memeriksa aturan pembuatan tugas: enum mapel, jurusan
// wajib iff mapel JURUSAN, deadline di masa depan.
func (t *TugasModel) ValidateBaru(now time.Time) error {
	valid := false
	for _, m := range constants.AllMapel {
		if t.MataPelajaran == m {
			valid = true
			break
		}
	}
	if !valid {
		return ErrMapelInvalid
	}

	jurusan := strings.TrimSpace(t.JurusanValue())
	if t.MataPelajaran == constants.MapelJurusan && jurusan == "" {
		return ErrJurusanWajib
	}
	if t.MataPelajaran != constants.MapelJurusan && jurusan != "" {
		return ErrJurusanTakDipakai
	}

	if !t.Deadline.After(now) {
		return ErrDeadlineLampau
	}
	return nil
}

// NewPengumpulan membentuk pengumpulan baru; terlambat dihitung sekali di sini.
func (t *TugasModel) NewPengumpulan(userID uuid.UUID, jawabanText, fileJawaban *string, now time.Time) PengumpulanTugasModel {
	return PengumpulanTugasModel{
		ID:          uuid.New(),
		TugasID:     t.ID,
		UserID:      userID,
		JawabanText: jawabanText,
		FileJawaban: fileJawaban,
		WaktuSubmit: now,
		Terlambat:   now.After(t.Deadline),
	}
}

// Grade menimpa nilai/feedback (re-grade diperbolehkan, idempotent di data)
// tapi terlambat tidak pernah dihitung ulang. Penilai wajib pembuat tugas.
func (s *PengumpulanTugasModel) Grade(actorID, tugasCreator uuid.UUID, nilai int, feedback *string) error {
	if actorID != tugasCreator {
		return ErrBukanPembuatTugas
	}
	if nilai < 0 || nilai > 100 {
		return ErrNilaiInvalid
	}
	s.Nilai = &nilai
	s.Feedback = feedback
	return nil
}

// CanCancel: hanya pemilik, dan hanya selama belum dinilai.
func (s *PengumpulanTugasModel) CanCancel(actorID uuid.UUID) error {
	if s.UserID != actorID || s.Nilai != nil {
		return ErrTidakBisaCancel
	}
	return nil
}
