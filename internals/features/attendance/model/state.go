// file: internals/features/attendance/model/state.go
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
)

// Aturan transisi absensi: pending → hadir | tidak_hadir, sekali saja.
// Fungsi murni terhadap struct; persistence urusan controller.
var (
	ErrSudahDiproses  = fmt.Errorf("absensi sudah diproses: %w", helper.ErrInvalidTransition)
	ErrProsesSendiri  = fmt.Errorf("tidak boleh memproses absensi sendiri: %w", helper.ErrForbidden)
	ErrAlasanKosong   = fmt.Errorf("alasan penolakan wajib diisi: %w", helper.ErrValidation)
	ErrSudahAbsenHari = fmt.Errorf("sudah absen hari ini: %w", helper.ErrDuplicateState)
)

// IsPending melaporkan apakah record masih bisa ditransisikan.
func (a *AbsensiModel) IsPending() bool {
	return a.Status == constants.AbsensiPending
}

// Approve mentransisikan pending → hadir. Approver wajib beda dari pemilik.
func (a *AbsensiModel) Approve(actorID uuid.UUID) error {
	if actorID == a.UserID {
		return ErrProsesSendiri
	}
	if !a.IsPending() {
		return ErrSudahDiproses
	}
	a.Status = constants.AbsensiHadir
	a.ApprovedBy = &actorID
	return nil
}

// Reject mentransisikan pending → tidak_hadir dan mengganti keterangan
// dengan alasan penolakan (wajib non-kosong).
func (a *AbsensiModel) Reject(actorID uuid.UUID, alasan string) error {
	if actorID == a.UserID {
		return ErrProsesSendiri
	}
	alasan = strings.TrimSpace(alasan)
	if alasan == "" {
		return ErrAlasanKosong
	}
	if !a.IsPending() {
		return ErrSudahDiproses
	}
	a.Status = constants.AbsensiTidakHadir
	a.ApprovedBy = &actorID
	a.Keterangan = &alasan
	return nil
}
