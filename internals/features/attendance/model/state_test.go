package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
)

func pendingAbsensi(ownerID uuid.UUID) AbsensiModel {
	return AbsensiModel{
		ID:     uuid.New(),
		UserID: ownerID,
		Status: constants.AbsensiPending,
	}
}

func TestApprove(t *testing.T) {
	owner := uuid.New()
	guru := uuid.New()

	t.Run("pending jadi hadir", func(t *testing.T) {
		a := pendingAbsensi(owner)
		if err := a.Approve(guru); err != nil {
			t.Fatalf("Approve() error = %v", err)
		}
		if a.Status != constants.AbsensiHadir {
			t.Errorf("status = %q, mau %q", a.Status, constants.AbsensiHadir)
		}
		if a.ApprovedBy == nil || *a.ApprovedBy != guru {
			t.Errorf("ApprovedBy = %v, mau %v", a.ApprovedBy, guru)
		}
	})

	t.Run("approve diri sendiri ditolak", func(t *testing.T) {
		a := pendingAbsensi(owner)
		err := a.Approve(owner)
		if !errors.Is(err, ErrProsesSendiri) {
			t.Fatalf("Approve() error = %v, mau ErrProsesSendiri", err)
		}
		if !errors.Is(err, helper.ErrForbidden) {
			t.Errorf("error tidak membungkus ErrForbidden: %v", err)
		}
		if a.Status != constants.AbsensiPending {
			t.Errorf("status berubah jadi %q padahal gagal", a.Status)
		}
	})

	t.Run("sudah diproses tidak bisa lagi", func(t *testing.T) {
		a := pendingAbsensi(owner)
		if err := a.Approve(guru); err != nil {
			t.Fatalf("approve pertama: %v", err)
		}
		err := a.Approve(uuid.New())
		if !errors.Is(err, ErrSudahDiproses) {
			t.Fatalf("approve kedua error = %v, mau ErrSudahDiproses", err)
		}
		if !errors.Is(err, helper.ErrInvalidTransition) {
			t.Errorf("error tidak membungkus ErrInvalidTransition: %v", err)
		}
	})
}

func TestReject(t *testing.T) {
	owner := uuid.New()
	guru := uuid.New()

	t.Run("pending jadi tidak_hadir dengan alasan", func(t *testing.T) {
		a := pendingAbsensi(owner)
		if err := a.Reject(guru, "tanpa keterangan"); err != nil {
			t.Fatalf("Reject() error = %v", err)
		}
		if a.Status != constants.AbsensiTidakHadir {
			t.Errorf("status = %q, mau %q", a.Status, constants.AbsensiTidakHadir)
		}
		if a.Keterangan == nil || *a.Keterangan != "tanpa keterangan" {
			t.Errorf("keterangan = %v, mau alasan penolakan", a.Keterangan)
		}
	})

	t.Run("alasan kosong ditolak", func(t *testing.T) {
		a := pendingAbsensi(owner)
		err := a.Reject(guru, "   ")
		if !errors.Is(err, ErrAlasanKosong) {
			t.Fatalf("Reject() error = %v, mau ErrAlasanKosong", err)
		}
		if a.Status != constants.AbsensiPending {
			t.Errorf("status berubah jadi %q padahal gagal", a.Status)
		}
	})

	t.Run("reject diri sendiri ditolak", func(t *testing.T) {
		a := pendingAbsensi(owner)
		if err := a.Reject(owner, "alasan"); !errors.Is(err, ErrProsesSendiri) {
			t.Fatalf("Reject() error = %v, mau ErrProsesSendiri", err)
		}
	})

	t.Run("setelah approve tidak bisa reject", func(t *testing.T) {
		a := pendingAbsensi(owner)
		if err := a.Approve(guru); err != nil {
			t.Fatalf("approve: %v", err)
		}
		if err := a.Reject(guru, "telat"); !errors.Is(err, ErrSudahDiproses) {
			t.Fatalf("Reject() error = %v, mau ErrSudahDiproses", err)
		}
	})
}
