package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/notifications/model"
	"sekolahku_backend/internals/realtime"
)

type fakeRecipients struct {
	guruAdmin []uuid.UUID
	siswa     []uuid.UUID
	// jurusan yang diminta pada panggilan Siswa terakhir
	askedJurusan string
	err          error
}

func (f *fakeRecipients) GuruDanAdmin(ctx context.Context) ([]uuid.UUID, error) {
	return f.guruAdmin, f.err
}

func (f *fakeRecipients) Siswa(ctx context.Context, jurusan string) ([]uuid.UUID, error) {
	f.askedJurusan = jurusan
	return f.siswa, f.err
}

type fakeStore struct {
	mu      sync.Mutex
	created []model.NotifikasiModel
	failFor map[uuid.UUID]error
}

func (f *fakeStore) Create(ctx context.Context, n *model.NotifikasiModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[n.UserID]; ok {
		return err
	}
	f.created = append(f.created, *n)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []uuid.UUID
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, userID uuid.UUID, payload realtime.NotificationPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, userID)
	return nil
}

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDispatchAbsensiDiajukan(t *testing.T) {
	guru1, guru2, admin := uuid.New(), uuid.New(), uuid.New()
	rec := &fakeRecipients{guruAdmin: []uuid.UUID{guru1, guru2, admin}}
	store := &fakeStore{}
	pub := &fakePublisher{}
	d := NewDispatcher(rec, store, pub, silentLogger())

	tanggal := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	created, err := d.Dispatch(context.Background(), AbsensiDiajukan{
		OwnerID:   uuid.New(),
		OwnerName: "Budi",
		Tanggal:   tanggal,
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(created) != 3 {
		t.Fatalf("dibuat %d notifikasi, mau 3 (satu per guru/admin)", len(created))
	}
	if len(pub.published) != 3 {
		t.Fatalf("dipublish %d, mau 3", len(pub.published))
	}

	n := created[0]
	if n.Judul != "Absensi Pending: Budi" {
		t.Errorf("judul = %q", n.Judul)
	}
	if n.Pesan != "Budi telah mengajukan absensi pada 10/03/2025 dan menunggu persetujuan" {
		t.Errorf("pesan = %q", n.Pesan)
	}
	if n.Tipe != constants.NotifAbsenPending {
		t.Errorf("tipe = %q, mau %q", n.Tipe, constants.NotifAbsenPending)
	}
	if n.Dibaca {
		t.Error("notifikasi baru sudah terbaca")
	}
}

func TestDispatchTugasDibuatFilterJurusan(t *testing.T) {
	rec := &fakeRecipients{siswa: []uuid.UUID{uuid.New()}}
	d := NewDispatcher(rec, &fakeStore{}, &fakePublisher{}, silentLogger())

	t.Run("mapel JURUSAN memfilter siswa", func(t *testing.T) {
		_, err := d.Dispatch(context.Background(), TugasDibuat{
			Judul:         "PBO Lanjut",
			MataPelajaran: constants.MapelJurusan,
			Jurusan:       "RPL",
		})
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if rec.askedJurusan != "RPL" {
			t.Errorf("filter jurusan = %q, mau RPL", rec.askedJurusan)
		}
	})

	t.Run("mapel umum ke semua siswa", func(t *testing.T) {
		_, err := d.Dispatch(context.Background(), TugasDibuat{
			Judul:         "Aljabar",
			MataPelajaran: constants.MapelMTK,
		})
		if err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if rec.askedJurusan != "" {
			t.Errorf("filter jurusan = %q, mau kosong", rec.askedJurusan)
		}
	})
}

func TestDispatchGagalSatuPenerimaLanjut(t *testing.T) {
	ok1, gagal, ok2 := uuid.New(), uuid.New(), uuid.New()
	rec := &fakeRecipients{guruAdmin: []uuid.UUID{ok1, gagal, ok2}}
	store := &fakeStore{failFor: map[uuid.UUID]error{gagal: errors.New("insert gagal")}}
	pub := &fakePublisher{}
	d := NewDispatcher(rec, store, pub, silentLogger())

	created, err := d.Dispatch(context.Background(), AbsensiDiajukan{
		OwnerID:   uuid.New(),
		OwnerName: "Siti",
		Tanggal:   time.Now(),
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(created) != 2 {
		t.Fatalf("dibuat %d, mau 2 (penerima gagal dilewati)", len(created))
	}
	for _, n := range created {
		if n.UserID == gagal {
			t.Error("penerima yang gagal ikut tercatat")
		}
	}
	if len(pub.published) != 2 {
		t.Errorf("dipublish %d, mau 2", len(pub.published))
	}
}

func TestDispatchPublishGagalTidakMenggagalkan(t *testing.T) {
	owner := uuid.New()
	store := &fakeStore{}
	pub := &fakePublisher{err: errors.New("redis down")}
	d := NewDispatcher(&fakeRecipients{}, store, pub, silentLogger())

	created, err := d.Dispatch(context.Background(), AbsensiDisetujui{
		OwnerID: owner,
		Tanggal: time.Now(),
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("dibuat %d, mau 1: record tetap tersimpan walau publish gagal", len(created))
	}
	if created[0].UserID != owner {
		t.Errorf("penerima = %v, mau pemilik absensi", created[0].UserID)
	}
}

func TestDispatchLookupGagal(t *testing.T) {
	rec := &fakeRecipients{err: errors.New("db down")}
	d := NewDispatcher(rec, &fakeStore{}, &fakePublisher{}, silentLogger())

	if _, err := d.Dispatch(context.Background(), AbsensiDiajukan{
		OwnerID: uuid.New(), OwnerName: "Budi", Tanggal: time.Now(),
	}); err == nil {
		t.Fatal("Dispatch() nil error padahal lookup penerima gagal")
	}
}

func TestDispatchPengumpulanTerlambat(t *testing.T) {
	guru := uuid.New()
	store := &fakeStore{}
	d := NewDispatcher(&fakeRecipients{}, store, &fakePublisher{}, silentLogger())

	created, err := d.Dispatch(context.Background(), TugasDikumpulkan{
		GuruID:    guru,
		Judul:     "Essay",
		NamaSiswa: "Budi",
		Terlambat: true,
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(created) != 1 || created[0].UserID != guru {
		t.Fatalf("penerima = %v, mau hanya pembuat tugas", created)
	}
	if created[0].Tipe != constants.NotifTugasTerlambat {
		t.Errorf("tipe = %q, mau %q", created[0].Tipe, constants.NotifTugasTerlambat)
	}
}

func TestDispatchTugasDinilai(t *testing.T) {
	siswa := uuid.New()
	store := &fakeStore{}
	d := NewDispatcher(&fakeRecipients{}, store, &fakePublisher{}, silentLogger())

	created, err := d.Dispatch(context.Background(), TugasDinilai{
		SiswaID: siswa,
		Judul:   "Essay",
		Nilai:   88,
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(created) != 1 || created[0].UserID != siswa {
		t.Fatalf("penerima = %v, mau pemilik pengumpulan", created)
	}
	if created[0].Pesan != `Tugas "Essay" sudah dinilai dengan nilai 88` {
		t.Errorf("pesan = %q", created[0].Pesan)
	}
}
