// file: internals/features/notifications/service/fanout.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/notifications/dto"
	"sekolahku_backend/internals/features/notifications/model"
	"sekolahku_backend/internals/realtime"
)

// RecipientSource menghitung himpunan penerima untuk event multi-penerima.
type RecipientSource interface {
	// GuruDanAdmin mengembalikan ID semua user ber-role guru atau admin.
	GuruDanAdmin(ctx context.Context) ([]uuid.UUID, error)
	// Siswa mengembalikan ID siswa; jurusan != "" memfilter ke jurusan itu.
	Siswa(ctx context.Context, jurusan string) ([]uuid.UUID, error)
}

// NotifikasiStore mempersist satu record notifikasi.
type NotifikasiStore interface {
	Create(ctx context.Context, n *model.NotifikasiModel) error
}

// Dispatcher adalah fan-out engine: event domain → satu record notifikasi
// per penerima → publish ke channel privat penerima. Kegagalan satu penerima
// tidak menggagalkan penerima lain; publish fire-and-forget.
type Dispatcher struct {
	recipients RecipientSource
	store      NotifikasiStore
	publisher  realtime.Publisher
	log        *logrus.Logger
}

func NewDispatcher(recipients RecipientSource, store NotifikasiStore, publisher realtime.Publisher, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		recipients: recipients,
		store:      store,
		publisher:  publisher,
		log:        log,
	}
}

type message struct {
	judul string
	pesan string
	tipe  string
}

// Dispatch menjalankan fan-out untuk satu event dan mengembalikan record
// yang berhasil dibuat. Error lookup penerima dikembalikan (tidak ada yang
// bisa dikirim); error per penerima hanya dicatat.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) ([]model.NotifikasiModel, error) {
	targets, msg, err := d.resolve(ctx, ev)
	if err != nil {
		return nil, err
	}

	created := make([]model.NotifikasiModel, 0, len(targets))
	for _, userID := range targets {
		n := model.NotifikasiModel{
			ID:        uuid.New(),
			UserID:    userID,
			Judul:     msg.judul,
			Pesan:     msg.pesan,
			Tipe:      msg.tipe,
			CreatedAt: time.Now(),
		}
		if err := d.store.Create(ctx, &n); err != nil {
			d.log.WithFields(logrus.Fields{
				"event":   ev.eventName(),
				"user_id": userID,
			}).WithError(err).Error("gagal membuat notifikasi, lanjut ke penerima berikutnya")
			continue
		}
		created = append(created, n)

		// Publish setelah record tersimpan (happens-before per penerima).
		// Gagal publish ditelan: storage tetap system of record.
		if err := d.publisher.Publish(ctx, userID, dto.ToRealtimePayload(&n)); err != nil {
			d.log.WithFields(logrus.Fields{
				"event":   ev.eventName(),
				"user_id": userID,
				"channel": realtime.ChannelName(userID),
			}).WithError(err).Warn("gagal publish notifikasi realtime")
		}
	}
	return created, nil
}

func (d *Dispatcher) resolve(ctx context.Context, ev Event) ([]uuid.UUID, message, error) {
	switch e := ev.(type) {
	case AbsensiDiajukan:
		targets, err := d.recipients.GuruDanAdmin(ctx)
		if err != nil {
			return nil, message{}, err
		}
		return targets, message{
			judul: "Absensi Pending: " + e.OwnerName,
			pesan: fmt.Sprintf("%s telah mengajukan absensi pada %s dan menunggu persetujuan",
				e.OwnerName, formatTanggal(e.Tanggal)),
			tipe: constants.NotifAbsenPending,
		}, nil

	case AbsensiDisetujui:
		return []uuid.UUID{e.OwnerID}, message{
			judul: "Absensi Disetujui",
			pesan: fmt.Sprintf("Absensi Anda pada tanggal %s telah disetujui", formatTanggal(e.Tanggal)),
			tipe:  constants.NotifAbsenApproved,
		}, nil

	case AbsensiDitolak:
		return []uuid.UUID{e.OwnerID}, message{
			judul: "Absensi Ditolak",
			pesan: fmt.Sprintf("Absensi Anda pada tanggal %s ditolak. Alasan: %s",
				formatTanggal(e.Tanggal), e.Alasan),
			tipe: constants.NotifAbsenRejected,
		}, nil

	case TugasDibuat:
		jurusan := ""
		if e.MataPelajaran == constants.MapelJurusan {
			jurusan = e.Jurusan
		}
		targets, err := d.recipients.Siswa(ctx, jurusan)
		if err != nil {
			return nil, message{}, err
		}
		return targets, message{
			judul: "Tugas Baru: " + e.Judul,
			pesan: "Tugas baru telah ditambahkan untuk mata pelajaran " + e.MataPelajaran,
			tipe:  constants.NotifTugasBaru,
		}, nil

	case TugasDikumpulkan:
		if e.Terlambat {
			return []uuid.UUID{e.GuruID}, message{
				judul: "Pengumpulan Terlambat: " + e.Judul,
				pesan: fmt.Sprintf("%s mengumpulkan tugas %q terlambat", e.NamaSiswa, e.Judul),
				tipe:  constants.NotifTugasTerlambat,
			}, nil
		}
		return []uuid.UUID{e.GuruID}, message{
			judul: "Pengumpulan Tugas: " + e.Judul,
			pesan: fmt.Sprintf("%s telah mengumpulkan tugas %q", e.NamaSiswa, e.Judul),
			tipe:  constants.NotifTugasBaru,
		}, nil

	case TugasDinilai:
		return []uuid.UUID{e.SiswaID}, message{
			judul: "Tugas Dinilai",
			pesan: fmt.Sprintf("Tugas %q sudah dinilai dengan nilai %d", e.Judul, e.Nilai),
			tipe:  constants.NotifTugasDinilai,
		}, nil

	default:
		return nil, message{}, fmt.Errorf("event tidak dikenal: %s", ev.eventName())
	}
}

func formatTanggal(t time.Time) string {
	return t.Format("02/01/2006")
}
