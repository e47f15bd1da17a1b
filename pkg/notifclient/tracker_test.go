package notifclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// fakeServer meniru API notifikasi: list + unread-count dari state internal,
// respon mark-read bisa diatur per skenario.
type fakeServer struct {
	mu            sync.Mutex
	notifications []Notification
	rejectMark    bool
	markCalls     int
}

func (f *fakeServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/notifikasi":
			items := make([]string, 0, len(f.notifications))
			for _, n := range f.notifications {
				items = append(items, fmt.Sprintf(
					`{"id":%q,"judul":%q,"pesan":%q,"tipe":%q,"dibaca":%t,"created_at":%q}`,
					n.ID, n.Judul, n.Pesan, n.Tipe, n.Dibaca, n.CreatedAt.Format(time.RFC3339)))
			}
			fmt.Fprintf(w, `{"success":true,"message":"ok","data":[%s]}`, strings.Join(items, ","))

		case r.Method == http.MethodGet && r.URL.Path == "/api/notifikasi/unread-count":
			count := 0
			for _, n := range f.notifications {
				if !n.Dibaca {
					count++
				}
			}
			fmt.Fprintf(w, `{"success":true,"message":"ok","data":{"count":%d}}`, count)

		case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/read"):
			f.markCalls++
			if f.rejectMark {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"success":false,"message":"Notifikasi tidak ditemukan"}`)
				return
			}
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/notifikasi/"), "/read")
			for i := range f.notifications {
				if f.notifications[i].ID.String() == id {
					f.notifications[i].Dibaca = true
				}
			}
			fmt.Fprint(w, `{"success":true,"message":"ok"}`)

		case r.Method == http.MethodPatch && r.URL.Path == "/api/notifikasi/read-all":
			f.markCalls++
			if f.rejectMark {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"success":false,"message":"Akses ditolak"}`)
				return
			}
			for i := range f.notifications {
				f.notifications[i].Dibaca = true
			}
			fmt.Fprint(w, `{"success":true,"message":"ok"}`)

		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"success":false,"message":"tidak ditemukan"}`)
		}
	})
}

func duaNotifikasi() []Notification {
	return []Notification{
		{ID: uuid.New(), Judul: "Tugas Baru: Aljabar", Tipe: "tugas_baru", CreatedAt: time.Now().UTC().Truncate(time.Second)},
		{ID: uuid.New(), Judul: "Absensi Disetujui", Tipe: "absen_approved", CreatedAt: time.Now().UTC().Truncate(time.Second)},
	}
}

func newTrackerUntuk(t *testing.T, fs *fakeServer) (*Tracker, func()) {
	t.Helper()
	srv := httptest.NewServer(fs.handler())
	tracker := NewTracker(New(srv.URL, "token-test"))
	if err := tracker.Reconcile(context.Background()); err != nil {
		srv.Close()
		t.Fatalf("Reconcile() awal error = %v", err)
	}
	return tracker, srv.Close
}

func TestReconcile(t *testing.T) {
	fs := &fakeServer{notifications: duaNotifikasi()}
	tracker, done := newTrackerUntuk(t, fs)
	defer done()

	if got := tracker.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount() = %d, mau 2", got)
	}
	if got := len(tracker.Notifications()); got != 2 {
		t.Errorf("len(Notifications()) = %d, mau 2", got)
	}
}

func TestMarkReadOptimistik(t *testing.T) {
	fs := &fakeServer{notifications: duaNotifikasi()}
	tracker, done := newTrackerUntuk(t, fs)
	defer done()

	target := fs.notifications[0].ID
	if err := tracker.MarkRead(context.Background(), target); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if got := tracker.UnreadCount(); got != 1 {
		t.Errorf("UnreadCount() = %d, mau 1", got)
	}
	for _, n := range tracker.Notifications() {
		if n.ID == target && !n.Dibaca {
			t.Error("item target masih belum terbaca")
		}
	}

	// mark ulang item yang sama: no-op, tanpa round-trip tambahan
	calls := fs.markCalls
	if err := tracker.MarkRead(context.Background(), target); err != nil {
		t.Fatalf("MarkRead() ulang error = %v", err)
	}
	if fs.markCalls != calls {
		t.Error("mark ulang item terbaca memicu round-trip lagi")
	}
}

func TestMarkReadDitolakRollbackParsial(t *testing.T) {
	fs := &fakeServer{notifications: duaNotifikasi()}
	tracker, done := newTrackerUntuk(t, fs)
	defer done()

	fs.mu.Lock()
	fs.rejectMark = true
	fs.mu.Unlock()

	target := fs.notifications[0].ID
	err := tracker.MarkRead(context.Background(), target)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("MarkRead() error = %v, mau *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, mau 404", apiErr.Status)
	}

	// rollback hanya item itu, counter kembali
	if got := tracker.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount() = %d, mau 2 setelah rollback", got)
	}
	for _, n := range tracker.Notifications() {
		if n.ID == target && n.Dibaca {
			t.Error("item target tetap terbaca setelah rollback")
		}
	}
}

func TestMarkReadErrorTransportReconcile(t *testing.T) {
	fs := &fakeServer{notifications: duaNotifikasi()}

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			// putus koneksi di tengah: error transport di sisi klien
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("responsewriter tidak bisa di-hijack")
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Fatalf("hijack: %v", err)
			}
			conn.Close()
			return
		}
		fs.handler().ServeHTTP(w, r)
	}))
	defer proxy.Close()

	tracker := NewTracker(New(proxy.URL, "token-test"))
	if err := tracker.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile() awal error = %v", err)
	}

	target := tracker.Notifications()[0].ID
	err := tracker.MarkRead(context.Background(), target)
	if err == nil {
		t.Fatal("MarkRead() nil error padahal koneksi putus")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("error transport terdeteksi sebagai APIError: %v", err)
	}

	// reconcile penuh: state kembali ke kebenaran server (belum terbaca)
	if got := tracker.UnreadCount(); got != 2 {
		t.Errorf("UnreadCount() = %d, mau 2 setelah reconcile", got)
	}
}

func TestMarkAllRead(t *testing.T) {
	t.Run("sukses menolkan counter", func(t *testing.T) {
		fs := &fakeServer{notifications: duaNotifikasi()}
		tracker, done := newTrackerUntuk(t, fs)
		defer done()

		if err := tracker.MarkAllRead(context.Background()); err != nil {
			t.Fatalf("MarkAllRead() error = %v", err)
		}
		if got := tracker.UnreadCount(); got != 0 {
			t.Errorf("UnreadCount() = %d, mau 0", got)
		}
	})

	t.Run("ditolak mengembalikan total sebelumnya", func(t *testing.T) {
		fs := &fakeServer{notifications: duaNotifikasi()}
		tracker, done := newTrackerUntuk(t, fs)
		defer done()

		fs.mu.Lock()
		fs.rejectMark = true
		fs.mu.Unlock()

		err := tracker.MarkAllRead(context.Background())
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("MarkAllRead() error = %v, mau *APIError", err)
		}
		if got := tracker.UnreadCount(); got != 2 {
			t.Errorf("UnreadCount() = %d, mau 2 setelah rollback", got)
		}
		for _, n := range tracker.Notifications() {
			if n.Dibaca {
				t.Error("flag item tidak dikembalikan setelah rollback")
			}
		}
	})
}

func TestPollBerhentiSaatContextSelesai(t *testing.T) {
	fs := &fakeServer{notifications: duaNotifikasi()}
	tracker, done := newTrackerUntuk(t, fs)
	defer done()

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		tracker.Poll(ctx, 10*time.Millisecond)
		close(finished)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Poll tidak berhenti setelah context dibatalkan")
	}
}
