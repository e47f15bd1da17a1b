package notifclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Tracker memegang snapshot notifikasi milik satu user dan menerapkan
// mutasi read-state secara optimistik: ubah state lokal dulu, baru panggil
// server. Penolakan bersih dari server (APIError) di-rollback parsial ke
// state sebelumnya; error transport memicu reconcile penuh karena state
// lokal pra-error tidak bisa dipercaya.
type Tracker struct {
	client *Client

	mu            sync.Mutex
	notifications []Notification
	unread        int64
}

func NewTracker(client *Client) *Tracker {
	return &Tracker{client: client}
}

// Reconcile menarik ulang list + unread count dari server. Ini sumber
// kebenaran; counter lokal hanya view turunan.
func (t *Tracker) Reconcile(ctx context.Context) error {
	list, err := t.client.List(ctx, 1, 20)
	if err != nil {
		return err
	}
	count, err := t.client.UnreadCount(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.notifications = list
	t.unread = count
	t.mu.Unlock()
	return nil
}

// UnreadCount mengembalikan counter lokal saat ini.
func (t *Tracker) UnreadCount() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unread
}

// Notifications mengembalikan salinan snapshot lokal.
func (t *Tracker) Notifications() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Notification, len(t.notifications))
	copy(out, t.notifications)
	return out
}

// MarkRead menandai satu notifikasi terbaca. Optimistik: flip flag +
// turunkan counter dulu. Kalau server menolak bersih, hanya item itu yang
// dikembalikan (bukan refetch penuh).
func (t *Tracker) MarkRead(ctx context.Context, id uuid.UUID) error {
	t.mu.Lock()
	idx := -1
	for i := range t.notifications {
		if t.notifications[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || t.notifications[idx].Dibaca {
		t.mu.Unlock()
		return nil
	}
	t.notifications[idx].Dibaca = true
	t.unread--
	t.mu.Unlock()

	err := t.client.MarkRead(ctx, id)
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.mu.Lock()
		for i := range t.notifications {
			if t.notifications[i].ID == id {
				t.notifications[i].Dibaca = false
				t.unread++
				break
			}
		}
		t.mu.Unlock()
		return err
	}

	// error transport, state lokal tidak bisa dipercaya
	if recErr := t.Reconcile(ctx); recErr != nil {
		return errors.Join(err, recErr)
	}
	return err
}

// MarkAllRead menandai semua terbaca. Optimistik: nolkan counter dulu;
// penolakan bersih mengembalikan flag per item dan total unread sebelumnya.
func (t *Tracker) MarkAllRead(ctx context.Context) error {
	t.mu.Lock()
	prevUnread := t.unread
	prevFlags := make([]bool, len(t.notifications))
	for i := range t.notifications {
		prevFlags[i] = t.notifications[i].Dibaca
		t.notifications[i].Dibaca = true
	}
	t.unread = 0
	t.mu.Unlock()

	err := t.client.MarkAllRead(ctx)
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.mu.Lock()
		for i := range t.notifications {
			if i < len(prevFlags) {
				t.notifications[i].Dibaca = prevFlags[i]
			}
		}
		t.unread = prevUnread
		t.mu.Unlock()
		return err
	}

	if recErr := t.Reconcile(ctx); recErr != nil {
		return errors.Join(err, recErr)
	}
	return err
}

// Poll menjalankan reconcile berkala sampai ctx selesai. Ini pengisi celah
// untuk push realtime yang terlewat; push sendiri at-most-once best-effort.
func (t *Tracker) Poll(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = t.Reconcile(ctx)
		}
	}
}
