package realtime

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

func TestChannelName(t *testing.T) {
	id := uuid.MustParse("4f5e6c1a-0b2d-4e3f-8a9b-1c2d3e4f5a6b")
	got := ChannelName(id)
	want := "user.4f5e6c1a-0b2d-4e3f-8a9b-1c2d3e4f5a6b"
	if got != want {
		t.Errorf("ChannelName() = %q, mau %q", got, want)
	}
}

func TestHubPublishHanyaKeChannelUser(t *testing.T) {
	hub := NewHub()
	penerima := uuid.New()
	orangLain := uuid.New()

	chPenerima, cancelA := hub.Subscribe(penerima, 4)
	defer cancelA()
	chLain, cancelB := hub.Subscribe(orangLain, 4)
	defer cancelB()

	payload := NotificationPayload{ID: uuid.New(), Judul: "Tugas Dinilai", Tipe: constants.NotifTugasDinilai}
	if err := hub.Publish(context.Background(), penerima, payload); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case env := <-chPenerima:
		if env.Event != constants.RealtimeEventName {
			t.Errorf("event = %q, mau %q", env.Event, constants.RealtimeEventName)
		}
		if env.Data.ID != payload.ID {
			t.Errorf("payload id = %v, mau %v", env.Data.ID, payload.ID)
		}
	default:
		t.Fatal("penerima tidak menerima pesan")
	}

	select {
	case env := <-chLain:
		t.Fatalf("user lain menerima pesan: %+v", env)
	default:
	}
}

func TestHubBufferPenuhDrop(t *testing.T) {
	hub := NewHub()
	user := uuid.New()

	ch, cancel := hub.Subscribe(user, 1)
	defer cancel()

	ctx := context.Background()
	if err := hub.Publish(ctx, user, NotificationPayload{Judul: "satu"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	// buffer penuh, yang ini harus di-drop tanpa blocking
	if err := hub.Publish(ctx, user, NotificationPayload{Judul: "dua"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	env := <-ch
	if env.Data.Judul != "satu" {
		t.Errorf("pesan pertama = %q, mau %q", env.Data.Judul, "satu")
	}
	select {
	case env := <-ch:
		t.Fatalf("pesan kedua tidak di-drop: %+v", env)
	default:
	}
}

func TestHubCancelMelepasSubscription(t *testing.T) {
	hub := NewHub()
	user := uuid.New()

	ch, cancel := hub.Subscribe(user, 1)
	cancel()

	if _, open := <-ch; open {
		t.Error("channel masih terbuka setelah cancel")
	}
	// publish ke user tanpa subscriber tetap sukses (fire-and-forget)
	if err := hub.Publish(context.Background(), user, NotificationPayload{}); err != nil {
		t.Errorf("Publish() setelah cancel error = %v", err)
	}
}

func TestHubPublishTanpaSubscriber(t *testing.T) {
	hub := NewHub()
	if err := hub.Publish(context.Background(), uuid.New(), NotificationPayload{Judul: "hampa"}); err != nil {
		t.Errorf("Publish() error = %v", err)
	}
}
