// file: internals/realtime/publisher.go
package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// NotificationPayload adalah wire DTO datar yang dikirim ke channel privat,
// terpisah dari bentuk record di storage. Versi skema dibawa oleh nama event.
type NotificationPayload struct {
	ID        uuid.UUID `json:"id"`
	Judul     string    `json:"judul"`
	Pesan     string    `json:"pesan"`
	Tipe      string    `json:"tipe"`
	CreatedAt time.Time `json:"created_at"`
}

// Envelope membungkus payload dengan nama event untuk subscriber.
type Envelope struct {
	Event string              `json:"event"`
	Data  NotificationPayload `json:"data"`
}

// Publisher mengirim payload notifikasi ke channel privat user.<id>.
// Best-effort, at-most-once: storage tetap system of record, klien yang
// ketinggalan push pulih lewat polling.
type Publisher interface {
	Publish(ctx context.Context, userID uuid.UUID, payload NotificationPayload) error
}

// ChannelName menghasilkan nama channel privat untuk satu user.
func ChannelName(userID uuid.UUID) string {
	return constants.RealtimeChannelPrefix + userID.String()
}
