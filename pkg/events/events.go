// Package events publishes room lifecycle events to Kafka. Publishing is
// best-effort: callers log failures and never surface them to HTTP clients.
package events

import (
	"context"
	"time"
)

const (
	TypeRoomBooked    = "room.booked"
	TypeRoomCancelled = "room.cancelled"
)

// Event describes a single room state transition. RoomID doubles as the
// partition key so per-room ordering is preserved.
type Event struct {
	Type       string    `json:"type"`
	RoomID     string    `json:"roomId"`
	BookedUser string    `json:"bookedUser,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

// Nop returns a Publisher that discards everything, for deployments
// without Kafka.
func Nop() Publisher {
	return nopPublisher{}
}
