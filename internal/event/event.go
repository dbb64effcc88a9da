// Package event publishes screening lifecycle events to the message broker.
package event

import (
	"context"
	"time"
)

type Type string

const (
	ScreeningBooked    Type = "screening.booked"
	ScreeningCancelled Type = "screening.cancelled"
)

// ScreeningEvent carries enough for consumers to act without querying the store.
type ScreeningEvent struct {
	Type       Type   `json:"type"`
	Movie      string `json:"movie"`
	Room       string `json:"room"`
	StartsAt   string `json:"starts_at"`
	EndsAt     string `json:"ends_at"`
	OccurredAt string `json:"occurred_at"`
}

func NewScreeningEvent(typ Type, movie, room, startsAt, endsAt string) ScreeningEvent {
	return ScreeningEvent{
		Type:       typ,
		Movie:      movie,
		Room:       room,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev ScreeningEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ScreeningEvent) error { return nil }
func (NopPublisher) Close() error                                  { return nil }
