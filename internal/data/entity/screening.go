package entity

import (
	"time"

	"github.com/google/uuid"
)

// Screening is identified by (MovieID, RoomID, StartsAt).
type Screening struct {
	BaseSimple
	MovieID  uuid.UUID `db:"movie_id"`
	RoomID   uuid.UUID `db:"room_id"`
	StartsAt time.Time `db:"starts_at"`
}

// SameSlot reports whether s and o share the identifying triple.
func (s *Screening) SameSlot(o *Screening) bool {
	return s.MovieID == o.MovieID && s.RoomID == o.RoomID && s.StartsAt.Equal(o.StartsAt)
}
