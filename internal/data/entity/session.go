package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the signed-in state of one client. It is passed explicitly
// through request contexts instead of living in process-wide state.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Username  string     `db:"username"`
	Role      UserRole   `db:"role"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

func (s *Session) Valid(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
