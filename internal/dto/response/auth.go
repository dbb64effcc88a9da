package response

import (
	"time"

	"ticket-service/internal/data/entity"
)

type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Username  string          `json:"username"`
	Role      entity.UserRole `json:"role"`
}

// AccountResponse describes the user behind the current session.
type AccountResponse struct {
	Username string          `json:"username"`
	Role     entity.UserRole `json:"role"`
}
