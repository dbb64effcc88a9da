package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ticket-service/internal/data/entity"
	"ticket-service/pkg/apperror"
	"ticket-service/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token into a session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
}

// AuthSession middleware untuk validasi bearer token dan session
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			session, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, apperror.ErrUnauthorized) {
					logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
					utils.ResponseUnauthorized(w, "Invalid or expired session")
					return
				}
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w)
				return
			}

			// Set context dengan session DAN token
			ctx := utils.SetSessionContext(r.Context(), session)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin - middleware cek role admin, harus dipasang setelah AuthSession
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := utils.GetSessionFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if session.Role != entity.RoleAdmin {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("username", session.Username),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
