package wire

import (
	"ticket-service/internal/adaptor"
	"ticket-service/internal/usecase"
	"ticket-service/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(service.Auth, log))
		r.Post("/api/logout", authHandler.Logout)
		r.Post("/api/logout/all", authHandler.LogoutAll)
		r.Get("/api/account", authHandler.Account)
	})
}
