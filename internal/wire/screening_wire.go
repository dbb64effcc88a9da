package wire

import (
	"ticket-service/internal/adaptor"
	"ticket-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireScreening(
	r chi.Router,
	screeningHandler *adaptor.ScreeningHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/screenings", screeningHandler.GetScreenings)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/screenings", func(r chi.Router) {
		adminOnly(r, service, log)

		r.Post("/", screeningHandler.CreateScreening)
		r.Delete("/", screeningHandler.DeleteScreening) // body: movie, room, starts_at
	})
}
