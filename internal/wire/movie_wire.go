package wire

import (
	"ticket-service/internal/adaptor"
	"ticket-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/{name}", movieHandler.GetMovie)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		adminOnly(r, service, log)

		r.Post("/", movieHandler.CreateMovie)         // POST /api/admin/movies
		r.Put("/{name}", movieHandler.UpdateMovie)    // PUT /api/admin/movies/{name}
		r.Delete("/{name}", movieHandler.DeleteMovie) // DELETE /api/admin/movies/{name}
	})
}
