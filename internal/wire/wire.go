// internal/wire/wire.go
package wire

import (
	"net/http"

	"ticket-service/internal/adaptor"
	"ticket-service/internal/data/repository"
	"ticket-service/internal/event"
	"ticket-service/internal/usecase"
	"ticket-service/pkg/lock"
	"ticket-service/pkg/metrics"
	"ticket-service/pkg/middleware"
	"ticket-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	locker lock.Locker,
	publisher event.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, locker, publisher, m, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, m, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	m *metrics.Metrics,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(m))

	// Apply routes
	wireAuth(r, handler.Auth, service, logger)
	wireMovie(r, handler.Movie, service, logger)
	wireRoom(r, handler.Room, handler.Screening, service, logger)
	wireScreening(r, handler.Screening, service, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

// adminOnly: must be authenticated, then must be admin.
func adminOnly(r chi.Router, service *usecase.Service, log *zap.Logger) {
	r.Use(middleware.AuthSession(service.Auth, log))
	r.Use(middleware.Admin(log))
}
