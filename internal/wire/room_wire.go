package wire

import (
	"ticket-service/internal/adaptor"
	"ticket-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	screeningHandler *adaptor.ScreeningHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/rooms", roomHandler.GetRooms)
	r.Get("/api/rooms/{name}/timetable", screeningHandler.GetTimetable)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/rooms", func(r chi.Router) {
		adminOnly(r, service, log)

		r.Post("/", roomHandler.CreateRoom)
		r.Put("/{name}", roomHandler.UpdateRoom)
		r.Delete("/{name}", roomHandler.DeleteRoom)
	})
}
