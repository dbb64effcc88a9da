package adaptor

import (
	"net/http"

	"ticket-service/internal/dto/request"
	"ticket-service/internal/usecase"
	"ticket-service/pkg/utils"

	"go.uber.org/zap"
)

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

func (h *RoomHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.GetRooms(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get rooms")
		return
	}
	utils.ResponseSuccess(w, "success", rooms)
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create room")
		return
	}
	utils.ResponseCreated(w, "Room created successfully", room)
}

func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), nameParam(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update room")
		return
	}
	utils.ResponseSuccess(w, "Room updated successfully", room)
}

func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRoom(r.Context(), nameParam(r)); err != nil {
		handleServiceError(w, h.log, err, "delete room")
		return
	}
	utils.ResponseSuccess(w, "Room deleted successfully", nil)
}
