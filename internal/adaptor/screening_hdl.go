package adaptor

import (
	"net/http"

	"ticket-service/internal/dto/request"
	"ticket-service/internal/dto/response"
	"ticket-service/internal/usecase"
	"ticket-service/pkg/utils"

	"go.uber.org/zap"
)

type ScreeningHandler struct {
	service usecase.ScreeningService
	log     *zap.Logger
}

func NewScreeningHandler(service usecase.ScreeningService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service: service,
		log:     log.With(zap.String("handler", "screening")),
	}
}

// GetScreenings handles GET /api/screenings
func (h *ScreeningHandler) GetScreenings(w http.ResponseWriter, r *http.Request) {
	screenings := []response.ScreeningResponse{}
	for screening, err := range h.service.List(r.Context()) {
		if err != nil {
			handleServiceError(w, h.log, err, "list screenings")
			return
		}
		screenings = append(screenings, screening)
	}

	utils.ResponseSuccess(w, "success", screenings)
}

// GetTimetable handles GET /api/rooms/{name}/timetable
func (h *ScreeningHandler) GetTimetable(w http.ResponseWriter, r *http.Request) {
	timetable, err := h.service.Timetable(r.Context(), nameParam(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get timetable")
		return
	}

	utils.ResponseSuccess(w, "success", timetable)
}

// CreateScreening handles POST /api/admin/screenings
func (h *ScreeningHandler) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var req request.ScreeningRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	startsAt, err := utils.ParseScreeningTime(req.StartsAt)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	screening, err := h.service.Book(r.Context(), req.Movie, req.Room, startsAt)
	if err != nil {
		handleServiceError(w, h.log, err, "book screening")
		return
	}

	utils.ResponseCreated(w, "Screening booked successfully", screening)
}

// DeleteScreening handles DELETE /api/admin/screenings with a JSON body
func (h *ScreeningHandler) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	var req request.ScreeningRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	startsAt, err := utils.ParseScreeningTime(req.StartsAt)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	if err := h.service.Cancel(r.Context(), req.Movie, req.Room, startsAt); err != nil {
		handleServiceError(w, h.log, err, "cancel screening")
		return
	}

	utils.ResponseSuccess(w, "Screening cancelled successfully", nil)
}
