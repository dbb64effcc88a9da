package adaptor

import (
	"net/http"

	"ticket-service/internal/dto/request"
	"ticket-service/internal/usecase"
	"ticket-service/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovie handles GET /api/movies/{name}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovie(r.Context(), nameParam(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// CreateMovie handles POST /api/admin/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /api/admin/movies/{name}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), nameParam(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/admin/movies/{name}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovie(r.Context(), nameParam(r)); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}
