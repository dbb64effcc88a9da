package adaptor

import (
	"encoding/json"
	"net/http"
	"net/url"

	"ticket-service/internal/usecase"
	"ticket-service/pkg/apperror"
	"ticket-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Movie     *MovieHandler
	Room      *RoomHandler
	Screening *ScreeningHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Movie:     NewMovieHandler(service.Movie, log),
		Room:      NewRoomHandler(service.Room, log),
		Screening: NewScreeningHandler(service.Screening, log),
	}
}

// decodeAndValidate writes the 400 response itself and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// nameParam returns the unescaped {name} URL parameter.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// handleServiceError maps a service error to a response by its kind.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr := apperror.FromError(err)

	switch appErr.Kind {
	case apperror.KindInternal:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w)
		return

	case apperror.KindExtending, apperror.KindBreakPeriod:
		log.Info(operation+" rejected",
			zap.String("reason", string(appErr.Kind)),
			zap.String("operation", operation))

	default:
		log.Warn(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
	}

	utils.ResponseAppError(w, appErr)
}
