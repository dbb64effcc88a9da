package usecase

import (
	"ticket-service/internal/data/repository"
	"ticket-service/internal/event"
	"ticket-service/pkg/apperror"
	"ticket-service/pkg/lock"
	"ticket-service/pkg/metrics"
	"ticket-service/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Movie     MovieService
	Room      RoomService
	Screening ScreeningService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	locker lock.Locker,
	publisher event.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		Movie:     NewMovieService(repo, locker, log),
		Room:      NewRoomService(repo, locker, log),
		Screening: NewScreeningService(repo, locker, publisher, m, log),
	}
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation("validation failed: " + utils.FormatValidationErrors(errs))
	}
	return nil
}
