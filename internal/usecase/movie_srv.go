package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-service/internal/data/entity"
	"ticket-service/internal/data/repository"
	"ticket-service/internal/dto/request"
	"ticket-service/internal/dto/response"
	"ticket-service/pkg/apperror"
	"ticket-service/pkg/lock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, name string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, name string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, name string) error
}

type movieService struct {
	repo   *repository.Repository
	locker lock.Locker
	log    *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	locker lock.Locker,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:   repo,
		locker: locker,
		log:    log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies := []response.MovieResponse{}
	for movie, err := range s.repo.Movie.FindAll(ctx) {
		if err != nil {
			s.log.Error("Failed to get movies", zap.Error(err))
			return nil, fmt.Errorf("get movies: %w", err)
		}
		movies = append(movies, response.MovieToResponse(movie))
	}

	s.log.Debug("Movies retrieved", zap.Int("count", len(movies)))
	return movies, nil
}

func (s *movieService) GetMovie(ctx context.Context, name string) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", name, err)
	}
	if movie == nil {
		return nil, apperror.NotFound(apperror.SubjectMovie)
	}

	res := response.MovieToResponse(movie)
	return &res, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.MovieKey(req.Name))
	if err != nil {
		return nil, fmt.Errorf("lock movie: %w", err)
	}
	defer unlock()

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:   req.Name,
		Genre:  req.Genre,
		Length: req.Length,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Warn("Failed to create movie", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}

	s.log.Info("Movie created",
		zap.String("name", movie.Name),
		zap.Int("length", movie.Length),
	)

	res := response.MovieToResponse(movie)
	return &res, nil
}

// UpdateMovie changes genre and length. The length is frozen while screenings
// reference the movie, otherwise booked intervals would silently move.
func (s *movieService) UpdateMovie(ctx context.Context, name string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.MovieKey(name))
	if err != nil {
		return nil, fmt.Errorf("lock movie: %w", err)
	}
	defer unlock()

	movie, err := s.repo.Movie.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("update movie %s: %w", name, err)
	}
	if movie == nil {
		return nil, apperror.NotFound(apperror.SubjectMovie)
	}

	if movie.Length != req.Length {
		count, err := s.repo.Screening.CountByMovie(ctx, movie.ID)
		if err != nil {
			return nil, fmt.Errorf("count screenings of %s: %w", name, err)
		}
		if count > 0 {
			return nil, apperror.InUse(apperror.SubjectMovie,
				fmt.Sprintf("cannot change the length of a movie with %d screening(s)", count))
		}
	}

	movie.Genre = req.Genre
	movie.Length = req.Length
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("name", name))
		return nil, err
	}

	s.log.Info("Movie updated", zap.String("name", name))
	res := response.MovieToResponse(movie)
	return &res, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, name string) error {
	unlock, err := s.locker.Lock(ctx, lock.MovieKey(name))
	if err != nil {
		return fmt.Errorf("lock movie: %w", err)
	}
	defer unlock()

	movie, err := s.repo.Movie.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("delete movie %s: %w", name, err)
	}
	if movie == nil {
		return apperror.NotFound(apperror.SubjectMovie)
	}

	count, err := s.repo.Screening.CountByMovie(ctx, movie.ID)
	if err != nil {
		return fmt.Errorf("count screenings of %s: %w", name, err)
	}
	if count > 0 {
		return apperror.InUse(apperror.SubjectMovie,
			fmt.Sprintf("the movie still has %d screening(s)", count))
	}

	if err := s.repo.Movie.Delete(ctx, name); err != nil {
		return err
	}

	s.log.Info("Movie deleted", zap.String("name", name))
	return nil
}
