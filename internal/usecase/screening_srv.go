package usecase

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"ticket-service/internal/data/entity"
	"ticket-service/internal/data/repository"
	"ticket-service/internal/dto/response"
	"ticket-service/internal/event"
	"ticket-service/internal/schedule"
	"ticket-service/pkg/apperror"
	"ticket-service/pkg/lock"
	"ticket-service/pkg/metrics"
	"ticket-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreeningService interface {
	// Book adds a screening if it neither overlaps another screening in the
	// room nor violates a break. Rejections leave the timetable untouched.
	Book(ctx context.Context, movieName, roomName string, startsAt time.Time) (*response.ScreeningResponse, error)
	Cancel(ctx context.Context, movieName, roomName string, startsAt time.Time) error
	List(ctx context.Context) iter.Seq2[response.ScreeningResponse, error]
	Timetable(ctx context.Context, roomName string) (*response.TimetableResponse, error)
	// VerifyTimetables re-checks every room against the scheduling rules.
	VerifyTimetables(ctx context.Context) error
}

type screeningService struct {
	repo      *repository.Repository
	locker    lock.Locker
	publisher event.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
}

func NewScreeningService(
	repo *repository.Repository,
	locker lock.Locker,
	publisher event.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) ScreeningService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &screeningService{
		repo:      repo,
		locker:    locker,
		publisher: publisher,
		metrics:   m,
		log:       log.With(zap.String("service", "screening")),
	}
}

func (s *screeningService) Book(ctx context.Context, movieName, roomName string, startsAt time.Time) (*response.ScreeningResponse, error) {
	startsAt = startsAt.Truncate(time.Minute)

	unlock, err := lock.LockAll(ctx, s.locker, lock.MovieKey(movieName), lock.RoomKey(roomName))
	if err != nil {
		return nil, fmt.Errorf("book screening: %w", err)
	}
	defer unlock()

	movie, room, err := s.resolve(ctx, movieName, roomName)
	if err != nil {
		return nil, err
	}

	booked, err := s.repo.Screening.FindByRoom(ctx, room.ID)
	if err != nil {
		s.metrics.RecordBooking("error")
		return nil, fmt.Errorf("load timetable of %s: %w", roomName, err)
	}

	slots, err := s.slots(ctx, booked, map[uuid.UUID]*entity.Movie{movie.ID: movie})
	if err != nil {
		s.metrics.RecordBooking("error")
		return nil, err
	}

	screening := &entity.Screening{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		MovieID:    movie.ID,
		RoomID:     room.ID,
		StartsAt:   startsAt,
	}
	candidate := schedule.Slot{ID: screening.ID, Start: startsAt, Length: movie.Duration()}

	decision := schedule.Check(candidate, slots)
	if decision.Verdict != schedule.Accept {
		s.metrics.RecordBooking(decision.Verdict.String())
		fields := []zap.Field{
			zap.String("movie", movieName),
			zap.String("room", roomName),
			zap.Time("starts_at", startsAt),
			zap.Stringer("verdict", decision.Verdict),
		}
		if decision.Conflict != nil {
			fields = append(fields, zap.Time("conflicts_with", decision.Conflict.Start))
		}
		s.log.Info("Screening rejected", fields...)
		return nil, decision.Err()
	}

	if err := s.repo.Screening.Insert(ctx, screening); err != nil {
		s.metrics.RecordBooking("error")
		s.log.Error("Failed to insert screening", zap.Error(err))
		return nil, err
	}
	s.metrics.RecordBooking(decision.Verdict.String())

	s.publish(ctx, event.ScreeningBooked, movie, room, candidate)
	s.log.Info("Screening booked",
		zap.String("movie", movieName),
		zap.String("room", roomName),
		zap.Time("starts_at", startsAt),
	)

	res := response.ScreeningToResponse(screening, movie, room)
	return &res, nil
}

func (s *screeningService) Cancel(ctx context.Context, movieName, roomName string, startsAt time.Time) error {
	startsAt = startsAt.Truncate(time.Minute)

	unlock, err := lock.LockAll(ctx, s.locker, lock.MovieKey(movieName), lock.RoomKey(roomName))
	if err != nil {
		return fmt.Errorf("cancel screening: %w", err)
	}
	defer unlock()

	movie, room, err := s.resolve(ctx, movieName, roomName)
	if err != nil {
		return err
	}

	screening, err := s.repo.Screening.FindExact(ctx, movie.ID, room.ID, startsAt)
	if err != nil {
		return fmt.Errorf("find screening: %w", err)
	}
	if screening == nil {
		return apperror.NotFound(apperror.SubjectScreening)
	}

	if err := s.repo.Screening.Remove(ctx, screening); err != nil {
		return err
	}
	s.metrics.RecordCancellation()

	s.publish(ctx, event.ScreeningCancelled, movie, room,
		schedule.Slot{ID: screening.ID, Start: screening.StartsAt, Length: movie.Duration()})
	s.log.Info("Screening cancelled",
		zap.String("movie", movieName),
		zap.String("room", roomName),
		zap.Time("starts_at", startsAt),
	)
	return nil
}

// List is lazy: nothing is read until the sequence is ranged over, and every
// range reads the current timetable.
func (s *screeningService) List(ctx context.Context) iter.Seq2[response.ScreeningResponse, error] {
	return func(yield func(response.ScreeningResponse, error) bool) {
		movies := map[uuid.UUID]*entity.Movie{}
		rooms := map[uuid.UUID]*entity.Room{}

		for screening, err := range s.repo.Screening.FindAll(ctx) {
			if err != nil {
				yield(response.ScreeningResponse{}, fmt.Errorf("list screenings: %w", err))
				return
			}

			movie, err := s.movieByID(ctx, screening.MovieID, movies)
			if err != nil {
				yield(response.ScreeningResponse{}, err)
				return
			}
			room, ok := rooms[screening.RoomID]
			if !ok {
				room, err = s.repo.Room.FindByID(ctx, screening.RoomID)
				if err != nil {
					yield(response.ScreeningResponse{}, fmt.Errorf("resolve room: %w", err))
					return
				}
				if room == nil {
					yield(response.ScreeningResponse{}, fmt.Errorf("screening %s references missing room %s: %w",
						screening.ID, screening.RoomID, apperror.ErrInternal))
					return
				}
				rooms[room.ID] = room
			}

			if !yield(response.ScreeningToResponse(screening, movie, room), nil) {
				return
			}
		}
	}
}

func (s *screeningService) Timetable(ctx context.Context, roomName string) (*response.TimetableResponse, error) {
	room, err := s.repo.Room.FindByName(ctx, roomName)
	if err != nil {
		return nil, fmt.Errorf("find room %s: %w", roomName, err)
	}
	if room == nil {
		return nil, apperror.NotFound(apperror.SubjectRoom)
	}

	booked, err := s.repo.Screening.FindByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("load timetable of %s: %w", roomName, err)
	}
	slices.SortFunc(booked, func(a, b *entity.Screening) int { return a.StartsAt.Compare(b.StartsAt) })

	movies := map[uuid.UUID]*entity.Movie{}
	res := &response.TimetableResponse{Room: room.Name, Screenings: []response.TimetableEntry{}}
	for _, screening := range booked {
		movie, err := s.movieByID(ctx, screening.MovieID, movies)
		if err != nil {
			return nil, err
		}
		slot := schedule.Slot{Start: screening.StartsAt, Length: movie.Duration()}
		res.Screenings = append(res.Screenings, response.TimetableEntry{
			Movie:       movie.Name,
			StartsAt:    utils.FormatScreeningTime(slot.Start),
			EndsAt:      utils.FormatScreeningTime(slot.End()),
			BreakEndsAt: utils.FormatScreeningTime(slot.BreakEnd()),
		})
	}
	return res, nil
}

func (s *screeningService) VerifyTimetables(ctx context.Context) error {
	movies := map[uuid.UUID]*entity.Movie{}
	for room, err := range s.repo.Room.FindAll(ctx) {
		if err != nil {
			return fmt.Errorf("verify timetables: %w", err)
		}
		booked, err := s.repo.Screening.FindByRoom(ctx, room.ID)
		if err != nil {
			return fmt.Errorf("load timetable of %s: %w", room.Name, err)
		}
		slots, err := s.slots(ctx, booked, movies)
		if err != nil {
			return err
		}
		if err := schedule.Validate(slots); err != nil {
			return fmt.Errorf("room %s: %w", room.Name, err)
		}
	}
	return nil
}

// resolve looks up both names and reports which of them is missing.
func (s *screeningService) resolve(ctx context.Context, movieName, roomName string) (*entity.Movie, *entity.Room, error) {
	movie, err := s.repo.Movie.FindByName(ctx, movieName)
	if err != nil {
		return nil, nil, fmt.Errorf("find movie %s: %w", movieName, err)
	}
	room, err := s.repo.Room.FindByName(ctx, roomName)
	if err != nil {
		return nil, nil, fmt.Errorf("find room %s: %w", roomName, err)
	}

	switch {
	case movie == nil && room == nil:
		return nil, nil, apperror.NotFound(apperror.SubjectBoth)
	case movie == nil:
		return nil, nil, apperror.NotFound(apperror.SubjectMovie)
	case room == nil:
		return nil, nil, apperror.NotFound(apperror.SubjectRoom)
	}
	return movie, room, nil
}

func (s *screeningService) slots(ctx context.Context, booked []*entity.Screening, movies map[uuid.UUID]*entity.Movie) ([]schedule.Slot, error) {
	slots := make([]schedule.Slot, 0, len(booked))
	for _, screening := range booked {
		movie, err := s.movieByID(ctx, screening.MovieID, movies)
		if err != nil {
			return nil, err
		}
		slots = append(slots, schedule.Slot{
			ID:     screening.ID,
			Start:  screening.StartsAt,
			Length: movie.Duration(),
		})
	}
	return slots, nil
}

func (s *screeningService) movieByID(ctx context.Context, id uuid.UUID, cache map[uuid.UUID]*entity.Movie) (*entity.Movie, error) {
	if movie, ok := cache[id]; ok {
		return movie, nil
	}
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("resolve movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("screening references missing movie %s: %w", id, apperror.ErrInternal)
	}
	cache[id] = movie
	return movie, nil
}

// publish is best effort: the timetable change is already committed.
func (s *screeningService) publish(ctx context.Context, typ event.Type, movie *entity.Movie, room *entity.Room, slot schedule.Slot) {
	ev := event.NewScreeningEvent(typ, movie.Name, room.Name,
		utils.FormatScreeningTime(slot.Start), utils.FormatScreeningTime(slot.End()))
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("Failed to publish screening event",
			zap.Error(err),
			zap.String("type", string(typ)),
		)
	}
}
