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

type RoomService interface {
	GetRooms(ctx context.Context) ([]response.RoomResponse, error)
	CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, name string, req *request.RoomUpdateRequest) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, name string) error
}

type roomService struct {
	repo   *repository.Repository
	locker lock.Locker
	log    *zap.Logger
}

func NewRoomService(repo *repository.Repository, locker lock.Locker, log *zap.Logger) RoomService {
	return &roomService{
		repo:   repo,
		locker: locker,
		log:    log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRooms(ctx context.Context) ([]response.RoomResponse, error) {
	rooms := []response.RoomResponse{}
	for room, err := range s.repo.Room.FindAll(ctx) {
		if err != nil {
			s.log.Error("Failed to get rooms", zap.Error(err))
			return nil, fmt.Errorf("get rooms: %w", err)
		}
		rooms = append(rooms, response.RoomToResponse(room))
	}
	return rooms, nil
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.RoomKey(req.Name))
	if err != nil {
		return nil, fmt.Errorf("lock room: %w", err)
	}
	defer unlock()

	now := time.Now()
	room := &entity.Room{
		Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:    req.Name,
		Rows:    req.Rows,
		Columns: req.Columns,
	}
	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.log.Warn("Failed to create room", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}

	s.log.Info("Room created", zap.String("name", room.Name), zap.Int("capacity", room.Capacity()))
	res := response.RoomToResponse(room)
	return &res, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, name string, req *request.RoomUpdateRequest) (*response.RoomResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lock.RoomKey(name))
	if err != nil {
		return nil, fmt.Errorf("lock room: %w", err)
	}
	defer unlock()

	room, err := s.repo.Room.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("update room %s: %w", name, err)
	}
	if room == nil {
		return nil, apperror.NotFound(apperror.SubjectRoom)
	}

	room.Rows = req.Rows
	room.Columns = req.Columns
	room.UpdatedAt = time.Now()
	if err := s.repo.Room.Update(ctx, room); err != nil {
		return nil, err
	}

	res := response.RoomToResponse(room)
	return &res, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, name string) error {
	unlock, err := s.locker.Lock(ctx, lock.RoomKey(name))
	if err != nil {
		return fmt.Errorf("lock room: %w", err)
	}
	defer unlock()

	room, err := s.repo.Room.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("delete room %s: %w", name, err)
	}
	if room == nil {
		return apperror.NotFound(apperror.SubjectRoom)
	}

	count, err := s.repo.Screening.CountByRoom(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("count screenings in %s: %w", name, err)
	}
	if count > 0 {
		return apperror.InUse(apperror.SubjectRoom,
			fmt.Sprintf("the room still has %d screening(s)", count))
	}

	if err := s.repo.Room.Delete(ctx, name); err != nil {
		return err
	}
	s.log.Info("Room deleted", zap.String("name", name))
	return nil
}
