package repository

import (
	"context"
	"iter"
	"slices"
	"sync"
	"time"

	"ticket-service/internal/data/entity"
	"ticket-service/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryStore keeps every table behind one RWMutex. Records are copied on the
// way in and out so callers never share memory with the store.
type memoryStore struct {
	mu         sync.RWMutex
	movies     map[string]*entity.Movie // by name
	rooms      map[string]*entity.Room  // by name
	screenings map[uuid.UUID]*entity.Screening
	users      map[string]*entity.User // by username
	sessions   map[uuid.UUID]*entity.Session
	log        *zap.Logger
}

func newMemoryStore(log *zap.Logger) *memoryStore {
	return &memoryStore{
		movies:     make(map[string]*entity.Movie),
		rooms:      make(map[string]*entity.Room),
		screenings: make(map[uuid.UUID]*entity.Screening),
		users:      make(map[string]*entity.User),
		sessions:   make(map[uuid.UUID]*entity.Session),
		log:        log.With(zap.String("repository", "memory")),
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// snapshot copies the values under the read lock, then yields outside it so a
// consumer may call back into the store while ranging.
func snapshot[K comparable, T any](s *memoryStore, m map[K]*T, keep func(*T) bool) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, clone(v))
		}
	}
	return out
}

func seq[T any](ctx context.Context, load func() []*T) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for _, v := range load() {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// ---- movies ----

type memoryMovieRepository struct{ s *memoryStore }

func (r *memoryMovieRepository) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[movie.Name]; ok {
		return apperror.AlreadyExists(apperror.SubjectMovie)
	}
	r.s.movies[movie.Name] = clone(movie)
	return nil
}

func (r *memoryMovieRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movies {
		if m.ID == id {
			return clone(m), nil
		}
	}
	return nil, nil
}

func (r *memoryMovieRepository) FindByName(_ context.Context, name string) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.movies[name]), nil
}

func (r *memoryMovieRepository) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.movies[movie.Name]
	if !ok {
		return apperror.NotFound(apperror.SubjectMovie)
	}
	existing.Genre = movie.Genre
	existing.Length = movie.Length
	existing.UpdatedAt = movie.UpdatedAt
	return nil
}

func (r *memoryMovieRepository) Delete(_ context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movies[name]
	if !ok {
		return apperror.NotFound(apperror.SubjectMovie)
	}
	for _, s := range r.s.screenings {
		if s.MovieID == m.ID {
			return apperror.InUse(apperror.SubjectMovie, "the movie still has screenings")
		}
	}
	delete(r.s.movies, name)
	r.s.log.Info("Movie deleted", zap.String("name", name))
	return nil
}

func (r *memoryMovieRepository) FindAll(ctx context.Context) iter.Seq2[*entity.Movie, error] {
	return seq(ctx, func() []*entity.Movie { return snapshot(r.s, r.s.movies, nil) })
}

// ---- rooms ----

type memoryRoomRepository struct{ s *memoryStore }

func (r *memoryRoomRepository) Create(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rooms[room.Name]; ok {
		return apperror.AlreadyExists(apperror.SubjectRoom)
	}
	r.s.rooms[room.Name] = clone(room)
	return nil
}

func (r *memoryRoomRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, room := range r.s.rooms {
		if room.ID == id {
			return clone(room), nil
		}
	}
	return nil, nil
}

func (r *memoryRoomRepository) FindByName(_ context.Context, name string) (*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.rooms[name]), nil
}

func (r *memoryRoomRepository) Update(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.rooms[room.Name]
	if !ok {
		return apperror.NotFound(apperror.SubjectRoom)
	}
	existing.Rows = room.Rows
	existing.Columns = room.Columns
	existing.UpdatedAt = room.UpdatedAt
	return nil
}

func (r *memoryRoomRepository) Delete(_ context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[name]
	if !ok {
		return apperror.NotFound(apperror.SubjectRoom)
	}
	for _, s := range r.s.screenings {
		if s.RoomID == room.ID {
			return apperror.InUse(apperror.SubjectRoom, "the room still has screenings")
		}
	}
	delete(r.s.rooms, name)
	return nil
}

func (r *memoryRoomRepository) FindAll(ctx context.Context) iter.Seq2[*entity.Room, error] {
	return seq(ctx, func() []*entity.Room { return snapshot(r.s, r.s.rooms, nil) })
}

// ---- screenings ----

type memoryScreeningRepository struct{ s *memoryStore }

func (r *memoryScreeningRepository) Insert(_ context.Context, screening *entity.Screening) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, s := range r.s.screenings {
		if s.SameSlot(screening) {
			return apperror.AlreadyExists(apperror.SubjectScreening)
		}
	}
	r.s.screenings[screening.ID] = clone(screening)
	return nil
}

func (r *memoryScreeningRepository) Remove(_ context.Context, screening *entity.Screening) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, s := range r.s.screenings {
		if s.SameSlot(screening) {
			delete(r.s.screenings, id)
			return nil
		}
	}
	return apperror.NotFound(apperror.SubjectScreening)
}

func (r *memoryScreeningRepository) FindByRoom(_ context.Context, roomID uuid.UUID) ([]*entity.Screening, error) {
	return sortedByStart(snapshot(r.s, r.s.screenings, func(s *entity.Screening) bool { return s.RoomID == roomID })), nil
}

func (r *memoryScreeningRepository) FindByMovie(_ context.Context, movieID uuid.UUID) ([]*entity.Screening, error) {
	return sortedByStart(snapshot(r.s, r.s.screenings, func(s *entity.Screening) bool { return s.MovieID == movieID })), nil
}

func (r *memoryScreeningRepository) FindExact(_ context.Context, movieID, roomID uuid.UUID, startsAt time.Time) (*entity.Screening, error) {
	want := &entity.Screening{MovieID: movieID, RoomID: roomID, StartsAt: startsAt}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, s := range r.s.screenings {
		if s.SameSlot(want) {
			return clone(s), nil
		}
	}
	return nil, nil
}

func (r *memoryScreeningRepository) FindAll(ctx context.Context) iter.Seq2[*entity.Screening, error] {
	return seq(ctx, func() []*entity.Screening {
		return sortedByStart(snapshot(r.s, r.s.screenings, nil))
	})
}

func (r *memoryScreeningRepository) CountByMovie(ctx context.Context, movieID uuid.UUID) (int64, error) {
	list, err := r.FindByMovie(ctx, movieID)
	return int64(len(list)), err
}

func (r *memoryScreeningRepository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	list, err := r.FindByRoom(ctx, roomID)
	return int64(len(list)), err
}

func sortedByStart(list []*entity.Screening) []*entity.Screening {
	slices.SortFunc(list, func(a, b *entity.Screening) int { return a.StartsAt.Compare(b.StartsAt) })
	return list
}

// ---- users ----

type memoryUserRepository struct{ s *memoryStore }

func (r *memoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.Username]; ok {
		return apperror.AlreadyExists(apperror.SubjectUser)
	}
	r.s.users[user.Username] = clone(user)
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == id {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.users[username]), nil
}

// ---- sessions ----

type memorySessionRepository struct{ s *memoryStore }

func (r *memorySessionRepository) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.ID] = clone(session)
	return nil
}

func (r *memorySessionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.sessions[id]), nil
}

func (r *memorySessionRepository) Revoke(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.sessions[id]
	if !ok || s.RevokedAt != nil {
		return apperror.NotFound(apperror.SubjectSession)
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r *memorySessionRepository) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for _, s := range r.s.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			revoked := now
			s.RevokedAt = &revoked
		}
	}
	return nil
}

func (r *memorySessionRepository) CleanExpiredSessions(_ context.Context, before time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, s := range r.s.sessions {
		if s.ExpiresAt.Before(before) {
			delete(r.s.sessions, id)
		}
	}
	return nil
}
