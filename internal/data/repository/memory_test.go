package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticket-service/internal/data/entity"
	"ticket-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMovie(name string, length int) *entity.Movie {
	now := time.Now()
	return &entity.Movie{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:   name,
		Genre:  "drama",
		Length: length,
	}
}

func newRoom(name string) *entity.Room {
	now := time.Now()
	return &entity.Room{
		Base:    entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:    name,
		Rows:    10,
		Columns: 12,
	}
}

func newScreening(m *entity.Movie, r *entity.Room, start time.Time) *entity.Screening {
	return &entity.Screening{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		MovieID:    m.ID,
		RoomID:     r.ID,
		StartsAt:   start,
	}
}

func TestMemoryMovieCatalog(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())

	m := newMovie("Sátántangó", 450)
	require.NoError(t, repo.Movie.Create(ctx, m))

	err := repo.Movie.Create(ctx, newMovie("Sátántangó", 90))
	assert.True(t, errors.Is(err, apperror.AlreadyExists(apperror.SubjectMovie)))

	got, err := repo.Movie.FindByName(ctx, "Sátántangó")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 450, got.Length)

	// Mutating the returned copy must not touch the store.
	got.Length = 1
	again, _ := repo.Movie.FindByName(ctx, "Sátántangó")
	assert.Equal(t, 450, again.Length)

	missing, err := repo.Movie.FindByName(ctx, "Nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Movie.Update(ctx, &entity.Movie{Name: "Sátántangó", Genre: "epic", Length: 450}))
	updated, _ := repo.Movie.FindByID(ctx, m.ID)
	assert.Equal(t, "epic", updated.Genre)

	err = repo.Movie.Update(ctx, &entity.Movie{Name: "Nope"})
	assert.True(t, errors.Is(err, apperror.NotFound(apperror.SubjectMovie)))

	require.NoError(t, repo.Movie.Delete(ctx, "Sátántangó"))
	err = repo.Movie.Delete(ctx, "Sátántangó")
	assert.True(t, errors.Is(err, apperror.NotFound(apperror.SubjectMovie)))
}

func TestMemoryFindAllIsRestartable(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	require.NoError(t, repo.Room.Create(ctx, newRoom("A")))
	require.NoError(t, repo.Room.Create(ctx, newRoom("B")))

	all := repo.Room.FindAll(ctx)
	count := func() int {
		n := 0
		for room, err := range all {
			require.NoError(t, err)
			require.NotNil(t, room)
			n++
		}
		return n
	}

	assert.Equal(t, 2, count())
	require.NoError(t, repo.Room.Create(ctx, newRoom("C")))
	assert.Equal(t, 3, count(), "each range re-reads the store")
}

func TestMemoryFindAllStopsEarly(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, repo.Movie.Create(ctx, newMovie(name, 90)))
	}

	n := 0
	for range repo.Movie.FindAll(ctx) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestMemoryScreenings(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	m := newMovie("Stalker", 161)
	a, b := newRoom("A"), newRoom("B")
	require.NoError(t, repo.Movie.Create(ctx, m))
	require.NoError(t, repo.Room.Create(ctx, a))
	require.NoError(t, repo.Room.Create(ctx, b))

	start := time.Date(2023, 11, 26, 20, 0, 0, 0, time.Local)
	late := newScreening(m, a, start.Add(4*time.Hour))
	early := newScreening(m, a, start)
	other := newScreening(m, b, start)
	for _, s := range []*entity.Screening{late, early, other} {
		require.NoError(t, repo.Screening.Insert(ctx, s))
	}

	err := repo.Screening.Insert(ctx, newScreening(m, a, start))
	assert.True(t, errors.Is(err, apperror.ErrAlreadyExists))

	inA, err := repo.Screening.FindByRoom(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, inA, 2)
	assert.True(t, inA[0].StartsAt.Equal(start))

	n, err := repo.Screening.CountByMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	found, err := repo.Screening.FindExact(ctx, m.ID, b.ID, start)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, other.ID, found.ID)

	none, err := repo.Screening.FindExact(ctx, m.ID, b.ID, start.Add(time.Minute))
	require.NoError(t, err)
	assert.Nil(t, none)

	// Referenced catalog records cannot be deleted.
	assert.True(t, errors.Is(repo.Movie.Delete(ctx, "Stalker"), apperror.ErrInUse))
	assert.True(t, errors.Is(repo.Room.Delete(ctx, "B"), apperror.InUse(apperror.SubjectRoom, "")))

	require.NoError(t, repo.Screening.Remove(ctx, other))
	err = repo.Screening.Remove(ctx, other)
	assert.True(t, errors.Is(err, apperror.NotFound(apperror.SubjectScreening)))
	require.NoError(t, repo.Room.Delete(ctx, "B"))

	var starts []time.Time
	for s, err := range repo.Screening.FindAll(ctx) {
		require.NoError(t, err)
		starts = append(starts, s.StartsAt)
	}
	require.Len(t, starts, 2)
	assert.True(t, starts[0].Before(starts[1]))
}

func TestMemorySessions(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())
	userID := uuid.New()

	s := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     userID,
		Username:   "admin",
		Role:       entity.RoleAdmin,
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Session.Create(ctx, s))

	got, err := repo.Session.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.Valid(time.Now()))

	require.NoError(t, repo.Session.Revoke(ctx, s.ID))
	got, _ = repo.Session.FindByID(ctx, s.ID)
	assert.False(t, got.Valid(time.Now()))
	assert.True(t, errors.Is(repo.Session.Revoke(ctx, s.ID), apperror.ErrNotFound))

	require.NoError(t, repo.Session.CleanExpiredSessions(ctx, time.Now().Add(2*time.Hour)))
	got, _ = repo.Session.FindByID(ctx, s.ID)
	assert.Nil(t, got)
}
