package usecase

import (
	"context"
	"errors"
	"testing"

	"ticket-service/internal/dto/request"
	"ticket-service/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMovieValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name string
		req  request.MovieRequest
	}{
		{"missing name", request.MovieRequest{Genre: "drama", Length: 90}},
		{"missing genre", request.MovieRequest{Name: "M", Length: 90}},
		{"zero length", request.MovieRequest{Name: "M", Genre: "drama"}},
		{"negative length", request.MovieRequest{Name: "M", Genre: "drama", Length: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Movie.CreateMovie(ctx, &tt.req)
			assert.True(t, errors.Is(err, apperror.ErrValidation))
		})
	}
}

func TestMovieLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.movie(t, "M", 90)

	_, err := f.service.Movie.CreateMovie(ctx, &request.MovieRequest{Name: "M", Genre: "comedy", Length: 80})
	assert.True(t, errors.Is(err, apperror.AlreadyExists(apperror.SubjectMovie)))

	res, err := f.service.Movie.UpdateMovie(ctx, "M", &request.MovieUpdateRequest{Genre: "comedy", Length: 95})
	require.NoError(t, err)
	assert.Equal(t, "comedy", res.Genre)
	assert.Equal(t, 95, res.Length)

	got, err := f.service.Movie.GetMovie(ctx, "M")
	require.NoError(t, err)
	assert.Equal(t, 95, got.Length)

	_, err = f.service.Movie.UpdateMovie(ctx, "Nope", &request.MovieUpdateRequest{Genre: "x", Length: 1})
	assert.True(t, errors.Is(err, apperror.NotFound(apperror.SubjectMovie)))

	movies, err := f.service.Movie.GetMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 1)

	require.NoError(t, f.service.Movie.DeleteMovie(ctx, "M"))
	err = f.service.Movie.DeleteMovie(ctx, "M")
	assert.True(t, errors.Is(err, apperror.NotFound(apperror.SubjectMovie)))
}

func TestReferencedCatalogRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.movie(t, "M", 90)
	f.room(t, "R")
	start := at(t, "2023-11-26 20:00")
	_, err := f.service.Screening.Book(ctx, "M", "R", start)
	require.NoError(t, err)

	err = f.service.Movie.DeleteMovie(ctx, "M")
	assert.True(t, errors.Is(err, apperror.InUse(apperror.SubjectMovie, "")))

	err = f.service.Room.DeleteRoom(ctx, "R")
	assert.True(t, errors.Is(err, apperror.InUse(apperror.SubjectRoom, "")))

	// Genre may change, length may not.
	_, err = f.service.Movie.UpdateMovie(ctx, "M", &request.MovieUpdateRequest{Genre: "noir", Length: 90})
	require.NoError(t, err)
	_, err = f.service.Movie.UpdateMovie(ctx, "M", &request.MovieUpdateRequest{Genre: "noir", Length: 200})
	assert.True(t, errors.Is(err, apperror.ErrInUse))

	// Room dimensions are bookkeeping only.
	_, err = f.service.Room.UpdateRoom(ctx, "R", &request.RoomUpdateRequest{Rows: 5, Columns: 6})
	require.NoError(t, err)

	require.NoError(t, f.service.Screening.Cancel(ctx, "M", "R", start))
	require.NoError(t, f.service.Room.DeleteRoom(ctx, "R"))
	require.NoError(t, f.service.Movie.DeleteMovie(ctx, "M"))
}

func TestRoomLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.service.Room.CreateRoom(ctx, &request.RoomRequest{Name: "R", Rows: 8, Columns: 12})
	require.NoError(t, err)
	assert.Equal(t, 96, res.Capacity)

	_, err = f.service.Room.CreateRoom(ctx, &request.RoomRequest{Name: "R", Rows: 1, Columns: 1})
	assert.True(t, errors.Is(err, apperror.AlreadyExists(apperror.SubjectRoom)))

	_, err = f.service.Room.CreateRoom(ctx, &request.RoomRequest{Name: "S", Rows: 0, Columns: 1})
	assert.True(t, errors.Is(err, apperror.ErrValidation))

	_, err = f.service.Room.UpdateRoom(ctx, "Nope", &request.RoomUpdateRequest{Rows: 1, Columns: 1})
	assert.True(t, errors.Is(err, apperror.NotFound(apperror.SubjectRoom)))

	rooms, err := f.service.Room.GetRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "R", rooms[0].Name)
}
