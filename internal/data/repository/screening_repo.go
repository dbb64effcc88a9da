package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"ticket-service/internal/data/entity"
	"ticket-service/pkg/apperror"
	"ticket-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ScreeningRepository stores the timetable. It applies no scheduling rules.
type ScreeningRepository interface {
	Insert(ctx context.Context, screening *entity.Screening) error
	Remove(ctx context.Context, screening *entity.Screening) error
	FindByRoom(ctx context.Context, roomID uuid.UUID) ([]*entity.Screening, error)
	FindByMovie(ctx context.Context, movieID uuid.UUID) ([]*entity.Screening, error)
	FindExact(ctx context.Context, movieID, roomID uuid.UUID, startsAt time.Time) (*entity.Screening, error)
	FindAll(ctx context.Context) iter.Seq2[*entity.Screening, error]
	CountByMovie(ctx context.Context, movieID uuid.UUID) (int64, error)
	CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

const screeningColumns = `id, movie_id, room_id, starts_at, created_at`

func scanScreening(row pgx.Row) (*entity.Screening, error) {
	var s entity.Screening
	if err := row.Scan(&s.ID, &s.MovieID, &s.RoomID, &s.StartsAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *screeningRepository) Insert(ctx context.Context, screening *entity.Screening) error {
	query := `
		INSERT INTO screenings (id, movie_id, room_id, starts_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieID,
		screening.RoomID,
		screening.StartsAt,
		screening.CreatedAt,
	)
	if pgCode(err) == pgUniqueViolation {
		return apperror.AlreadyExists(apperror.SubjectScreening)
	}
	if err != nil {
		r.log.Error("Failed to insert screening",
			zap.Error(err),
			zap.String("movie_id", screening.MovieID.String()),
			zap.String("room_id", screening.RoomID.String()),
			zap.Time("starts_at", screening.StartsAt),
		)
		return fmt.Errorf("insert screening for movie %s room %s: %w",
			screening.MovieID.String(), screening.RoomID.String(), err)
	}

	return nil
}

func (r *screeningRepository) Remove(ctx context.Context, screening *entity.Screening) error {
	query := `DELETE FROM screenings WHERE movie_id = $1 AND room_id = $2 AND starts_at = $3`

	result, err := r.db.Exec(ctx, query, screening.MovieID, screening.RoomID, screening.StartsAt)
	if err != nil {
		r.log.Error("Failed to remove screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("remove screening %s: %w", screening.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound(apperror.SubjectScreening)
	}

	return nil
}

func (r *screeningRepository) FindByRoom(ctx context.Context, roomID uuid.UUID) ([]*entity.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE room_id = $1 ORDER BY starts_at`

	screenings, err := r.collect(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to find screenings by room",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find screenings by room %s: %w", roomID.String(), err)
	}
	return screenings, nil
}

func (r *screeningRepository) FindByMovie(ctx context.Context, movieID uuid.UUID) ([]*entity.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE movie_id = $1 ORDER BY starts_at`

	screenings, err := r.collect(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find screenings by movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find screenings by movie %s: %w", movieID.String(), err)
	}
	return screenings, nil
}

func (r *screeningRepository) collect(ctx context.Context, query string, args ...any) ([]*entity.Screening, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, s)
	}
	return screenings, rows.Err()
}

func (r *screeningRepository) FindExact(ctx context.Context, movieID, roomID uuid.UUID, startsAt time.Time) (*entity.Screening, error) {
	query := `
		SELECT ` + screeningColumns + `
		FROM screenings
		WHERE movie_id = $1 AND room_id = $2 AND starts_at = $3
	`

	s, err := scanScreening(r.db.QueryRow(ctx, query, movieID, roomID, startsAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("room_id", roomID.String()),
			zap.Time("starts_at", startsAt),
		)
		return nil, fmt.Errorf("find screening: %w", err)
	}
	return s, nil
}

func (r *screeningRepository) FindAll(ctx context.Context) iter.Seq2[*entity.Screening, error] {
	return func(yield func(*entity.Screening, error) bool) {
		rows, err := r.db.Query(ctx, `SELECT `+screeningColumns+` FROM screenings ORDER BY starts_at`)
		if err != nil {
			r.log.Error("Failed to find screenings", zap.Error(err))
			yield(nil, fmt.Errorf("find screenings: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			s, err := scanScreening(rows)
			if err != nil {
				yield(nil, fmt.Errorf("scan screening row: %w", err))
				return
			}
			if !yield(s, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate screenings: %w", err))
		}
	}
}

func (r *screeningRepository) CountByMovie(ctx context.Context, movieID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM screenings WHERE movie_id = $1`, movieID).Scan(&total); err != nil {
		r.log.Error("Failed to count screenings by movie", zap.Error(err), zap.String("movie_id", movieID.String()))
		return 0, fmt.Errorf("count screenings by movie: %w", err)
	}
	return total, nil
}

func (r *screeningRepository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM screenings WHERE room_id = $1`, roomID).Scan(&total); err != nil {
		r.log.Error("Failed to count screenings by room", zap.Error(err), zap.String("room_id", roomID.String()))
		return 0, fmt.Errorf("count screenings by room: %w", err)
	}
	return total, nil
}
