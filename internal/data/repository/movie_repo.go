package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"ticket-service/internal/data/entity"
	"ticket-service/pkg/apperror"
	"ticket-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindByName(ctx context.Context, name string) (*entity.Movie, error)
	// Update replaces genre and length of the movie with the same name.
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, name string) error
	// FindAll re-reads the store every time the sequence is ranged over.
	FindAll(ctx context.Context) iter.Seq2[*entity.Movie, error]
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, name, genre, length, created_at, updated_at`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Name,
		&movie.Genre,
		&movie.Length,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, name, genre, length, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Name,
		movie.Genre,
		movie.Length,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if pgCode(err) == pgUniqueViolation {
		return apperror.AlreadyExists(apperror.SubjectMovie)
	}
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("name", movie.Name),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return movie, nil
}

func (r *movieRepository) FindByName(ctx context.Context, name string) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE name = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) iter.Seq2[*entity.Movie, error] {
	return func(yield func(*entity.Movie, error) bool) {
		rows, err := r.db.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY name`)
		if err != nil {
			r.log.Error("Failed to find all movies", zap.Error(err))
			yield(nil, fmt.Errorf("failed to find movies: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			movie, err := scanMovie(rows)
			if err != nil {
				r.log.Error("Failed to scan movie row", zap.Error(err))
				yield(nil, fmt.Errorf("failed to scan movie: %w", err))
				return
			}
			if !yield(movie, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			r.log.Error("Rows iteration error", zap.Error(err))
			yield(nil, fmt.Errorf("failed to iterate rows: %w", err))
		}
	}
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET genre = $2, length = $3, updated_at = $4
		WHERE name = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.Name,
		movie.Genre,
		movie.Length,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("name", movie.Name),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound(apperror.SubjectMovie)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE name = $1`, name)
	if pgCode(err) == pgForeignKeyViolation {
		return apperror.InUse(apperror.SubjectMovie, "the movie still has screenings")
	}
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("name", name),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound(apperror.SubjectMovie)
	}

	r.log.Info("Movie deleted", zap.String("name", name))
	return nil
}
