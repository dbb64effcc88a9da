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

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindByName(ctx context.Context, name string) (*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, name string) error
	FindAll(ctx context.Context) iter.Seq2[*entity.Room, error]
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, name, row_count, column_count, created_at, updated_at`

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	if err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Rows,
		&room.Columns,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, name, row_count, column_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.Name,
		room.Rows,
		room.Columns,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if pgCode(err) == pgUniqueViolation {
		return apperror.AlreadyExists(apperror.SubjectRoom)
	}
	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("name", room.Name),
		)
		return fmt.Errorf("create room %s: %w", room.Name, err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room %s: %w", id.String(), err)
	}
	return room, nil
}

func (r *roomRepository) FindByName(ctx context.Context, name string) (*entity.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find room %s: %w", name, err)
	}
	return room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) iter.Seq2[*entity.Room, error] {
	return func(yield func(*entity.Room, error) bool) {
		rows, err := r.db.Query(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY name`)
		if err != nil {
			r.log.Error("Failed to find rooms", zap.Error(err))
			yield(nil, fmt.Errorf("find rooms: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			room, err := scanRoom(rows)
			if err != nil {
				yield(nil, fmt.Errorf("scan room: %w", err))
				return
			}
			if !yield(room, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate rooms: %w", err))
		}
	}
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET row_count = $2, column_count = $3, updated_at = $4
		WHERE name = $1
	`

	result, err := r.db.Exec(ctx, query, room.Name, room.Rows, room.Columns, room.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("name", room.Name),
		)
		return fmt.Errorf("update room %s: %w", room.Name, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound(apperror.SubjectRoom)
	}

	return nil
}

func (r *roomRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE name = $1`, name)
	if pgCode(err) == pgForeignKeyViolation {
		return apperror.InUse(apperror.SubjectRoom, "the room still has screenings")
	}
	if err != nil {
		r.log.Error("Failed to delete room",
			zap.Error(err),
			zap.String("name", name),
		)
		return fmt.Errorf("delete room %s: %w", name, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NotFound(apperror.SubjectRoom)
	}

	return nil
}
