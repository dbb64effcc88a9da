package repository

import (
	"context"
	"errors"
	"fmt"

	"ticket-service/internal/data/entity"
	"ticket-service/pkg/apperror"
	"ticket-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if pgCode(err) == pgUniqueViolation {
		return apperror.AlreadyExists(apperror.SubjectUser)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id", id)
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return ur.findOne(ctx, "username", username)
}

// findOne: column is always a constant from this file.
func (ur *userRepository) findOne(ctx context.Context, column string, value any) (*entity.User, error) {
	query := `
		SELECT id, username, password, role, created_at, updated_at
		FROM users
		WHERE ` + column + ` = $1
	`

	var user entity.User
	err := ur.db.QueryRow(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("by", column),
		)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
