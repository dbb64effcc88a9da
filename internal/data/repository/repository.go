package repository

import (
	"ticket-service/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	Movie     MovieRepository
	Room      RoomRepository
	Screening ScreeningRepository
}

// NewRepository builds the PostgreSQL-backed stores.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Movie:     NewMovieRepository(db, log),
		Room:      NewRoomRepository(db, log),
		Screening: NewScreeningRepository(db, log),
	}
}

// NewMemoryRepository builds stores that live for the lifetime of the process.
func NewMemoryRepository(log *zap.Logger) *Repository {
	store := newMemoryStore(log)
	return &Repository{
		User:      &memoryUserRepository{store},
		Session:   &memorySessionRepository{store},
		Movie:     &memoryMovieRepository{store},
		Room:      &memoryRoomRepository{store},
		Screening: &memoryScreeningRepository{store},
	}
}
