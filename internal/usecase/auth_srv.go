package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-service/internal/data/entity"
	"ticket-service/internal/data/repository"
	"ticket-service/internal/dto/request"
	"ticket-service/internal/dto/response"
	"ticket-service/pkg/apperror"
	"ticket-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, session *entity.Session) error
	// LogoutAll revokes every session of the session's user.
	LogoutAll(ctx context.Context, session *entity.Session) error
	Describe(ctx context.Context, session *entity.Session) (*response.AccountResponse, error)
	// Authenticate resolves a bearer token into a live session.
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
	SeedAdmin(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

var errInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid credentials")

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validasi
	if err := validate(req); err != nil {
		return nil, err
	}

	// 2. Find user
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, errInvalidCredentials
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("username", req.Username))
		return nil, errInvalidCredentials
	}

	// 4. Hanya admin yang boleh login
	if !user.IsAdmin() {
		s.log.Warn("Non-admin tried to login", zap.String("username", req.Username))
		return nil, apperror.New(apperror.KindForbidden, "only administrators can sign in")
	}

	// 5. Buang session yang sudah kadaluarsa
	now := time.Now()
	if err := s.repo.Session.CleanExpiredSessions(ctx, now); err != nil {
		s.log.Warn("Failed to clean expired sessions", zap.Error(err))
	}

	// 6. Create session + token
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		ExpiresAt:  now.Add(s.config.Auth.SessionTTL),
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("username", user.Username))
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := utils.IssueToken(s.config.Auth.JWTSecret, session.ID, user.Username, string(user.Role), session.ExpiresAt)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err))
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("session_id", session.ID.String()))

	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

func (s *authService) Logout(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return apperror.ErrUnauthorized
	}

	if err := s.repo.Session.Revoke(ctx, session.ID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.New(apperror.KindUnauthorized, "session already ended")
		}
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("session_id", session.ID.String()))
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out", zap.String("username", session.Username))
	return nil
}

func (s *authService) LogoutAll(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return apperror.ErrUnauthorized
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, session.UserID); err != nil {
		s.log.Error("Failed to revoke sessions", zap.Error(err), zap.String("user_id", session.UserID.String()))
		return fmt.Errorf("logout all: %w", err)
	}

	s.log.Info("User logged out everywhere", zap.String("username", session.Username))
	return nil
}

func (s *authService) Describe(ctx context.Context, session *entity.Session) (*response.AccountResponse, error) {
	if session == nil {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound(apperror.SubjectUser)
	}

	return &response.AccountResponse{Username: user.Username, Role: user.Role}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	sessionID, _, err := utils.ParseToken(s.config.Auth.JWTSecret, token)
	if err != nil {
		s.log.Debug("Rejected token", zap.Error(err))
		return nil, apperror.New(apperror.KindUnauthorized, "invalid or expired session")
	}

	session, err := s.repo.Session.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil || !session.Valid(time.Now()) {
		return nil, apperror.New(apperror.KindUnauthorized, "invalid or expired session")
	}
	return session, nil
}

// SeedAdmin creates the configured administrator if it does not exist yet.
func (s *authService) SeedAdmin(ctx context.Context) error {
	username := s.config.Auth.AdminUsername
	existing, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := utils.HashPassword(s.config.Auth.AdminPassword, s.config.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	now := time.Now()
	admin := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     username,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		if errors.Is(err, apperror.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	s.log.Info("Admin account created", zap.String("username", username))
	return nil
}
